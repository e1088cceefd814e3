package entity

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether an appointment may move from s to next.
// Completed and cancelled are terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"` // Copied from the patient record at booking time.
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"` // Copied from the doctor record at booking time.
	Date        string `json:"date"`        // YYYY-MM-DD
	Time        string `json:"time"`        // HH:MM, one of the configured slot catalog
	Reason      string `json:"reason"`
	Status      Status `json:"status"`
	CreatedAt   int64  `json:"created_at"`
}

// Occupies reports whether the appointment claims the (doctor, date, time)
// tuple, i.e. it matches and has not been cancelled.
func (a *Appointment) Occupies(doctorID, date, slot string) bool {
	return a.DoctorID == doctorID && a.Date == date && a.Time == slot && a.Status != StatusCancelled
}

// References reports whether the appointment points at the given user as
// either patient or doctor.
func (a *Appointment) References(userID string) bool {
	return a.PatientID == userID || a.DoctorID == userID
}
