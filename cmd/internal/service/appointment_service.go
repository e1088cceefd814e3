package service

import (
	"careplus/cmd/internal/domain/entity"
	"careplus/cmd/internal/records"
	"careplus/cmd/internal/utils"
	"careplus/cmd/internal/utils/apierror"
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type AppointmentStore interface {
	CreateAppointment(candidate entity.Appointment) (*entity.Appointment, error)
	SetAppointmentStatus(id string, status entity.Status) (*entity.Appointment, error)
	Appointments() []entity.Appointment
	UserByID(id string) *entity.User
}

type BookRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date" validate:"required,isodate"`
	Time     string `json:"time" validate:"required,timeslot"`
	Reason   string `json:"reason" validate:"required,max=500"`
}

type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type CalendarResponse struct {
	DoctorID       string   `json:"doctor_id"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}

type DefaultAppointmentService struct {
	Store    AppointmentStore
	Validate *validator.Validate
	Slots    []string
}

func NewAppointmentService(store AppointmentStore, validate *validator.Validate, slots []string) *DefaultAppointmentService {
	return &DefaultAppointmentService{Store: store, Validate: validate, Slots: slots}
}

// Book requests a new appointment for the calling patient. The appointment
// always starts out pending; the doctor confirms or declines it later.
// Patient and doctor display names are copied onto the appointment at this
// point and never refreshed.
func (a *DefaultAppointmentService) Book(req *BookRequest, patientID string) (*AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	patient := a.Store.UserByID(patientID)
	if patient == nil {
		return nil, apierror.InvalidAuthTokenError
	}

	doctor := a.Store.UserByID(req.DoctorID)
	if doctor == nil || doctor.Role != entity.RoleDoctor {
		return nil, apierror.NotFoundError
	}

	if !slices.Contains(a.Slots, req.Time) {
		return nil, apierror.UnknownSlotError
	}
	if utils.IsPastDate(req.Date) {
		return nil, apierror.AppointmentInPastError
	}

	appt, err := a.Store.CreateAppointment(entity.Appointment{
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		Date:        req.Date,
		Time:        req.Time,
		Reason:      req.Reason,
	})
	if errors.Is(err, records.ErrSlotUnavailable) {
		return nil, apierror.SlotUnavailableError
	}
	if err != nil {
		log.Errorf("failed to book appointment for patient %s: %v", patientID, err)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponse(appt), nil
}

// AvailableSlots returns the slot catalog minus every slot claimed by a
// non-cancelled appointment for the doctor on the given date. Recomputed
// from current appointment state on every call.
func (a *DefaultAppointmentService) AvailableSlots(doctorID, date string) (*CalendarResponse, apierror.ErrorResponse) {
	doctor := a.Store.UserByID(doctorID)
	if doctor == nil || doctor.Role != entity.RoleDoctor {
		return nil, apierror.NotFoundError
	}
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD date")
	}

	appts := a.Store.Appointments()
	available := make([]string, 0, len(a.Slots))
	for _, slot := range a.Slots {
		taken := false
		for i := range appts {
			if appts[i].Occupies(doctorID, date, slot) {
				taken = true
				break
			}
		}
		if !taken {
			available = append(available, slot)
		}
	}

	return &CalendarResponse{DoctorID: doctorID, Date: date, AvailableSlots: available}, nil
}

// SetStatus moves an appointment through its lifecycle: a doctor accepts
// (confirmed) or declines (cancelled) a pending request, marks a confirmed
// visit done (completed), or either side cancels late. Illegal transitions
// are rejected by the store.
func (a *DefaultAppointmentService) SetStatus(id, status string) (*AppointmentResponse, apierror.ErrorResponse) {
	next := entity.Status(status)
	if !next.Valid() {
		return nil, apierror.NewInvalidParamTypeError("status", "appointment status")
	}

	appt, err := a.Store.SetAppointmentStatus(id, next)
	if errors.Is(err, records.ErrNotFound) {
		return nil, apierror.NotFoundError
	}
	if errors.Is(err, records.ErrInvalidTransition) {
		return nil, apierror.InvalidTransitionError
	}
	if err != nil {
		log.Errorf("failed to update appointment %s status: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponse(appt), nil
}

// GetAppointments returns the caller's view of the appointment collection:
// everything for an admin, the doctor's own schedule ordered by date, or
// the patient's own history newest first.
func (a *DefaultAppointmentService) GetAppointments(issuer *utils.TokenData) ([]*AppointmentResponse, apierror.ErrorResponse) {
	all := a.Store.Appointments()

	var mine []entity.Appointment
	switch issuer.Role {
	case string(entity.RoleAdmin):
		mine = all
	case string(entity.RoleDoctor):
		for _, appt := range all {
			if appt.DoctorID == issuer.Sub {
				mine = append(mine, appt)
			}
		}
		sort.Slice(mine, func(i, j int) bool {
			if mine[i].Date != mine[j].Date {
				return mine[i].Date < mine[j].Date
			}
			return mine[i].Time < mine[j].Time
		})
	default:
		for _, appt := range all {
			if appt.PatientID == issuer.Sub {
				mine = append(mine, appt)
			}
		}
		sort.Slice(mine, func(i, j int) bool {
			return mine[i].CreatedAt > mine[j].CreatedAt
		})
	}

	resp := make([]*AppointmentResponse, len(mine))
	for i := range mine {
		resp[i] = toAppointmentResponse(&mine[i])
	}
	return resp, nil
}

func toAppointmentResponse(appt *entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          appt.ID,
		PatientID:   appt.PatientID,
		PatientName: appt.PatientName,
		DoctorID:    appt.DoctorID,
		DoctorName:  appt.DoctorName,
		Date:        appt.Date,
		Time:        appt.Time,
		Reason:      appt.Reason,
		Status:      string(appt.Status),
		CreatedAt:   utils.FormatEpoch(appt.CreatedAt),
	}
}
