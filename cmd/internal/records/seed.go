package records

import (
	"careplus/cmd/internal/domain/entity"
	"careplus/cmd/internal/utils"
)

// seedUsers is the fixed initial roster used when no users snapshot exists.
func seedUsers() []entity.User {
	return []entity.User{
		{
			ID:       "u1",
			Name:     "System Admin",
			Email:    "admin@hc.com",
			Password: "123",
			Role:     entity.RoleAdmin,
		},
		{
			ID:             "u2",
			Name:           "Dr. Sarah Smith",
			Email:          "sarah@hc.com",
			Password:       "123",
			Role:           entity.RoleDoctor,
			Specialization: "Cardiologist",
			Bio:            "Expert in heart rhythm disorders and preventive cardiology.",
			Image:          "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah",
		},
		{
			ID:             "u3",
			Name:           "Dr. John Doe",
			Email:          "john@hc.com",
			Password:       "123",
			Role:           entity.RoleDoctor,
			Specialization: "Dermatologist",
			Bio:            "Specializing in cosmetic dermatology and skin cancer screening.",
			Image:          "https://api.dicebear.com/7.x/avataaars/svg?seed=John",
		},
		{
			ID:       "u4",
			Name:     "Jane Patient",
			Email:    "jane@test.com",
			Password: "123",
			Role:     entity.RolePatient,
		},
	}
}

// seedAppointments is the fixed initial history used when no appointments
// snapshot exists.
func seedAppointments() []entity.Appointment {
	return []entity.Appointment{
		{
			ID:          "a1",
			PatientID:   "u4",
			PatientName: "Jane Patient",
			DoctorID:    "u2",
			DoctorName:  "Dr. Sarah Smith",
			Date:        "2023-11-20",
			Time:        "10:00",
			Status:      entity.StatusCompleted,
			Reason:      "Annual Checkup",
			CreatedAt:   utils.NowUTC(),
		},
	}
}
