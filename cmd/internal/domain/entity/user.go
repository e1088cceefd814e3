package entity

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // Stored and compared verbatim; there is no hashing anywhere.
	Role     Role   `json:"role"`

	// Doctor-only attributes.
	Specialization string `json:"specialization,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Image          string `json:"image,omitempty"`
}
