package doctor

import "time"

// CreateDoctorRequest represents the request to register a doctor
type CreateDoctorRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	Specialty string `json:"specialty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// UpdateDoctorRequest represents the request to update a doctor
type UpdateDoctorRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// Doctor represents a practicing doctor
type Doctor struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	Specialty string     `json:"specialty"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
