package domain

import (
	"regexp"
	"time"
)

// PhonePattern is the accepted phone number format: (DDD) DDD-DDDD.
var PhonePattern = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

// ValidPhone reports whether s matches PhonePattern.
func ValidPhone(s string) bool {
	return PhonePattern.MatchString(s)
}

// TeamMember represents a member of the roster.
// ID is zero until the server assigns one.
type TeamMember struct {
	ID          int64      `json:"id,omitempty"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	Role        *Role      `json:"role"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Key returns the member identity.
func (m TeamMember) Key() int64 {
	return m.ID
}

// FullName returns "first last".
func (m TeamMember) FullName() string {
	return m.FirstName + " " + m.LastName
}

// Draft converts the member back into its write shape.
func (m TeamMember) Draft() TeamMemberDraft {
	d := TeamMemberDraft{
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
	}
	if m.Role != nil {
		id := m.Role.ID
		d.RoleID = &id
	}
	return d
}

// TeamMemberDraft is the payload sent to create or update a member.
type TeamMemberDraft struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	RoleID      *int64 `json:"role_id" validate:"required"`
}
