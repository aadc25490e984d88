package presenter

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
)

// FieldErrors maps a json field name to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, e[f])
	}
	return strings.Join(parts, "; ")
}

var fieldLabels = map[string]string{
	"first_name":   "First name",
	"last_name":    "Last name",
	"email":        "Email",
	"phone_number": "Phone number",
	"role_id":      "Role",
	"name":         "Name",
}

// RegisterPhone adds the "phone" tag, which accepts (DDD) DDD-DDDD.
func RegisterPhone(v *validator.Validate) error {
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return domain.ValidPhone(fl.Field().String())
	})
}

// Validator checks drafts before they are dispatched to a store.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator reporting fields by their json names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := RegisterPhone(v); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}
	return &Validator{v: v}
}

// Member validates a team member draft. It returns FieldErrors or nil.
func (v *Validator) Member(d domain.TeamMemberDraft) error {
	return v.check(d)
}

// Role validates a role draft. It returns FieldErrors or nil.
func (v *Validator) Role(d domain.RoleDraft) error {
	return v.check(d)
}

func (v *Validator) check(draft any) error {
	err := v.v.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	label, ok := fieldLabels[field]
	if !ok {
		label = field
	}
	switch tag {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email"
	case "phone":
		return "Please enter a valid phone number in the format (XXX) XXX-XXXX"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// NormalizeMember trims surrounding whitespace from the text fields.
func NormalizeMember(d domain.TeamMemberDraft) domain.TeamMemberDraft {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
	d.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
	return d
}
