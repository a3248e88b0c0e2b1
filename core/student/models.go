package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
)

// Student is the academic profile of a student-role account;
// RollNo doubles as the account's username.
type Student struct {
	RollNo   string `json:"roll_no" db:"roll_no"`
	Name     string `json:"name" db:"name"`
	Semester int    `json:"semester" db:"semester"`
}

// NewEnrollment creates the account and the profile in one call so a
// student can never end up with one and not the other.
type NewEnrollment struct {
	RollNo          string `json:"roll_no" validate:"required,min=2,alphanum_"`
	Name            string `json:"name" validate:"required"`
	Semester        int    `json:"semester" validate:"semester"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	ne.RollNo = core.CleanString(ne.RollNo, true /* lower */)
	ne.Name = core.CleanString(ne.Name)
	return validate.Struct(ne)
}

// NewStudent creates a profile for an already-provisioned student account.
type NewStudent struct {
	RollNo   string `json:"roll_no" validate:"required,min=2,alphanum_"`
	Name     string `json:"name" validate:"required"`
	Semester int    `json:"semester" validate:"semester"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.RollNo = core.CleanString(ns.RollNo, true /* lower */)
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// UpdateStudent patches a profile; zero fields are left untouched.
type UpdateStudent struct {
	Name     string `json:"name"`
	Semester int    `json:"semester" validate:"omitempty,semester"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	return validate.Struct(us)
}

type QueryFilter struct {
	Semester int `query:"semester"`
}

func (qf QueryFilter) IsEmpty() bool { return qf.Semester == 0 }
