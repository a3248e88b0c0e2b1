package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
)

// Course is a taught unit, offered to one semester's students.
// Teacher, when set, is the username of the teacher-role account running it.
type Course struct {
	Code     string  `json:"code" db:"code"`
	Name     string  `json:"name" db:"name"`
	Semester int     `json:"semester" db:"semester"`
	Teacher  *string `json:"teacher,omitempty" db:"teacher_username"`
}

type NewCourse struct {
	Code     string `json:"code" validate:"required,min=2,alphanum_"`
	Name     string `json:"name" validate:"required"`
	Semester int    `json:"semester" validate:"semester"`
	Teacher  string `json:"teacher"` // optional
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code, true /* lower */)
	nc.Name = core.CleanString(nc.Name)
	nc.Teacher = core.CleanString(nc.Teacher, true /* lower */)
	return validate.Struct(nc)
}

// UpdateCourse patches a course; zero fields are left untouched.
// Setting Teacher to "-" clears the assignment.
type UpdateCourse struct {
	Name     string `json:"name"`
	Semester int    `json:"semester" validate:"omitempty,semester"`
	Teacher  string `json:"teacher"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Teacher = core.CleanString(uc.Teacher, true /* lower */)
	return validate.Struct(uc)
}

type QueryFilter struct {
	Semester int    `query:"semester"`
	Teacher  string `query:"teacher"`
}

func (qf *QueryFilter) IsEmpty() bool { return qf.Semester == 0 && qf.Teacher == "" }

func (qf *QueryFilter) Clean() {
	qf.Teacher = core.CleanString(qf.Teacher, true /* lower */)
}
