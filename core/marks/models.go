package marks

import (
	"github.com/go-playground/validator/v10"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
)

// Mark is a student's result in a course. (RollNo, CourseCode) is the
// natural key; saving again replaces the previous result.
type Mark struct {
	RollNo     string  `json:"roll_no" db:"roll_no"`
	CourseCode string  `json:"course_code" db:"course_code"`
	Score      float64 `json:"score" db:"score"`
	Grade      string  `json:"grade" db:"grade"`
	Remarks    string  `json:"remarks" db:"remarks"`
}

type NewMark struct {
	RollNo     string  `json:"roll_no" validate:"required"`
	CourseCode string  `json:"course_code" validate:"required"`
	Score      float64 `json:"score" validate:"gte=0,lte=100"`
	Grade      string  `json:"grade"`   // optional; derived from Score when blank
	Remarks    string  `json:"remarks"` // optional
}

func (nm *NewMark) Validate(validate *validator.Validate) error {
	nm.RollNo = core.CleanString(nm.RollNo, true /* lower */)
	nm.CourseCode = core.CleanString(nm.CourseCode, true /* lower */)
	nm.Grade = core.CleanString(nm.Grade)
	nm.Remarks = core.CleanString(nm.Remarks)
	return validate.Struct(nm)
}

// GradeFor maps a score to the department's letter-grade bands.
func GradeFor(score float64) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 75:
		return "B+"
	case score >= 65:
		return "B"
	case score >= 50:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}
