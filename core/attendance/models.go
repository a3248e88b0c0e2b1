package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
)

// DateLayout is the civil-date format attendance is keyed on.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Record is one student's status in one course on one date.
// (RollNo, CourseCode, Date) is the natural key; re-marking overwrites.
type Record struct {
	RollNo     string `json:"roll_no" db:"roll_no"`
	CourseCode string `json:"course_code" db:"course_code"`
	Date       string `json:"date" db:"date"` // DateLayout
	Status     Status `json:"status" db:"status"`
}

// MarkSheet is a bulk marking request for one course on one date.
// Every student enrolled in the course's semester gets a record; rolls
// missing from Statuses are marked absent.
type MarkSheet struct {
	CourseCode string            `json:"course_code" validate:"required"`
	Date       string            `json:"date" validate:"required,datetime=2006-01-02"`
	Statuses   map[string]Status `json:"statuses"`
}

func (ms *MarkSheet) Validate(validate *validator.Validate) error {
	ms.CourseCode = core.CleanString(ms.CourseCode, true /* lower */)
	ms.Date = core.CleanString(ms.Date)
	cleaned := make(map[string]Status, len(ms.Statuses))
	for roll, status := range ms.Statuses {
		if !status.Valid() {
			return core.NewValidationError(nil, core.FieldError{Field: "statuses", Error: "status must be Present or Absent"})
		}
		cleaned[core.CleanString(roll, true /* lower */)] = status
	}
	ms.Statuses = cleaned
	return validate.Struct(ms)
}

// CourseSummary is a student's per-course attendance rollup.
type CourseSummary struct {
	CourseCode string  `json:"course_code"`
	CourseName string  `json:"course_name"`
	Present    int     `json:"present"`
	Total      int     `json:"total"`
	Percent    float64 `json:"percent"`
}

// Today is the civil-date key for the current day.
func Today() string { return time.Now().Format(DateLayout) }
