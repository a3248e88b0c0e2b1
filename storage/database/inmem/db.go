// Package inmemdb provides map-backed repository implementations.
// It backs tests and local development; the postgres package is the
// real deployment target.
package inmemdb

import (
	"sync"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/announce"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/attendance"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/feedback"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/marks"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
)

type DB struct {
	user         *userTable
	student      *studentTable
	course       *courseTable
	attendance   *attendanceTable
	mark         *markTable
	announcement *announcementTable
	feedback     *feedbackTable
}

func Open() *DB {
	return &DB{
		user:         &userTable{table: make(map[string]*user.User)},
		student:      &studentTable{table: make(map[string]*student.Student)},
		course:       &courseTable{table: make(map[string]*course.Course)},
		attendance:   &attendanceTable{table: make(map[string]*attendance.Record)},
		mark:         &markTable{table: make(map[string]*marks.Mark)},
		announcement: &announcementTable{table: make(map[string]*announce.Announcement)},
		feedback:     &feedbackTable{table: make(map[string]*feedback.Entry)},
	}
}

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User // username
	}
	studentTable struct {
		mutex sync.RWMutex
		table map[string]*student.Student // roll_no
	}
	courseTable struct {
		mutex sync.RWMutex
		table map[string]*course.Course // code
	}
	attendanceTable struct {
		mutex sync.RWMutex
		table map[string]*attendance.Record // roll_no|course_code|date
	}
	markTable struct {
		mutex sync.RWMutex
		table map[string]*marks.Mark // roll_no|course_code
	}
	announcementTable struct {
		mutex sync.RWMutex
		table map[string]*announce.Announcement // id
	}
	feedbackTable struct {
		mutex sync.RWMutex
		table map[string]*feedback.Entry // id
	}
)
