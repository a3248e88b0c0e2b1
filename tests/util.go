// Package testutil provides shared fixtures for service and API tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/course"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/student"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
)

// NewValidator returns a fully initialized validator and its translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	auth.InitValidators(validate, translator)
	return validate, translator
}

func AdminSession() *auth.Session {
	return auth.Authenticated(auth.Principal{Username: "admin", Name: "Administrator", Role: auth.RoleAdmin})
}

func TeacherSession(username string) *auth.Session {
	return auth.Authenticated(auth.Principal{Username: username, Name: "Teacher " + username, Role: auth.RoleTeacher})
}

func StudentSession(rollNo string) *auth.Session {
	return auth.Authenticated(auth.Principal{Username: rollNo, Name: "Student " + rollNo, Role: auth.RoleStudent})
}

func CreateUser(t *testing.T, repo user.Repository, uname, name, pwd string, role auth.Role) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Username:  uname,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(t *testing.T, repo student.Repository, rollNo, name string, semester int) student.Student {
	t.Helper()

	std, err := repo.CreateStudent(context.Background(), student.Student{
		RollNo:   rollNo,
		Name:     name,
		Semester: semester,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateCourse(t *testing.T, repo course.Repository, code, name string, semester int, teacher string) course.Course {
	t.Helper()

	crs := course.Course{
		Code:     code,
		Name:     name,
		Semester: semester,
	}
	if teacher != "" {
		crs.Teacher = &teacher
	}
	crs, err := repo.CreateCourse(context.Background(), crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}
