package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
)

// User is an authenticable account. Username is the natural key;
// students log in with their roll number.
type User struct {
	Username     string    `json:"username" db:"username"`
	Name         string    `json:"name" db:"name"`
	Role         auth.Role `json:"role" db:"role"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login" db:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == auth.RoleAdmin }
func (u *User) IsTeacher() bool { return u.Role == auth.RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == auth.RoleStudent }

// Principal snapshots the identity for session binding; the hash stays behind.
func (u *User) Principal() auth.Principal {
	return auth.Principal{
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username        string    `json:"username" validate:"required,min=2,alphanum_"`
	Name            string    `json:"name" validate:"required"`
	Role            auth.Role `json:"role" validate:"required,role"`
	Password        string    `json:"password" validate:"required,min=6"`
	PasswordConfirm string    `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Empty fields are left untouched.
type UpdateUser struct {
	Name            string    `json:"name"`
	Role            auth.Role `json:"role" validate:"omitempty,role"`
	Password        string    `json:"password" validate:"omitempty,min=6"`
	PasswordConfirm string    `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	uu.Name = core.CleanString(uu.Name)
	return validate.Struct(uu)
}

// ChangePassword is the self-service password change input (any role).
type ChangePassword struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=6"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

func (cp ChangePassword) Validate(validate *validator.Validate) error {
	return validate.Struct(cp)
}

type QueryFilter struct {
	Search string    `query:"search"`
	Role   auth.Role `query:"role"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
