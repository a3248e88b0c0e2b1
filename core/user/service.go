package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core"
	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/auth"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")
	// ErrInvalidCredentials deliberately covers both an unknown username and a
	// wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// dummyHash keeps Authenticate's work shape identical whether or not the
// username exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("!no-such-user!"), bcrypt.DefaultCost)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username string, excluded ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUser(ctx context.Context, username string) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		// FilterUsers applies AND on the available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Username or Name.
		FilterUsers(ctx context.Context, filter QueryFilter) ([]User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUsersByUsername(ctx context.Context, usernames ...string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(validate *validator.Validate, repo Repository) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) checkUniqueness(ctx context.Context, uname string, excl ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname, excl...); err != nil {
		if errors.Cause(err) == ErrUsernameExists {
			return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Authenticate verifies the plaintext password against the stored digest and
// returns the account on success. The caller binds it to a Session.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.repo.GetUser(ctx, core.CleanString(uname, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(pwd))
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return svc.SetLastLogin(ctx, usr)
}

// Create provisions a new account; admin only.
func (svc *Service) Create(ctx context.Context, sess *auth.Session, nu NewUser) (User, error) {
	if err := auth.Authorize(sess, auth.OpUserCreate); err != nil {
		return User{}, err
	}
	return svc.create(ctx, nu)
}

// create skips the gate; reserved for bootstrap.
func (svc *Service) create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(ctx, nu.Username); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Username:  nu.Username,
		Name:      nu.Name,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) QueryAll(ctx context.Context, sess *auth.Session) ([]User, error) {
	if err := auth.Authorize(sess, auth.OpUserList); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) Filter(ctx context.Context, sess *auth.Session, filter QueryFilter) ([]User, error) {
	if err := auth.Authorize(sess, auth.OpUserList); err != nil {
		return nil, err
	}
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllUsers(ctx)
	}
	return svc.repo.FilterUsers(ctx, filter)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUser(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, sess *auth.Session, uname string, uu UpdateUser) (User, error) {
	if err := auth.Authorize(sess, auth.OpUserUpdate); err != nil {
		return User{}, err
	}
	if err := uu.Validate(svc.validate); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.GetUser(ctx, core.CleanString(uname, true /* lower */))
	if err != nil {
		return User{}, err
	}
	if uu.Name != "" {
		usr.Name = uu.Name
	}
	if uu.Role != "" {
		usr.Role = uu.Role
	}
	if uu.Password != "" {
		if err = usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// ChangePassword lets the session's own principal rotate their password
// after re-verifying the current one.
func (svc *Service) ChangePassword(ctx context.Context, sess *auth.Session, cp ChangePassword) (User, error) {
	if err := auth.Authorize(sess, auth.OpPasswordChange); err != nil {
		return User{}, err
	}
	if err := cp.Validate(svc.validate); err != nil {
		return User{}, err
	}

	p, _ := sess.Current()
	usr, err := svc.repo.GetUser(ctx, p.Username)
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(cp.OldPassword); err != nil {
		return User{}, core.NewValidationError(
			ErrInvalidCredentials,
			core.FieldError{Field: "old_password", Error: "current password incorrect"},
		)
	}
	if err = usr.SetPassword(cp.NewPassword); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) Delete(ctx context.Context, sess *auth.Session, unames ...string) error {
	if err := auth.Authorize(sess, auth.OpUserDelete); err != nil {
		return err
	}
	return svc.repo.DeleteUsersByUsername(ctx, unames...)
}

// EnsureDefaultAdmin makes sure the configured admin account exists;
// called once at process start. Idempotent: an existing account (whatever
// its password) is left alone.
func (svc *Service) EnsureDefaultAdmin(ctx context.Context, uname, pwd string) (User, error) {
	uname = core.CleanString(uname, true /* lower */)
	usr, err := svc.repo.GetUser(ctx, uname)
	if err == nil {
		return usr, nil
	}
	if errors.Cause(err) != ErrNotFound {
		return User{}, errors.Wrap(err, "checking default admin")
	}
	return svc.create(ctx, NewUser{
		Username:        uname,
		Name:            "Administrator",
		Role:            auth.RoleAdmin,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
}
