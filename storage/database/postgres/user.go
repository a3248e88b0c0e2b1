// Package pgrepos implements the domain repositories over postgres via sqlx.
package pgrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ayeshaa125789-lab/Superior-University-AI-Department-Portal/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username string, excluded ...user.User) error {
	args := []interface{}{username}
	q := `SELECT COUNT(*) FROM "user" WHERE username = $1`
	if len(excluded) > 0 {
		exclNames := make([]string, 0, len(excluded))
		for _, usr := range excluded {
			exclNames = append(exclNames, usr.Username)
		}
		var err error
		q, args, err = sqlx.In(`SELECT COUNT(*) FROM "user" WHERE username = ? AND username NOT IN (?)`, username, exclNames)
		if err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
		q = repo.db.Rebind(q)
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, q, args...); err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}
	if count > 0 {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO "user" (username, name, role, password_hash, created_at, updated_at, last_login)
		VALUES (:username, :name, :role, :password_hash, :created_at, :updated_at, :last_login)`, usr)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, username string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM "user" WHERE username = $1`, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	users := make([]user.User, 0)
	if err := repo.db.SelectContext(ctx, &users, `SELECT * FROM "user" ORDER BY username`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	q := `SELECT * FROM "user" WHERE 1=1`
	args := make([]interface{}, 0, 2)
	if filter.Role != "" {
		args = append(args, filter.Role)
		q += ` AND role = $1`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		q += ` AND (username ILIKE $` + itoa(len(args)) + ` OR name ILIKE $` + itoa(len(args)) + `)`
	}
	q += ` ORDER BY username`

	users := make([]user.User, 0)
	if err := repo.db.SelectContext(ctx, &users, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE "user"
		SET name          = :name,
		    role          = :role,
		    password_hash = :password_hash,
		    updated_at    = :updated_at,
		    last_login    = :last_login
		WHERE username = :username`, usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) DeleteUsersByUsername(ctx context.Context, usernames ...string) error {
	if len(usernames) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM "user" WHERE username IN (?)`, usernames)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
