package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/ports"
)

const uniqueViolation = "23505"

const userColumns = `id, username, email, first_name, last_name, is_active, roles, date_joined, last_login, password_hash`

// UserRepository is the Postgres credential store adapter.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	DateJoined   time.Time      `db:"date_joined"`
	LastLogin    sql.NullTime   `db:"last_login"`
	PasswordHash string         `db:"password_hash"`
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := make([]interface{}, 0, 4)

	where := ""
	if filter.Username != "" {
		args = append(args, "%"+filter.Username+"%")
		where = fmt.Sprintf(" WHERE username ILIKE $%d", len(args))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		clause := "WHERE"
		if where != "" {
			clause = "AND"
		}
		where += fmt.Sprintf(" %s email ILIKE $%d", clause, len(args))
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, (filter.Page-1)*filter.Limit)
	offsetPos := len(args)
	query += where + fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", limitPos, offsetPos)

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toDomain())
	}
	return users, nil
}

// Create inserts a new user inside a short-lived transaction: the username
// existence check and the insert either commit together or not at all. The
// unique index backstops concurrent registrations of the same name.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create user: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, user.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	var row userRow
	query := `INSERT INTO users (username, email, first_name, last_name, is_active, roles, date_joined, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns
	err = tx.GetContext(ctx, &row, query,
		user.Username, user.Email, user.FirstName, user.LastName,
		user.IsActive, pq.StringArray(user.Roles.Values()), user.DateJoined, user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create user: %w", err)
	}
	return row.toDomain(), nil
}

// Update writes the mutable profile fields. Username and id are never part
// of the statement.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	var row userRow
	query := `UPDATE users SET email = $2, first_name = $3, last_name = $4, is_active = $5
		WHERE id = $1
		RETURNING ` + userColumns
	err := r.db.GetContext(ctx, &row, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return requireAffected(res)
}

// RecordLogin persists the last-login timestamp; concurrent logins are
// last-write-wins.
func (r *UserRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return requireAffected(res)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res)
}

func (row *userRow) toDomain() *domain.User {
	user := &domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		IsActive:     row.IsActive,
		Roles:        domain.NewRoleSet(row.Roles...),
		DateJoined:   row.DateJoined,
		PasswordHash: row.PasswordHash,
	}
	if row.LastLogin.Valid {
		t := row.LastLogin.Time
		user.LastLogin = &t
	}
	return user
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
