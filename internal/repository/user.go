package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/rincon/internal/db"
	"github.com/templui/rincon/internal/model"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrResetTokenNotFound = errors.New("reset token not found")
	ErrInvalidResetState  = errors.New("reset token and expiry must be set together")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByUsername(ctx context.Context, username string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	ByResetToken(ctx context.Context, token string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	ConsumeResetToken(ctx context.Context, userID, token, passwordHash string) error
	Delete(ctx context.Context, id string) error

	// WithTx runs fn against a repository bound to a single transaction.
	// Nested calls reuse the outer transaction.
	WithTx(ctx context.Context, fn func(repo UserRepository) error) error
}

type userRepository struct {
	db *sqlx.DB        // nil when bound to a transaction
	q  sqlx.ExtContext // *sqlx.DB or *sqlx.Tx
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db, q: db}
}

func (r *userRepository) WithTx(ctx context.Context, fn func(repo UserRepository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return db.WithTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		return fn(&userRepository{q: tx})
	})
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if !validResetState(user) {
		return ErrInvalidResetState
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO users (id, username, email, password_hash, reset_token, reset_token_expiry, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash, user.ResetToken, user.ResetTokenExpiry, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *userRepository) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE username = $1`, username)
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *userRepository) ByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE username = $1 OR email = $2 LIMIT 1`, username, email)
}

func (r *userRepository) ByResetToken(ctx context.Context, token string) (*model.User, error) {
	user, err := r.getOne(ctx, `SELECT * FROM users WHERE reset_token = $1`, token)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrResetTokenNotFound
	}
	return user, err
}

func (r *userRepository) getOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	user := &model.User{}

	err := sqlx.GetContext(ctx, r.q, user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Update writes the mutable fields. Username is immutable.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	if !validResetState(user) {
		return ErrInvalidResetState
	}

	query := `UPDATE users SET email = $1, password_hash = $2, reset_token = $3, reset_token_expiry = $4 WHERE id = $5`

	result, err := r.q.ExecContext(ctx, query, user.Email, user.PasswordHash, user.ResetToken, user.ResetTokenExpiry, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return err
	}

	return expectRow(result, ErrUserNotFound)
}

// ConsumeResetToken sets the new hash and clears the reset fields, but only
// while the given token is still the pending one.
func (r *userRepository) ConsumeResetToken(ctx context.Context, userID, token, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, reset_token = NULL, reset_token_expiry = NULL WHERE id = $2 AND reset_token = $3`

	result, err := r.q.ExecContext(ctx, query, passwordHash, userID, token)
	if err != nil {
		return err
	}

	return expectRow(result, ErrResetTokenNotFound)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectRow(result, ErrUserNotFound)
}

func validResetState(user *model.User) bool {
	return (user.ResetToken == nil) == (user.ResetTokenExpiry == nil)
}

func expectRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
