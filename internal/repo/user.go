package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/crucial707/blog-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher interface {
	HashPassword(plain string) (string, error)
}

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB     *sql.DB
	Hasher PasswordHasher
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB, hasher PasswordHasher) *UserRepo {
	return &UserRepo{DB: db, Hasher: hasher}
}

// ==========================
// Create User (password hashed before storage)
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, email, plainPassword string) (*models.User, error) {
	hash, err := r.Hasher.HashPassword(plainPassword)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperror.NewValidation("password too long", map[string]string{"password": "maxbytes=72"})
	}
	if err != nil {
		return nil, apperror.New(apperror.Internal, "failed to hash password", err)
	}

	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, COALESCE(role, ''), created_at
	`

	user := &models.User{}
	err = r.DB.QueryRowContext(ctx, query, username, email, hash).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return nil, apperror.NewConflict("email already in use", err)
		}
		return nil, apperror.NewStore("create user", err)
	}

	return user, nil
}

// ==========================
// Find By Email (nil, nil when absent)
// ==========================
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, COALESCE(role, ''), created_at
		FROM users
		WHERE email = $1
	`

	user := &models.User{}
	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewStore("find user by email", err)
	}

	return user, nil
}
