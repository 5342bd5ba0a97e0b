package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// fakeHasher prefixes the password so tests can assert hashing happened.
type fakeHasher struct{ err error }

func (f fakeHasher) HashPassword(plain string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + plain, nil
}

var userColumns = []string{"id", "username", "email", "password_hash", "role", "created_at"}

func TestUserRepo_Create_HashesPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(username, email, password_hash\)`).
		WithArgs("alice", "alice@example.com", "hashed:s3cret").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "alice", "alice@example.com", "hashed:s3cret", "", time.Now()))

	repo := NewUserRepo(db, fakeHasher{})
	user, err := repo.Create(context.Background(), "alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 1 || user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "s3cret" {
		t.Error("password stored in plaintext")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "alice@example.com", "hashed:pw").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	repo := NewUserRepo(db, fakeHasher{})
	_, err = repo.Create(context.Background(), "alice", "alice@example.com", "pw")
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_HashFailureSkipsInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewUserRepo(db, fakeHasher{err: errors.New("boom")})
	if _, err := repo.Create(context.Background(), "a", "a@example.com", "pw"); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(2, "bob", "bob@example.com", "$2a$10$abc", "admin", time.Now()))

	repo := NewUserRepo(db, fakeHasher{})
	user, err := repo.FindByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user == nil || user.ID != 2 || user.Role != "admin" || user.PasswordHash != "$2a$10$abc" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_FindByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db, fakeHasher{})
	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_FindByEmail_StoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("x@example.com").
		WillReturnError(sql.ErrConnDone)

	repo := NewUserRepo(db, fakeHasher{})
	_, err = repo.FindByEmail(context.Background(), "x@example.com")
	if apperror.KindOf(err) != apperror.Store {
		t.Fatalf("expected store error, got %v", err)
	}
	if !errors.Is(err, sql.ErrConnDone) {
		t.Errorf("cause lost: %v", err)
	}
}

func TestUserRepo_Create_PasswordTooLong(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	_, err = NewUserRepo(db, fakeHasher{err: bcrypt.ErrPasswordTooLong}).
		Create(context.Background(), "a", "a@example.com", "long")
	appErr, ok := apperror.As(err)
	if !ok || appErr.Kind != apperror.Validation || appErr.Fields["password"] != "maxbytes=72" {
		t.Fatalf("expected password validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
