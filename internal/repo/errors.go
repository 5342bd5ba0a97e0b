package repo

import (
	"errors"

	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the repos translate into apperror kinds.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Foreign key constraints named in the migrations.
const (
	fkPostAuthor    = "posts_user_id_fkey"
	fkCommentPost   = "comments_post_id_fkey"
	fkCommentAuthor = "comments_user_id_fkey"
)

// errAuthorGone is returned when the session's user row no longer exists.
var errAuthorGone = apperror.NewAuth("session user no longer exists")

// pqConstraint returns the violated constraint name, or "".
func pqConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// nullInt converts an optional id into a driver value.
func nullInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return int64(*p)
}
