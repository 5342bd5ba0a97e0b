package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/blog-api/internal/apperror"
)

// Counts is a snapshot of table sizes.
type Counts struct {
	Users    int64
	Posts    int64
	Comments int64
}

type StatsRepo struct {
	DB *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{DB: db}
}

func (r *StatsRepo) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.DB.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM users),
		       (SELECT COUNT(*) FROM posts),
		       (SELECT COUNT(*) FROM comments)
	`).Scan(&c.Users, &c.Posts, &c.Comments)
	if err != nil {
		return Counts{}, apperror.NewStore("count rows", err)
	}
	return c, nil
}
