package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/crucial707/blog-api/internal/models"
)

type CommentRepo struct {
	DB *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{DB: db}
}

// Create adds a comment under postID. A missing post surfaces as a NotFound
// error through the foreign key, a deleted author as an Auth error.
func (r *CommentRepo) Create(ctx context.Context, postID int, content string, userID *int) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.NewValidation("a comment needs content", map[string]string{"content": "required"})
	}

	var (
		c     models.Comment
		owner sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO comments (content, post_id, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, content, post_id, user_id, created_at`,
		content, postID, nullInt(userID),
	).Scan(&c.ID, &c.Content, &c.PostID, &owner, &c.CreatedAt)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			switch pqConstraint(err) {
			case fkCommentPost:
				return nil, apperror.NewNotFound("post not found")
			case fkCommentAuthor:
				return nil, errAuthorGone
			}
		}
		return nil, apperror.NewStore("create comment", err)
	}
	c.UserID = intPtr(owner)

	return &c, nil
}

// Delete returns the number of comments deleted (0 or 1).
func (r *CommentRepo) Delete(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return 0, apperror.NewStore("delete comment", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperror.NewStore("delete comment", err)
	}
	return n, nil
}
