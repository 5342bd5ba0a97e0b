package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/crucial707/blog-api/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// ========================
// CREATE POST
// ========================

// Create inserts a post. userID is nil for anonymous posts.
func (r *PostRepo) Create(ctx context.Context, title, content string, userID *int) (*models.Post, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(title) == "" {
		fields["title"] = "required"
	}
	if strings.TrimSpace(content) == "" {
		fields["content"] = "required"
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidation("a post needs a title and content", fields)
	}

	var (
		post  models.Post
		owner sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, title, content, user_id, created_at`,
		title, content, nullInt(userID),
	).Scan(&post.ID, &post.Title, &post.Content, &owner, &post.CreatedAt)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation && pqConstraint(err) == fkPostAuthor {
			return nil, errAuthorGone
		}
		return nil, apperror.NewStore("create post", err)
	}
	post.UserID = intPtr(owner)

	return &post, nil
}

// ========================
// LIST POSTS WITH COMMENTS
// ========================

// ListWithComments returns every post ordered by id, each with its comments
// in creation order.
func (r *PostRepo) ListWithComments(ctx context.Context) ([]models.PostWithComments, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.title, p.content, p.user_id, p.created_at,
		       c.id, c.content, c.user_id, c.created_at
		FROM posts p
		LEFT JOIN comments c ON c.post_id = p.id
		ORDER BY p.id, c.id
	`)
	if err != nil {
		return nil, apperror.NewStore("list posts", err)
	}
	defer rows.Close()

	posts := []models.PostWithComments{}
	index := make(map[int]int)
	for rows.Next() {
		var (
			p         models.Post
			postOwner sql.NullInt64
			cID       sql.NullInt64
			cContent  sql.NullString
			cOwner    sql.NullInt64
			cCreated  sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &postOwner, &p.CreatedAt,
			&cID, &cContent, &cOwner, &cCreated); err != nil {
			return nil, apperror.NewStore("scan post", err)
		}

		i, seen := index[p.ID]
		if !seen {
			p.UserID = intPtr(postOwner)
			posts = append(posts, models.PostWithComments{Post: p, Comments: []models.Comment{}})
			i = len(posts) - 1
			index[p.ID] = i
		}
		if cID.Valid {
			posts[i].Comments = append(posts[i].Comments, models.Comment{
				ID:        int(cID.Int64),
				Content:   cContent.String,
				PostID:    p.ID,
				UserID:    intPtr(cOwner),
				CreatedAt: cCreated.Time,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStore("list posts", err)
	}
	return posts, nil
}

// ========================
// LIST POSTS BY USER
// ========================

func (r *PostRepo) ListByUser(ctx context.Context, userID int) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, content, user_id, created_at
		 FROM posts
		 WHERE user_id = $1
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, apperror.NewStore("list user posts", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var (
			p     models.Post
			owner sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &owner, &p.CreatedAt); err != nil {
			return nil, apperror.NewStore("scan post", err)
		}
		p.UserID = intPtr(owner)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStore("list user posts", err)
	}
	return posts, nil
}

// ========================
// DELETE POST BY ID
// ========================

// Delete removes the post and, by cascade, its comments. It returns the
// number of posts deleted (0 or 1).
func (r *PostRepo) Delete(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return 0, apperror.NewStore("delete post", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperror.NewStore("delete post", err)
	}
	return n, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
