package models

import "time"

// Post is a blog entry. UserID is nil for posts created anonymously.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    *int      `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostWithComments is a post with its comments in creation order.
// Comments is never nil so it always encodes as a JSON array.
type PostWithComments struct {
	Post
	Comments []Comment `json:"comments"`
}
