package models

import "time"

type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	PostID    int       `json:"postId"`
	UserID    *int      `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
