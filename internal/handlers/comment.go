package handlers

import (
	"net/http"

	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/crucial707/blog-api/internal/respond"
)

type CommentHandler struct {
	Repo *repo.CommentRepo
}

// CreateComment adds a comment under the {postId} post.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := urlID(r, "postId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.Repo.Create(r.Context(), postID, input.Content, callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "commentId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	deleted, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if deleted == 0 {
		writeError(w, r, apperror.NewNotFound("comment not found"))
		return
	}

	respond.Message(w, http.StatusOK, "comment deleted")
}
