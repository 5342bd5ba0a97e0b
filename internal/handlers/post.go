package handlers

import (
	"net/http"

	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/crucial707/blog-api/internal/respond"
)

type PostHandler struct {
	Repo *repo.PostRepo
}

//
// ==========================
// Create Post
// ==========================
//

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title   string `json:"title" validate:"max=255"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateStruct(input); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.Repo.Create(r.Context(), input.Title, input.Content, callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, post)
}

//
// ==========================
// List Posts (with comments)
// ==========================
//

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.ListWithComments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, posts)
}

//
// ==========================
// List Posts By User
// ==========================
//

func (h *PostHandler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, posts)
}

//
// ==========================
// Delete Post
// ==========================
//

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "postId")
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
		writeError(w, r, apperror.NewNotFound("post not found"))
		return
	}

	respond.Message(w, http.StatusOK, "post deleted")
}

// callerID is the authenticated user's id, or nil for anonymous requests.
func callerID(r *http.Request) *int {
	if id, ok := middleware.GetUserID(r.Context()); ok {
		return &id
	}
	return nil
}
