package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/blog-api/internal/repo"
)

var postColumns = []string{"id", "title", "content", "user_id", "created_at"}

func TestPostHandler_CreatePost(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("Hello", "World", int64(5)).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(1, "Hello", "World", 5, time.Now()))

	h := &PostHandler{Repo: repo.NewPostRepo(db)}
	req := withUser(requestWithChiURLParams("POST", "/posts",
		jsonBody(t, map[string]string{"title": "Hello", "content": "World"}), nil), 5)
	rr := httptest.NewRecorder()
	h.CreatePost(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreatePost status: got %d, want 201 (%s)", rr.Code, rr.Body.String())
	}
	var post struct {
		ID     int  `json:"id"`
		UserID *int `json:"userId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&post); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if post.ID != 1 || post.UserID == nil || *post.UserID != 5 {
		t.Errorf("unexpected post: %+v", post)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_MissingFields(t *testing.T) {
	db, mock := newMock(t)
	h := &PostHandler{Repo: repo.NewPostRepo(db)}

	for _, body := range [][]byte{
		jsonBody(t, map[string]string{"title": "only title"}),
		[]byte(""),
	} {
		rr := httptest.NewRecorder()
		h.CreatePost(rr, httptest.NewRequest("POST", "/posts", bytes.NewReader(body)))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("CreatePost(%q) status: got %d, want 400", body, rr.Code)
		}
		fields, _ := decodeBody(t, rr)["fields"].(map[string]interface{})
		if fields["content"] != "required" {
			t.Errorf("CreatePost(%q) fields: %v", body, fields)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_ListPosts_WithComments(t *testing.T) {
	db, mock := newMock(t)

	now := time.Now()
	mock.ExpectQuery(`LEFT JOIN comments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "user_id", "created_at",
			"c_id", "c_content", "c_user_id", "c_created_at"}).
			AddRow(1, "p", "c", nil, now, 1, "first", nil, now).
			AddRow(1, "p", "c", nil, now, 2, "second", nil, now))

	h := &PostHandler{Repo: repo.NewPostRepo(db)}
	rr := httptest.NewRecorder()
	h.ListPosts(rr, httptest.NewRequest("GET", "/posts", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("ListPosts status: got %d, want 200", rr.Code)
	}
	var posts []struct {
		ID       int `json:"id"`
		Comments []struct {
			Content string `json:"content"`
			PostID  int    `json:"postId"`
		} `json:"comments"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&posts); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(posts) != 1 || len(posts[0].Comments) != 2 ||
		posts[0].Comments[0].Content != "first" || posts[0].Comments[1].Content != "second" {
		t.Errorf("unexpected posts: %+v", posts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_ListPosts_EmptyIsOK(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`LEFT JOIN comments`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := &PostHandler{Repo: repo.NewPostRepo(db)}
	rr := httptest.NewRecorder()
	h.ListPosts(rr, httptest.NewRequest("GET", "/posts", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("ListPosts status: got %d, want 200", rr.Code)
	}
	if got := rr.Body.String(); got != "[]\n" {
		t.Errorf("body: got %q, want []", got)
	}
}

func TestPostHandler_ListUserPosts(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`WHERE user_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(postColumns))

	h := &PostHandler{Repo: repo.NewPostRepo(db)}
	rr := httptest.NewRecorder()
	h.ListUserPosts(rr, requestWithChiURLParams("GET", "/users/3/posts", nil, map[string]string{"userId": "3"}))

	if rr.Code != http.StatusOK || rr.Body.String() != "[]\n" {
		t.Errorf("ListUserPosts: got %d %q", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_ListUserPosts_AlwaysResponds(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`WHERE user_id = \$1`).
		WithArgs(3).
		WillReturnError(sql.ErrConnDone)

	h := &PostHandler{Repo: repo.NewPostRepo(db)}

	rr := httptest.NewRecorder()
	h.ListUserPosts(rr, requestWithChiURLParams("GET", "/users/3/posts", nil, map[string]string{"userId": "3"}))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("store error: got %d, want 500", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ListUserPosts(rr, requestWithChiURLParams("GET", "/users/abc/posts", nil, map[string]string{"userId": "abc"}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want 400", rr.Code)
	}
}

func TestPostHandler_DeletePost(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := &PostHandler{Repo: repo.NewPostRepo(db)}
	rr := httptest.NewRecorder()
	h.DeletePost(rr, requestWithChiURLParams("DELETE", "/posts/1", nil, map[string]string{"postId": "1"}))

	if rr.Code != http.StatusOK {
		t.Errorf("DeletePost status: got %d, want 200", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_DeletePost_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	h := &PostHandler{Repo: repo.NewPostRepo(db)}
	rr := httptest.NewRecorder()
	h.DeletePost(rr, requestWithChiURLParams("DELETE", "/posts/999", nil, map[string]string{"postId": "999"}))

	if rr.Code != http.StatusNotFound {
		t.Errorf("DeletePost status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_DeletePost_InvalidID(t *testing.T) {
	db, mock := newMock(t)

	h := &PostHandler{Repo: repo.NewPostRepo(db)}
	rr := httptest.NewRecorder()
	h.DeletePost(rr, requestWithChiURLParams("DELETE", "/posts/x", nil, map[string]string{"postId": "x"}))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("DeletePost status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_BodyTooLarge(t *testing.T) {
	db, mock := newMock(t)
	h := &PostHandler{Repo: repo.NewPostRepo(db)}

	body := jsonBody(t, map[string]string{"title": "t", "content": string(bytes.Repeat([]byte("x"), 64))})
	rr := httptest.NewRecorder()
	req := withUser(httptest.NewRequest("POST", "/posts", bytes.NewReader(body)), 1)
	req.Body = http.MaxBytesReader(rr, req.Body, 16)
	h.CreatePost(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("CreatePost status: got %d, want 413 (%s)", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
