package comments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/blog-api/cmd/cli/config"
)

func TestAddComment_SendsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/2/comments" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if c, err := r.Cookie("jwt"); err != nil || c.Value != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 11, "content": in["content"], "postId": 2})
	}))
	defer srv.Close()
	t.Setenv("BLOG_API_URL", srv.URL)
	t.Setenv("BLOGCTL_SESSION_FILE", filepath.Join(t.TempDir(), "session"))
	if err := config.SaveSession("tok"); err != nil {
		t.Fatal(err)
	}

	cmd := addCommentCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"2", "--content", "nice"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "Added comment 11 to post 2") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestDeleteComment_RejectsBadID(t *testing.T) {
	cmd := deleteCommentCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"0"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for id 0")
	}
}
