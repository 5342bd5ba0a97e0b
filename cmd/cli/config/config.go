package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL   = "http://localhost:3000"
	sessionFileName = ".blogctl_session"
)

// APIURL returns the base URL for the blog API.
// It can be overridden with the BLOG_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("BLOG_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// SessionPath is where the jwt cookie value is kept between invocations.
// BLOGCTL_SESSION_FILE overrides the default of ~/.blogctl_session.
func SessionPath() string {
	if v := os.Getenv("BLOGCTL_SESSION_FILE"); v != "" {
		return v
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, sessionFileName)
}

func SaveSession(token string) error {
	return os.WriteFile(SessionPath(), []byte(token), 0600)
}

// LoadSession returns the stored token, or "" when no session is saved.
func LoadSession() (string, error) {
	data, err := os.ReadFile(SessionPath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearSession removes the stored token. A missing file is not an error.
func ClearSession() error {
	err := os.Remove(SessionPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
