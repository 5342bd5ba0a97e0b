// Package apiclient calls the blog API and carries the session cookie
// between CLI invocations.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crucial707/blog-api/cmd/cli/config"
)

const cookieName = "jwt"

var httpClient = &http.Client{Timeout: 15 * time.Second}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("status %d: %s", e.Status, e.Message)
	for field, reason := range e.Fields {
		msg += fmt.Sprintf("\n  %s: %s", field, reason)
	}
	return msg
}

// Call sends payload as JSON to path and decodes the response into out.
// The stored session is sent as the jwt cookie, and a jwt cookie in the
// response replaces it (or clears it when expired).
func Call(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := config.LoadSession()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := storeSession(resp); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(data))}
		var parsed struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(data, &parsed) == nil && parsed.Error != "" {
			apiErr.Message = parsed.Error
			apiErr.Fields = parsed.Fields
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func storeSession(resp *http.Response) error {
	for _, c := range resp.Cookies() {
		if c.Name != cookieName {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			return config.ClearSession()
		}
		return config.SaveSession(c.Value)
	}
	return nil
}
