package users

import (
	"bufio"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/crucial707/blog-api/cmd/cli/apiclient"
	"github.com/crucial707/blog-api/cmd/cli/config"
	"github.com/crucial707/blog-api/cmd/cli/output"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/spf13/cobra"
)

type authResult struct {
	Message string `json:"message"`
	User    struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts and sessions",
		Long: `Register or log in to the blog API.
The session cookie is stored locally for future commands.`,
	}

	usersCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd(), userPostsCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// Register User
// ==========================
func registerCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = promptPassword(cmd)
			}
			var res authResult
			err := apiclient.Call(http.MethodPost, "/register", map[string]string{
				"username": username,
				"email":    email,
				"password": password,
			}, &res)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d). Session saved.\n", res.User.Username, res.User.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// ==========================
// Login User
// ==========================
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = promptPassword(cmd)
			}
			var res authResult
			err := apiclient.Call(http.MethodPost, "/login", map[string]string{
				"email":    email,
				"password": password,
			}, &res)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Session saved.\n", res.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// ==========================
// Logout User
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiclient.Call(http.MethodPost, "/logout", nil, nil); err != nil {
				return err
			}
			// The server clears the cookie; drop any local copy regardless.
			if err := config.ClearSession(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// ==========================
// Posts By User
// ==========================
func userPostsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "posts <userId>",
		Short: "List posts written by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			var posts []models.Post
			if err := apiclient.Call(http.MethodGet, fmt.Sprintf("/users/%d/posts", id), nil, &posts); err != nil {
				return err
			}
			if jsonOut {
				return output.JSON(cmd.OutOrStdout(), posts)
			}
			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []interface{}{p.ID, p.Title, p.CreatedAt.Format("2006-01-02 15:04")})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func promptPassword(cmd *cobra.Command) string {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
