package posts

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/crucial707/blog-api/cmd/cli/apiclient"
	"github.com/crucial707/blog-api/cmd/cli/output"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Posts
// ==========================
func InitPosts(rootCmd *cobra.Command) {

	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage posts",
	}

	postsCmd.AddCommand(
		listPostsCmd(),
		createPostCmd(),
		deletePostCmd(),
	)

	rootCmd.AddCommand(postsCmd)
}

// ==========================
// LIST
// ==========================
func listPostsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts with their comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			var posts []models.PostWithComments
			if err := apiclient.Call(http.MethodGet, "/posts", nil, &posts); err != nil {
				return err
			}
			if jsonOut {
				return output.JSON(cmd.OutOrStdout(), posts)
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []interface{}{p.ID, p.Title, author(p.UserID), len(p.Comments)})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Author", "Comments"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createPostCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			var post models.Post
			err := apiclient.Call(http.MethodPost, "/posts", map[string]string{
				"title":   title,
				"content": content,
			}, &post)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created post %d.\n", post.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&content, "content", "", "Post body")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deletePostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <postId>",
		Short: "Delete a post and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid post id %q", args[0])
			}
			if err := apiclient.Call(http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %d.\n", id)
			return nil
		},
	}
}

func author(userID *int) string {
	if userID == nil {
		return "-"
	}
	return strconv.Itoa(*userID)
}
