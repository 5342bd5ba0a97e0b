package comments

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/crucial707/blog-api/cmd/cli/apiclient"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/spf13/cobra"
)

func InitComments(rootCmd *cobra.Command) {
	commentsCmd := &cobra.Command{
		Use:   "comments",
		Short: "Manage comments",
	}
	commentsCmd.AddCommand(addCommentCmd(), deleteCommentCmd())
	rootCmd.AddCommand(commentsCmd)
}

func addCommentCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add <postId>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			var c models.Comment
			path := fmt.Sprintf("/posts/%d/comments", postID)
			if err := apiclient.Call(http.MethodPost, path, map[string]string{"content": content}, &c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added comment %d to post %d.\n", c.ID, c.PostID)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Comment text")
	return cmd
}

func deleteCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <commentId>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := apiclient.Call(http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %d.\n", id)
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
