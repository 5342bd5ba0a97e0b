package main

import (
	"fmt"
	"os"

	"github.com/crucial707/blog-api/cmd/cli/comments"
	"github.com/crucial707/blog-api/cmd/cli/posts"
	"github.com/crucial707/blog-api/cmd/cli/root"
	"github.com/crucial707/blog-api/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	users.InitUsers(rootCmd)
	posts.InitPosts(rootCmd)
	comments.InitComments(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
