package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// ErrUsage marks command-line validation failures. They surface before any
// network activity and terminate with a distinct exit status.
var ErrUsage = errors.New("invalid usage")

var RootCmd = &cobra.Command{
	Use:   "gutenbook",
	Short: "Turn a projekt-gutenberg.org book into a single HTML file",
	Long:  "Turn a multi-page book from projekt-gutenberg.org into a single self-contained HTML file with locally mirrored images, stylesheets and scripts",
}
