package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/heseber/gutenberg-org-to-epub/downloader/gutenberg"
)

const originPrefix = "https://www.projekt-gutenberg.org/"

type buildArgs struct {
	outputPath        string
	concurrency       int
	keepHeadingLevels bool
}

var bArgs buildArgs

var buildCmd = &cobra.Command{
	Use:   "build <book-url>",
	Short: "Download a book and assemble it into a single HTML file",
	Long:  "Download a book and assemble it into a single HTML file. The URL may point at any chapter, the index page, or the bare book directory",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&bArgs.outputPath, "output-path", "o", ".", "output path")
	buildCmd.Flags().IntVarP(&bArgs.concurrency, "concurrency", "c", 4, "parallel chapter and resource downloads")
	buildCmd.Flags().BoolVar(&bArgs.keepHeadingLevels, "keep-heading-levels", false, "keep the original heading levels instead of promoting them by one")
	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected exactly one book URL", ErrUsage)
	}
	baseUrl := args[0]
	if !strings.HasPrefix(baseUrl, originPrefix) {
		return fmt.Errorf("%w: the book URL must start with %v", ErrUsage, originPrefix)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	g := gutenberg.New()
	g.SetLogger(logger.Sugar())
	g.SetHeadingPromotion(!bArgs.keepHeadingLevels)
	g.SetConcurrency(bArgs.concurrency)

	if err := g.MakeBook(baseUrl, bArgs.outputPath); err != nil {
		return fmt.Errorf("failed to build book: %w", err)
	}

	return nil
}
