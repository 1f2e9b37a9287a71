package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codemapper/rubyoutline/internal/config"
	"github.com/codemapper/rubyoutline/internal/docstore"
	"github.com/codemapper/rubyoutline/internal/lsp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server on stdio",
	Long: `Serve speaks the Language Server Protocol over stdin/stdout and answers
textDocument/documentSymbol requests for open Ruby documents.

Editors should launch it with:

  rubyoutline serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	store, err := docstore.NewStore(cfg.BuildRegistry())
	if err != nil {
		return err
	}
	defer store.Shutdown()

	server := lsp.NewServer(store, logger)
	return server.Run(context.Background(), lsp.Stdio())
}
