package cli

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/codemapper/rubyoutline/internal/config"
	"github.com/codemapper/rubyoutline/internal/outline"
	"github.com/codemapper/rubyoutline/internal/syntax"
	"github.com/codemapper/rubyoutline/internal/watcher"
)

var (
	jsonFlag    bool
	watchFlag   bool
	includeFlag []string
)

var outlineCmd = &cobra.Command{
	Use:   "outline [paths...]",
	Short: "Print the symbol outline of Ruby files",
	Long: `Outline parses the given files or directories and prints each file's
symbol tree.

Examples:
  # Outline the current directory
  rubyoutline outline

  # Outline specific files as JSON
  rubyoutline outline app/models/user.rb --json

  # Only test files
  rubyoutline outline --include 'test/**_test.rb'

  # Re-print outlines as files change
  rubyoutline outline app/ --watch`,
	RunE: runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
	outlineCmd.Flags().BoolVar(&jsonFlag, "json", false, "emit JSON instead of an indented tree")
	outlineCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch for changes and re-print")
	outlineCmd.Flags().StringSliceVar(&includeFlag, "include", nil, "glob patterns selecting files (default from config)")
}

func runOutline(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	patterns := includeFlag
	if len(patterns) == 0 {
		patterns = cfg.Outline.Include
	}
	matchers, err := compileGlobs(patterns)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectFiles(paths, matchers)
	if err != nil {
		return err
	}

	registry := cfg.BuildRegistry()
	parser := syntax.NewParser()

	printAll := func(files []string) {
		sort.Strings(files)
		for _, file := range files {
			if err := printOutline(cmd, parser, registry, file); err != nil {
				logger.WithError(err).WithField("file", file).Warn("failed to outline file")
			}
		}
	}
	printAll(files)

	if !watchFlag {
		return nil
	}

	dirs := watchableDirs(paths)
	w, err := watcher.New(dirs)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.WithField("dirs", dirs).Info("watching for changes")
	err = w.Run(ctx, func(changed []string) {
		printAll(filterFiles(changed, matchers))
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func printOutline(cmd *cobra.Command, parser *syntax.Parser, registry *outline.Registry, file string) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	symbols := outline.Extract(parser.Parse(source), registry)

	if jsonFlag {
		payload := struct {
			File    string        `json:"file"`
			Symbols []*jsonSymbol `json:"symbols"`
		}{File: file, Symbols: toJSONSymbols(symbols)}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", file)
	printTree(cmd, symbols, 1)
	return nil
}

func printTree(cmd *cobra.Command, symbols []*outline.Symbol, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, sym := range symbols {
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s [%d:%d]\n",
			indent, sym.Kind, sym.Name, sym.Range.Start.Line+1, sym.Range.End.Line+1)
		printTree(cmd, sym.Children, depth+1)
	}
}

// jsonSymbol is the CLI's serialization of an outline symbol.
type jsonSymbol struct {
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	StartLine uint32        `json:"start_line"`
	EndLine   uint32        `json:"end_line"`
	Children  []*jsonSymbol `json:"children,omitempty"`
}

func toJSONSymbols(symbols []*outline.Symbol) []*jsonSymbol {
	out := make([]*jsonSymbol, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, &jsonSymbol{
			Name:      sym.Name,
			Kind:      sym.Kind.String(),
			StartLine: sym.Range.Start.Line + 1,
			EndLine:   sym.Range.End.Line + 1,
			Children:  toJSONSymbols(sym.Children),
		})
	}
	return out
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

func matchesAny(matchers []glob.Glob, path string) bool {
	if len(matchers) == 0 {
		return strings.HasSuffix(path, ".rb")
	}
	normalized := filepath.ToSlash(path)
	for _, g := range matchers {
		if g.Match(normalized) || g.Match(filepath.Base(normalized)) {
			return true
		}
	}
	return false
}

func collectFiles(paths []string, matchers []glob.Glob) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(p, ".rb") && matchesAny(matchers, p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func filterFiles(files []string, matchers []glob.Glob) []string {
	var kept []string
	for _, file := range files {
		if matchesAny(matchers, file) {
			kept = append(kept, file)
		}
	}
	return kept
}

func watchableDirs(paths []string) []string {
	var dirs []string
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		dirs = append(dirs, filepath.Dir(path))
	}
	return dirs
}
