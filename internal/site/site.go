// Package site wires the pipeline stages together and owns output
// cleanup. A run is one-shot: clean, convert, build; idempotence comes
// from re-running after cleanup, not from incremental updates.
package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"searchive/internal/config"
	"searchive/internal/convert"
	"searchive/internal/enrich"
	"searchive/internal/render"
)

// Clean removes generated .jsonl files under the data directory and the
// generated output trees.
func Clean(cfg *config.Config) error {
	log.Debug().Msg("cleaning generated files")

	err := filepath.WalkDir(cfg.DataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".jsonl") {
			return os.Remove(path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, dir := range []string{"questions", "users", "tags"} {
		if err := os.RemoveAll(filepath.Join(cfg.OutDir, dir)); err != nil {
			return err
		}
	}
	return nil
}

// Convert regenerates the .jsonl tables from the XML dump.
func Convert(cfg *config.Config) error {
	return convert.Run(cfg.DataDir)
}

// Build loads, enriches and renders in one pass.
func Build(cfg *config.Config) error {
	tables, err := enrich.LoadTables(cfg.DataDir)
	if err != nil {
		return err
	}
	graph, err := enrich.Build(cfg, tables)
	if err != nil {
		return err
	}
	return render.New(cfg).WriteSite(graph)
}

// Run executes the full pipeline: clean, convert, build.
func Run(cfg *config.Config) error {
	if err := Clean(cfg); err != nil {
		return err
	}
	if err := convert.Run(cfg.DataDir); err != nil {
		return err
	}
	if err := Build(cfg); err != nil {
		return err
	}
	printGitSuggestion()
	return nil
}

func printGitSuggestion() {
	fmt.Println()
	fmt.Println("If you'd now like to create a deterministic git repo of this")
	fmt.Println("directory, consider running the following in Bash:")
	fmt.Println()
	fmt.Println("  git init && git add . && ")
	fmt.Println("  GIT_COMMITTER_DATE='Thu Jan  1 00:00:00 UTC 1970' \\")
	fmt.Println("  GIT_COMMITTER_NAME=' ' \\")
	fmt.Println("  GIT_COMMITTER_EMAIL='\\<\\>' \\")
	fmt.Println("  GIT_AUTHOR_DATE='Thu Jan  1 00:00:00 UTC 1970' \\")
	fmt.Println("  GIT_AUTHOR_NAME=' ' \\")
	fmt.Println("  GIT_AUTHOR_EMAIL='\\<\\>' \\")
	fmt.Println("  git commit \\")
	fmt.Println("  --allow-empty-message -m '' \\")
	fmt.Println("  --allow-empty;")
	fmt.Println()
}
