// Package cli implements the agentic-memory CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/agentic-memory/internal/embedding"
	"github.com/rcliao/agentic-memory/internal/engine"
	"github.com/rcliao/agentic-memory/internal/store"
)

var (
	storePath   string
	backendFlag string
	maxFlag     int
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "agentic-memory",
	Short: "Ranked, self-pruning memory for AI agents",
	Long:  "Stores agent memories, ranks them by relevance, recency, and importance, and evicts the lowest-ranked once a capacity bound is exceeded.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "Store path (default: $AGENTIC_MEMORY_STORE or ~/.agentic-memory/memories.json)")
	RootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "Backend: file or sqlite (default: $AGENTIC_MEMORY_BACKEND or file)")
	RootCmd.PersistentFlags().IntVarP(&maxFlag, "max", "m", 0, "Capacity bound before pruning (default: $AGENTIC_MEMORY_MAX or 1000)")
}

func getStorePath() string {
	if storePath != "" {
		return storePath
	}
	if env := os.Getenv("AGENTIC_MEMORY_STORE"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	if getBackend() == "sqlite" {
		return filepath.Join(home, ".agentic-memory", "memories.db")
	}
	return filepath.Join(home, ".agentic-memory", "memories.json")
}

func getBackend() string {
	if backendFlag != "" {
		return backendFlag
	}
	if env := os.Getenv("AGENTIC_MEMORY_BACKEND"); env != "" {
		return env
	}
	return "file"
}

func getMaxMemories() int {
	if maxFlag > 0 {
		return maxFlag
	}
	if env := os.Getenv("AGENTIC_MEMORY_MAX"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return n
		}
	}
	return engine.DefaultMaxMemories
}

func openStore() (store.Store, error) {
	switch getBackend() {
	case "file":
		return store.NewFileStore(getStorePath())
	case "sqlite":
		return store.NewSQLiteStore(getStorePath())
	default:
		return nil, fmt.Errorf("unknown backend %q (use file or sqlite)", getBackend())
	}
}

func openEngine() (*engine.Engine, store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	e := engine.New(st, engine.Config{
		MaxMemories: getMaxMemories(),
		Embedder:    embedding.NewFromEnv(),
	})
	return e, st, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
