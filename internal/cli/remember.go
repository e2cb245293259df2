package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/agentic-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remember [content]",
		Short: "Store a memory",
		Long:  "Store a memory. Content can be a positional arg or piped via stdin.",
		Run:   runRemember,
	}

	cmd.Flags().StringP("type", "t", "semantic", "Type: episodic, semantic, procedural, working")
	cmd.Flags().StringP("importance", "i", "medium", "Importance: low, medium, high, critical")
	cmd.Flags().String("meta", "", "JSON metadata object (string values)")

	RootCmd.AddCommand(cmd)
}

func runRemember(cmd *cobra.Command, args []string) {
	typStr, _ := cmd.Flags().GetString("type")
	impStr, _ := cmd.Flags().GetString("importance")
	metaStr, _ := cmd.Flags().GetString("meta")

	// Get content: positional arg first, then check stdin
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	if strings.TrimSpace(content) == "" {
		exitErr("remember", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	imp, err := model.ParseImportance(impStr)
	if err != nil {
		exitErr("remember", err)
	}

	var meta map[string]string
	if metaStr != "" {
		if err := json.Unmarshal([]byte(metaStr), &meta); err != nil {
			exitErr("parse meta", err)
		}
	}

	e, st, err := openEngine()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	id, err := e.Remember(cmd.Context(), strings.TrimSpace(content), model.MemoryType(typStr), imp, meta)
	if err != nil {
		exitErr("remember", err)
	}

	fmt.Printf(`{"id":%q}`+"\n", id)
}
