package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/agentic-memory/internal/mcp"
)

const version = "0.1.0"

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve memory tools over MCP on stdio",
		Long:  "Expose store_memory, recall_memory, and list_memories as MCP tools over stdin/stdout for agent runtimes.",
		Run:   runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	e, st, err := openEngine()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	if err := mcp.NewServer(e, version).ServeStdio(); err != nil {
		exitErr("serve", err)
	}
}
