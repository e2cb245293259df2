package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context [query]",
		Short: "Assemble relevant memories as a prompt-ready block",
		Args:  cobra.MinimumNArgs(1),
		Run:   runContext,
	}

	cmd.Flags().IntP("items", "n", 5, "Max memories in the block")

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	items, _ := cmd.Flags().GetInt("items")
	query := strings.Join(args, " ")

	e, st, err := openEngine()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	out, err := e.Context(cmd.Context(), query, items)
	if err != nil {
		exitErr("context", err)
	}

	fmt.Print(out)
}
