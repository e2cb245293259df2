package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "forget [id]",
		Short: "Delete a memory by id",
		Args:  cobra.ExactArgs(1),
		Run:   runForget,
	}

	RootCmd.AddCommand(cmd)
}

func runForget(cmd *cobra.Command, args []string) {
	id := args[0]

	e, st, err := openEngine()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	if err := e.Forget(cmd.Context(), id); err != nil {
		exitErr("forget", err)
	}

	fmt.Printf(`{"ok":true,"id":%q}`+"\n", id)
}
