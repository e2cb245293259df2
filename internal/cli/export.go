package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump all memories as a JSON array",
		Long:  "Dump every memory in the canonical JSON format (the same shape the file backend persists), regardless of backend.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	e, st, err := openEngine()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	recs, err := e.List(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(recs, "", "  ")
	fmt.Println(string(b))
}
