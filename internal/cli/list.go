package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memories, newest first",
		Run:   runList,
	}

	cmd.Flags().Bool("ids-only", false, "Only output ids")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	e, st, err := openEngine()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	recs, err := e.List(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}

	if idsOnly {
		for _, rec := range recs {
			fmt.Println(rec.ID)
		}
		return
	}

	b, _ := json.MarshalIndent(recs, "", "  ")
	fmt.Println(string(b))
}
