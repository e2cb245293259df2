package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/agentic-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Load memories from a JSON export",
		Long:  "Load a JSON array of memories (file arg or stdin), keeping ids and timestamps. The capacity bound is enforced after the batch.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	var recs []*model.MemoryRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		exitErr("parse input", err)
	}

	e, st, err := openEngine()
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	n, err := e.Import(cmd.Context(), recs)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"imported":%d}`+"\n", n)
}
