package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries and snapshots as JSON",
		Long:  "Export a journal's entries and pattern snapshot memory as JSON, for moving caller-owned state between machines.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ex, err := s.ExportAll(cmd.Context(), getJournal())
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(ex, "", "  ")
	fmt.Println(string(b))
}
