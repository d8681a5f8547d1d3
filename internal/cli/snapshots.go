package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List pattern snapshot memory",
		Run:   runSnapshots,
	}

	RootCmd.AddCommand(cmd)
}

func runSnapshots(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	snaps, err := s.LoadSnapshots(cmd.Context(), getJournal())
	if err != nil {
		exitErr("snapshots", err)
	}

	if len(snaps) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(snaps, "", "  ")
	fmt.Println(string(b))
}
