package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history [pattern-id]",
		Short: "Show which artifacts a pattern contributed to",
		Args:  cobra.ExactArgs(1),
		Run:   runHistory,
	}

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ids, err := s.PatternHistory(cmd.Context(), args[0])
	if err != nil {
		exitErr("history", err)
	}

	if len(ids) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(ids, "", "  ")
	fmt.Println(string(b))
}
