package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	journalsCmd := &cobra.Command{
		Use:   "journals",
		Short: "Journal management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all journals",
		Run:   runJournalsList,
	}

	journalsCmd.AddCommand(listCmd)
	RootCmd.AddCommand(journalsCmd)
}

func runJournalsList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	journals, err := s.ListJournals(cmd.Context())
	if err != nil {
		exitErr("list journals", err)
	}

	b, _ := json.MarshalIndent(journals, "", "  ")
	fmt.Println(string(b))
}
