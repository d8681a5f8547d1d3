package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillt/insight-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Assemble recent narratives into a budgeted digest",
		Long:  "Score the narratives of recent artifacts by recency and category, then greedily pack them into a character budget.",
		Run:   runDigest,
	}

	cmd.Flags().IntP("budget", "b", 2000, "Max characters in output")

	RootCmd.AddCommand(cmd)
}

func runDigest(cmd *cobra.Command, args []string) {
	budget, _ := cmd.Flags().GetInt("budget")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	result, err := s.Digest(cmd.Context(), store.DigestParams{
		Journal: getJournal(),
		Budget:  budget,
	})
	if err != nil {
		exitErr("digest", err)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
