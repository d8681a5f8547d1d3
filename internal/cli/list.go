package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillt/insight-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Run:   runList,
	}

	cmd.Flags().String("since", "", "Only entries at or after this time")
	cmd.Flags().String("until", "", "Only entries before this time")
	cmd.Flags().IntP("limit", "l", 50, "Max results")
	cmd.Flags().Bool("deleted", false, "Include soft-deleted entries")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	sinceStr, _ := cmd.Flags().GetString("since")
	untilStr, _ := cmd.Flags().GetString("until")
	limit, _ := cmd.Flags().GetInt("limit")
	deleted, _ := cmd.Flags().GetBool("deleted")

	var since, until time.Time
	var err error
	if sinceStr != "" {
		if since, err = parseWhen(sinceStr); err != nil {
			exitErr("parse --since", err)
		}
	}
	if untilStr != "" {
		if until, err = parseWhen(untilStr); err != nil {
			exitErr("parse --until", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.List(cmd.Context(), store.ListParams{
		Journal:        getJournal(),
		Since:          since,
		Until:          until,
		IncludeDeleted: deleted,
		Limit:          limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}
