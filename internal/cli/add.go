package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillt/insight-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a journal entry",
		Long:  "Add a journal entry. Text can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	cmd.Flags().String("at", "", "Entry timestamp (RFC3339 or YYYY-MM-DD, default now)")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	atStr, _ := cmd.Flags().GetString("at")

	// Get text: positional arg first, then check stdin
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			text = string(b)
		}
	}

	if strings.TrimSpace(text) == "" {
		exitErr("add", fmt.Errorf("text is required (positional arg or stdin)"))
	}

	var createdAt time.Time
	if atStr != "" {
		t, err := parseWhen(atStr)
		if err != nil {
			exitErr("parse --at", err)
		}
		createdAt = t
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entry, err := s.Add(cmd.Context(), store.AddParams{
		Journal:   getJournal(),
		Plaintext: strings.TrimSpace(text),
		CreatedAt: createdAt,
	})
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.Marshal(entry)
	fmt.Println(string(b))
}

// parseWhen accepts RFC3339 or a bare date in the configured timezone.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, location())
}
