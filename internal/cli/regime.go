package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillt/insight-engine/internal/model"
	"github.com/quillt/insight-engine/internal/regime"
)

func init() {
	cmd := &cobra.Command{
		Use:   "regime",
		Short: "Detect the current emergence regime and track dwell time",
		Long: "Classify current meaning density from the active pattern count and update the\n" +
			"session-scoped dwell state. Read-only with respect to insight computation.",
		Run: runRegime,
	}

	cmd.Flags().Int("nodes", -1, "Active meaning-node count (default: patterns seen in the last 30 days)")
	cmd.Flags().String("session-start", "", "Session start timestamp (default: carried from previous state, else now)")

	RootCmd.AddCommand(cmd)
}

func runRegime(cmd *cobra.Command, args []string) {
	nodes, _ := cmd.Flags().GetInt("nodes")
	sessionStr, _ := cmd.Flags().GetString("session-start")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	journal := getJournal()
	now := time.Now().UTC()

	if nodes < 0 {
		snaps, err := s.LoadSnapshots(ctx, journal)
		if err != nil {
			exitErr("load snapshots", err)
		}
		cutoff := now.AddDate(0, 0, -30)
		count := 0
		for _, snap := range snaps {
			if snap.LastSeen.After(cutoff) {
				count++
			}
		}
		nodes = count
	}

	previous, err := s.LoadDwell(ctx, journal)
	if err != nil {
		exitErr("load dwell state", err)
	}

	sessionStart := now
	if sessionStr != "" {
		t, err := parseWhen(sessionStr)
		if err != nil {
			exitErr("parse --session-start", err)
		}
		sessionStart = t.UTC()
	} else if previous != nil {
		sessionStart = previous.SessionStart
	}

	current := regime.Detect(nodes)
	state := regime.TrackDwell(current, sessionStart, now, previous)

	if err := s.SaveDwell(ctx, journal, state); err != nil {
		exitErr("save dwell state", err)
	}

	out := struct {
		Nodes  int                    `json:"nodes"`
		Regime model.EmergenceRegime  `json:"regime"`
		Dwell  model.RegimeDwellState `json:"dwell"`
	}{Nodes: nodes, Regime: current, Dwell: state}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
