package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillt/insight-engine/internal/engine"
	"github.com/quillt/insight-engine/internal/model"
	"github.com/quillt/insight-engine/internal/pattern"
	"github.com/quillt/insight-engine/internal/store"
	"github.com/quillt/insight-engine/internal/timewindow"
)

func init() {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute insights for a time window",
		Long: "Compute the insight artifact for a horizon, fold the window's patterns into\n" +
			"snapshot memory, and persist both.",
		Run: runCompute,
	}

	cmd.Flags().String("horizon", "weekly", "Horizon: weekly, summary, timeline")
	cmd.Flags().String("at", "", "Anchor time inside the window (default now)")
	cmd.Flags().Bool("dry-run", false, "Compute without persisting artifact or snapshots")
	cmd.Flags().Bool("debug", false, "Include the debug payload in output")

	RootCmd.AddCommand(cmd)
}

func runCompute(cmd *cobra.Command, args []string) {
	horizonStr, _ := cmd.Flags().GetString("horizon")
	atStr, _ := cmd.Flags().GetString("at")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	debug, _ := cmd.Flags().GetBool("debug")

	horizon := model.Horizon(horizonStr)
	if !model.ValidHorizons[horizon] {
		exitErr("compute", fmt.Errorf("unknown horizon %q (valid: weekly, summary, timeline)", horizonStr))
	}

	anchor := time.Now()
	if atStr != "" {
		t, err := parseWhen(atStr)
		if err != nil {
			exitErr("parse --at", err)
		}
		anchor = t
	}

	loc := location()
	win := timewindow.Of(windowKindFor(horizon), anchor, loc)
	journal := getJournal()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	entries, err := s.List(ctx, store.ListParams{
		Journal: journal,
		Since:   win.Start,
		Until:   win.End,
		Limit:   100000,
	})
	if err != nil {
		exitErr("load entries", err)
	}

	previous, err := s.LoadSnapshots(ctx, journal)
	if err != nil {
		exitErr("load snapshots", err)
	}

	eng := engine.New(logger)
	res, err := eng.ComputeInsightsForWindow(engine.ComputeParams{
		Horizon:           horizon,
		Events:            entries,
		WindowStart:       win.Start,
		WindowEnd:         win.End,
		Timezone:          loc,
		Wallet:            journal,
		PreviousSnapshots: previous,
	})
	if err != nil {
		exitErr("compute", err)
	}

	if !debug {
		res.Artifact.Debug = nil
	}

	if !dryRun {
		if err := s.SaveSnapshots(ctx, journal, res.Snapshots); err != nil {
			exitErr("save snapshots", err)
		}
		var patternIDs []string
		for _, p := range pattern.FromCards(res.Artifact.Cards) {
			patternIDs = append(patternIDs, p.ID)
		}
		id, err := s.SaveArtifact(ctx, journal, res.Artifact, patternIDs)
		if err != nil {
			exitErr("save artifact", err)
		}
		logger.Debug().Str("artifact_id", id).Int("cards", len(res.Artifact.Cards)).Msg("artifact saved")
	}

	b, _ := json.MarshalIndent(res.Artifact, "", "  ")
	fmt.Println(string(b))
}

func windowKindFor(h model.Horizon) model.WindowKind {
	if h == model.HorizonWeekly {
		return model.WindowWeek
	}
	return model.WindowMonth
}
