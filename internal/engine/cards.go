package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quillt/insight-engine/internal/contract"
	"github.com/quillt/insight-engine/internal/distribution"
	"github.com/quillt/insight-engine/internal/model"
	"github.com/quillt/insight-engine/internal/pattern"
	"github.com/quillt/insight-engine/internal/timewindow"
	"github.com/quillt/insight-engine/internal/tokens"
)

const (
	minCadenceEntries = 2
	minSpikeEntries   = 3
	minTopicEntries   = 3
	maxTopicCards     = 2
)

// buildCards derives candidate cards from the window's events and gates
// each one through the contract. Failed candidates come back as rejection
// records for the debug payload only.
func buildCards(events []model.Entry, days []timewindow.DayCount, scope model.WindowKind, loc *time.Location, now time.Time) ([]model.InsightCard, []model.RejectedCard) {
	var candidates []model.InsightCard

	if c := cadenceCard(events, days, scope, loc, now); c != nil {
		candidates = append(candidates, *c)
	}
	if c := spikeCard(events, days, loc, now); c != nil {
		candidates = append(candidates, *c)
	}
	if c := distributionCard(events, days, scope, now); c != nil {
		candidates = append(candidates, *c)
	}
	candidates = append(candidates, topicCards(events, days, now)...)

	var cards []model.InsightCard
	var rejected []model.RejectedCard
	for _, c := range candidates {
		if reasons := contract.Check(c); len(reasons) > 0 {
			rejected = append(rejected, model.RejectedCard{Title: c.Title, Reasons: reasons})
			continue
		}
		cards = append(cards, c)
	}
	return cards, rejected
}

// cadenceCard surfaces the weekday that gathers the most writing, when at
// least two entries land there.
func cadenceCard(events []model.Entry, days []timewindow.DayCount, scope model.WindowKind, loc *time.Location, now time.Time) *model.InsightCard {
	byWeekday := timewindow.GroupByWeekday(events, loc)
	if len(byWeekday) == 0 {
		return nil
	}

	best := time.Sunday
	bestCount := 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if byWeekday[wd] > bestCount {
			best, bestCount = wd, byWeekday[wd]
		}
	}
	if bestCount < minCadenceEntries {
		return nil
	}

	total := len(events)
	strength := float64(bestCount) / float64(total)
	dayName := strings.ToLower(best.String())
	others := total - bestCount

	contrast := "no other weekday reached that count"
	if others > 0 {
		contrast = fmt.Sprintf("the remaining %d entries spread across other weekdays", others)
	}

	expl := contract.Explanation{
		Claim:      fmt.Sprintf("Writing gathered on %ss more than on any other weekday this %s.", dayName, scope),
		Evidence:   cadenceEvidence(bestCount, total, dayName, len(days)),
		Contrast:   contrast,
		Confidence: fmt.Sprintf("based on %d entries across %d active days", total, len(days)),
	}

	return &model.InsightCard{
		ID:          pattern.MakeID(model.KindWeekdayCadence, map[string]any{"weekday": dayName}),
		Kind:        model.KindWeekdayCadence,
		Title:       fmt.Sprintf("Writing gathered on %ss", dayName),
		Explanation: expl.Render(),
		Evidence:    expl.Evidence,
		Tags:        map[string]string{"weekday": dayName},
		Strength:    &strength,
		ComputedAt:  now,
	}
}

func cadenceEvidence(count, total int, dayName string, activeDays int) []string {
	return []string{
		fmt.Sprintf("%d of %d entries landed on a %s", count, total, dayName),
		fmt.Sprintf("%d active days in the window overall", activeDays),
	}
}

// spikeCard surfaces a single day carrying a burst: at least three entries
// and at least double the average of the other active days.
func spikeCard(events []model.Entry, days []timewindow.DayCount, loc *time.Location, now time.Time) *model.InsightCard {
	if len(days) == 0 {
		return nil
	}

	peak := days[0]
	for _, d := range days[1:] {
		if d.Count > peak.Count {
			peak = d
		}
	}
	if peak.Count < minSpikeEntries {
		return nil
	}

	total := len(events)
	rest := total - peak.Count
	if len(days) > 1 {
		avgOthers := float64(rest) / float64(len(days)-1)
		if float64(peak.Count) < 2*avgOthers {
			return nil
		}
	}

	day, err := time.ParseInLocation("2006-01-02", peak.Day, loc)
	if err != nil {
		return nil
	}
	dayName := strings.ToLower(day.Weekday().String())
	strength := float64(peak.Count) / float64(total)

	contrast := "no other day was active"
	if len(days) > 1 {
		contrast = fmt.Sprintf("the other %d active days averaged %.1f entries", len(days)-1, float64(rest)/float64(len(days)-1))
	}

	expl := contract.Explanation{
		Claim: fmt.Sprintf("One %s drew a concentrated burst of writing.", dayName),
		Evidence: []string{
			fmt.Sprintf("%d entries landed on a single day", peak.Count),
			fmt.Sprintf("%d entries spread across the rest of the window", rest),
		},
		Contrast:   contrast,
		Confidence: fmt.Sprintf("based on %d active days in the window", len(days)),
	}

	return &model.InsightCard{
		ID:          pattern.MakeID(model.KindActivitySpike, map[string]any{"weekday": dayName}),
		Kind:        model.KindActivitySpike,
		Title:       fmt.Sprintf("A burst of writing on %s", dayName),
		Explanation: expl.Render(),
		Evidence:    expl.Evidence,
		Tags:        map[string]string{"weekday": dayName},
		Strength:    &strength,
		ComputedAt:  now,
	}
}

// distributionCard classifies the per-day histogram and scales the prose to
// the window's scope.
func distributionCard(events []model.Entry, days []timewindow.DayCount, scope model.WindowKind, now time.Time) *model.InsightCard {
	if len(days) < 2 {
		return nil
	}

	counts := make([]int, len(days))
	maxCount, minCount := days[0].Count, days[0].Count
	for i, d := range days {
		counts[i] = d.Count
		if d.Count > maxCount {
			maxCount = d.Count
		}
		if d.Count < minCount {
			minCount = d.Count
		}
	}

	shape, conf := distribution.Classify(counts)
	scaled := distribution.ScaleNarrative(scope, shape, conf, len(events))
	strength := float64(maxCount) / float64(len(events))

	expl := contract.Explanation{
		Claim: scaled.Summary,
		Evidence: []string{
			fmt.Sprintf("%d entries across %d active days", len(events), len(days)),
			fmt.Sprintf("the busiest day held %d entries", maxCount),
		},
		Contrast:   fmt.Sprintf("the quietest active day held %d entries", minCount),
		Confidence: fmt.Sprintf("%s confidence from %d entries in a one-%s window", scaled.Confidence, len(events), scope),
	}

	return &model.InsightCard{
		ID:          pattern.MakeID(model.KindDistributionShape, map[string]any{"shape": string(shape)}),
		Kind:        model.KindDistributionShape,
		Title:       scaled.Headline,
		Explanation: expl.Render(),
		Evidence:    expl.Evidence,
		Tags:        map[string]string{"shape": string(shape)},
		Strength:    &strength,
		ComputedAt:  now,
	}
}

// topicCards surfaces up to two words that recur across distinct entries.
// Counting only: a topic is a word that appears in enough separate entries,
// never an interpretation of what the entries say.
func topicCards(events []model.Entry, days []timewindow.DayCount, now time.Time) []model.InsightCard {
	docFreq := map[string]int{}
	for _, e := range events {
		for _, w := range tokens.Unique(e.Plaintext) {
			docFreq[w]++
		}
	}

	type topic struct {
		word  string
		count int
	}
	var topics []topic
	for w, c := range docFreq {
		if c >= minTopicEntries {
			topics = append(topics, topic{word: w, count: c})
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].count != topics[j].count {
			return topics[i].count > topics[j].count
		}
		return topics[i].word < topics[j].word
	})
	if len(topics) > maxTopicCards {
		topics = topics[:maxTopicCards]
	}

	total := len(events)
	var cards []model.InsightCard
	for _, t := range topics {
		strength := float64(t.count) / float64(total)
		expl := contract.Explanation{
			Claim: fmt.Sprintf("The theme %q recurs across separate entries.", t.word),
			Evidence: []string{
				fmt.Sprintf("%d of %d entries touched this theme", t.count, total),
				fmt.Sprintf("%d active days in the window", len(days)),
			},
			Contrast:   fmt.Sprintf("%d entries did not touch this theme", total-t.count),
			Confidence: fmt.Sprintf("repeated across %d separate entries", t.count),
		}
		cards = append(cards, model.InsightCard{
			ID:          pattern.MakeID(model.KindTopicCluster, map[string]any{"topic": t.word}),
			Kind:        model.KindTopicCluster,
			Title:       fmt.Sprintf("A recurring focus on %q", t.word),
			Explanation: expl.Render(),
			Evidence:    expl.Evidence,
			Tags:        map[string]string{"topic": t.word},
			Strength:    &strength,
			ComputedAt:  now,
		})
	}
	return cards
}
