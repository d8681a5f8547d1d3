package contract

import (
	"regexp"
	"strings"

	"github.com/quillt/insight-engine/internal/model"
)

// rawMetricTitles match titles that are just a count, not a behavioral
// claim.
var rawMetricTitles = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^you wrote \d+`),
	regexp.MustCompile(`(?i)^you made \d+`),
	regexp.MustCompile(`(?i)^\d+\s+entries?\b`),
	regexp.MustCompile(`(?i)^\d+\s+reflections?\b`),
	regexp.MustCompile(`(?i)^total:?\s*\d+`),
}

// prescriptive matches advice language; the engine only states what was
// observed.
var prescriptive = regexp.MustCompile(`(?i)\b(try|should|must|need to|keep it up|build a habit)\b`)

var (
	evidenceHeading   = regexp.MustCompile(`(?im)^\s*evidence:`)
	nextHeading       = regexp.MustCompile(`(?im)^\s*(contrast|confidence):`)
	evidenceItem      = regexp.MustCompile(`(?m)^\s*(?:[-*\x{2022}]|\d+[.)])\s+\S`)
	contrastLine      = regexp.MustCompile(`(?im)^\s*contrast:\s*(\S.*)$`)
	confidenceLine    = regexp.MustCompile(`(?im)^\s*confidence:\s*(.+)$`)
	scopeSignalUnits  = regexp.MustCompile(`(?i)\d+\s*(day|week|month|year|entry|entries|reflection|active day)s?\b`)
	repetitionPhrases = regexp.MustCompile(`(?i)(repeat|recurr|recurring|consecutive|in a row|across \d+|multiple (weeks|windows|days))`)
	samplePhrases     = regexp.MustCompile(`(?i)(sample size|sample|window|observation|data point)`)
)

// Validate reports whether a candidate card satisfies the contract. Callers
// must treat false as "no card", never as an error.
func Validate(card model.InsightCard) bool {
	return len(Check(card)) == 0
}

// Check returns human-readable rejection reasons, empty when the card
// passes. Same semantics as Validate; the reasons exist for debug payloads
// only.
func Check(card model.InsightCard) []string {
	var reasons []string

	if isRawMetric(card.Title) {
		reasons = append(reasons, "title is a raw metric, not a behavioral claim")
	}
	if !hasEvidence(card) {
		reasons = append(reasons, "needs at least 2 evidence items or an Evidence: section with 2-4 items")
	}
	if !hasContrast(card.Explanation) {
		reasons = append(reasons, "missing a non-empty Contrast: line")
	}
	if !hasScopedConfidence(card.Explanation) {
		reasons = append(reasons, "Confidence: line missing or does not reference a concrete scope signal")
	}
	if prescriptive.MatchString(card.Title) || prescriptive.MatchString(card.Explanation) {
		reasons = append(reasons, "contains prescriptive language")
	}

	return reasons
}

func isRawMetric(title string) bool {
	t := strings.TrimSpace(title)
	for _, re := range rawMetricTitles {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// hasEvidence passes on >=2 evidence array items, or on an Evidence:
// section in the explanation holding 2-4 bulleted or numbered items before
// the next Contrast:/Confidence: heading.
func hasEvidence(card model.InsightCard) bool {
	if len(card.Evidence) >= 2 {
		return true
	}
	loc := evidenceHeading.FindStringIndex(card.Explanation)
	if loc == nil {
		return false
	}
	section := card.Explanation[loc[1]:]
	if next := nextHeading.FindStringIndex(section); next != nil {
		section = section[:next[0]]
	}
	n := len(evidenceItem.FindAllString(section, -1))
	return n >= 2 && n <= 4
}

func hasContrast(explanation string) bool {
	return contrastLine.MatchString(explanation)
}

// hasScopedConfidence requires the Confidence: line itself to name a
// concrete scope signal: a number with a time or sample unit, repetition
// phrasing, or sample-size/window phrasing.
func hasScopedConfidence(explanation string) bool {
	m := confidenceLine.FindStringSubmatch(explanation)
	if m == nil {
		return false
	}
	line := m[1]
	return scopeSignalUnits.MatchString(line) ||
		repetitionPhrases.MatchString(line) ||
		samplePhrases.MatchString(line)
}
