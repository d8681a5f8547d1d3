// Package contract gates insight cards on a four-part structural
// requirement: a behavioral claim, concrete evidence, a contrast, and a
// scoped confidence statement. Cards that fail are dropped silently; the
// UI sees fewer cards, never an error card.
package contract

import "strings"

// Explanation is the structured form of a card explanation. Builders
// construct cards from this type; the rendered text is what the validator
// (and any legacy free-text path) sees.
type Explanation struct {
	Claim      string
	Evidence   []string
	Contrast   string
	Confidence string
}

// Render emits the four labeled sections in fixed order.
func (e Explanation) Render() string {
	var b strings.Builder
	b.WriteString("Claim: ")
	b.WriteString(e.Claim)
	b.WriteString("\nEvidence:\n")
	for _, item := range e.Evidence {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("Contrast: ")
	b.WriteString(e.Contrast)
	b.WriteString("\nConfidence: ")
	b.WriteString(e.Confidence)
	return b.String()
}
