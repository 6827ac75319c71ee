package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/cdpsupport"
)

// Topic gate parameters.
const (
	gateMaxTokens   = 10
	gateTemperature = 0
)

// keywordTerms decide relatedness when the model cannot be reached.
var keywordTerms = []string{"cdp", "customer data", "segment", "mparticle", "lytics", "zeotap"}

// IsRelated reports whether the question concerns Customer Data Platforms.
// The small model decides; if it cannot be reached, KeywordRelated does.
func (a *Agent) IsRelated(ctx context.Context, question string) bool {
	text, err := a.completer.Complete(ctx, cdpsupport.CompletionRequest{
		Tier:        cdpsupport.TierSmall,
		Prompt:      BuildGatePrompt(question),
		MaxTokens:   gateMaxTokens,
		Temperature: gateTemperature,
	})
	if err != nil {
		a.logger.Error("topic check failed, using keywords", "err", err)
		return KeywordRelated(question)
	}
	return strings.Contains(strings.ToLower(text), "yes")
}

// KeywordRelated reports whether the question mentions a CDP term.
func KeywordRelated(question string) bool {
	q := strings.ToLower(question)
	for _, term := range keywordTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

// BuildGatePrompt builds the yes/no relatedness prompt.
func BuildGatePrompt(question string) string {
	return fmt.Sprintf(`Is the following query related to Customer Data Platforms (CDPs) like Segment, mParticle, Lytics, or Zeotap? Answer with just 'yes' or 'no'.

Query: %s
`, question)
}
