package agent_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/agent"
	"github.com/stretchr/testify/assert"
)

func TestBuildDocumentPrompt(t *testing.T) {
	t.Parallel()

	docs := []*cdpsupport.Document{
		{Title: "Sources", URL: "https://segment.com/docs/sources", Content: strings.Repeat("s", 2000), Platform: cdpsupport.PlatformSegment},
		{Title: "Audiences", URL: "https://docs.lytics.com/audiences", Content: "Build audiences.", Platform: cdpsupport.PlatformLytics},
	}

	prompt := agent.BuildDocumentPrompt("How do sources work?", docs)

	assert.Contains(t, prompt, "User Question: How do sources work?")
	assert.Contains(t, prompt, "CDP: SEGMENT\nTitle: Sources\nURL: https://segment.com/docs/sources\n\n"+strings.Repeat("s", 1500)+"\n\n---\n\nCDP: LYTICS\nTitle: Audiences")
	assert.NotContains(t, prompt, strings.Repeat("s", 1501))
	assert.Contains(t, prompt, "Always cite the source URL")
}

func TestBuildDirectPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes the platform description", func(t *testing.T) {
		t.Parallel()

		platform := cdpsupport.DefaultCatalog().Find(cdpsupport.PlatformMParticle)
		prompt := agent.BuildDirectPrompt("How do I forward events?", platform)

		assert.Contains(t, prompt, "You are answering a question about mParticle")
		assert.Contains(t, prompt, "About mParticle:\nmParticle is a customer data platform")
		assert.Contains(t, prompt, "User Question: How do I forward events?")
		assert.Contains(t, prompt, agent.GeneralKnowledgeNote)
	})

	t.Run("works without a platform", func(t *testing.T) {
		t.Parallel()

		prompt := agent.BuildDirectPrompt("What is a CDP?", nil)

		assert.NotContains(t, prompt, "About ")
		assert.Contains(t, prompt, agent.GeneralKnowledgeNote)
	})
}
