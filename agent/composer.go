package agent

import (
	"fmt"
	"strings"

	"github.com/fwojciec/cdpsupport"
)

// Answer generation parameters.
const (
	answerMaxTokens   = 1000
	answerTemperature = 0.2

	// contextExcerptLength is the content length of each document in the
	// answer prompt.
	contextExcerptLength = 1500
)

// GeneralKnowledgeNote ends every answer produced without documentation.
const GeneralKnowledgeNote = "[Note: This response is based on general knowledge rather than specific documentation]"

const agentIntro = "You are a helpful CDP (Customer Data Platform) support agent that specializes in answering questions about Segment, mParticle, Lytics, and Zeotap."

// BuildDirectPrompt builds the prompt used when no real documentation is
// available. The platform, when known, contributes its built-in description.
func BuildDirectPrompt(question string, platform *cdpsupport.Platform) string {
	var sb strings.Builder
	sb.WriteString(agentIntro)
	sb.WriteString("\n\n")

	if platform != nil {
		name := platform.DisplayName()
		fmt.Fprintf(&sb, "You are answering a question about %s, which is a Customer Data Platform (CDP).\n\n", name)
		if platform.Description != "" {
			fmt.Fprintf(&sb, "About %s:\n%s\n\n", name, strings.TrimSpace(platform.Description))
		}
	}

	sb.WriteString("Please answer this question as accurately as possible based on your knowledge:\n\n")
	fmt.Fprintf(&sb, "User Question: %s\n\n", question)
	sb.WriteString("For \"how-to\" questions, provide clear step-by-step instructions.\n")
	sb.WriteString("If you don't know the specific details, provide general guidance based on common patterns in CDPs.\n")
	sb.WriteString("Make it clear that you're providing general information that may need to be adapted to the specific platform.\n\n")
	fmt.Fprintf(&sb, "Add \"%s\" at the end of your answer.\n", GeneralKnowledgeNote)
	return sb.String()
}

// BuildDocumentPrompt builds the prompt that answers from documentation
// excerpts.
func BuildDocumentPrompt(question string, docs []*cdpsupport.Document) string {
	excerpts := make([]string, 0, len(docs))
	for _, doc := range docs {
		excerpts = append(excerpts, fmt.Sprintf("CDP: %s\nTitle: %s\nURL: %s\n\n%s",
			strings.ToUpper(string(doc.Platform)), doc.Title, doc.URL,
			cdpsupport.Truncate(doc.Content, contextExcerptLength)))
	}

	var sb strings.Builder
	sb.WriteString(agentIntro)
	sb.WriteString(" Use the following documentation excerpts to answer the user's question. If the information isn't in the documentation, say so.\n\n")
	sb.WriteString("For \"how-to\" questions, try to provide clear step-by-step instructions.\n")
	sb.WriteString("If the question compares different CDPs, highlight the key differences.\n")
	sb.WriteString("Always cite the source URL at the end of your answer.\n\n")
	fmt.Fprintf(&sb, "User Question: %s\n\n", question)
	sb.WriteString("Documentation Excerpts:\n")
	sb.WriteString(strings.Join(excerpts, documentSeparator))
	sb.WriteString("\n")
	return sb.String()
}
