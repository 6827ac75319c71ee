package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/cdpsupport"
)

// Relevance selection parameters.
const (
	// perPlatformCandidates is how many documents each platform contributes
	// when the question names no platform.
	perPlatformCandidates = 5
	// maxRanked is the number of candidates shown to the ranking model.
	maxRanked = 20
	// maxSelected is the number of documents returned.
	maxSelected = 3
	// excerptLength is the content length shown per candidate.
	excerptLength = 250

	rankMaxTokens   = 20
	rankTemperature = 0

	documentSeparator = "\n\n---\n\n"
)

// Candidates returns the documents to rank. A named platform contributes
// all of its documents, or a single synthetic document when it has none.
// Otherwise each platform contributes its first few documents, in catalog
// order.
func (a *Agent) Candidates(platform *cdpsupport.Platform) []*cdpsupport.Document {
	if platform != nil {
		docs := a.library.Documents(platform.ID)
		if len(docs) == 0 {
			a.logger.Warn("no documents for platform, using built-in description", "platform", platform.ID)
			return []*cdpsupport.Document{cdpsupport.NewSyntheticDocument(platform)}
		}
		return docs
	}

	var docs []*cdpsupport.Document
	for _, p := range a.catalog {
		platformDocs := a.library.Documents(p.ID)
		docs = append(docs, platformDocs[:min(perPlatformCandidates, len(platformDocs))]...)
	}
	return docs
}

// SelectDocuments returns up to three documents relevant to the question.
// The large model ranks the candidates; any failure to rank or to parse its
// output falls back to the first candidates in order.
func (a *Agent) SelectDocuments(ctx context.Context, question string, platform *cdpsupport.Platform) []*cdpsupport.Document {
	candidates := a.Candidates(platform)
	if len(candidates) == 0 || cdpsupport.HasSynthetic(candidates) {
		return candidates
	}

	ranked := candidates[:min(maxRanked, len(candidates))]
	fallback := candidates[:min(maxSelected, len(candidates))]

	text, err := a.completer.Complete(ctx, cdpsupport.CompletionRequest{
		Tier:        cdpsupport.TierLarge,
		Prompt:      BuildRankingPrompt(question, ranked),
		MaxTokens:   rankMaxTokens,
		Temperature: rankTemperature,
	})
	if err != nil {
		a.logger.Error("document ranking failed, using first documents", "err", err)
		return fallback
	}

	indices, ok := ParseIndices(text, len(ranked))
	if !ok {
		a.logger.Warn("failed to parse document indices, using first documents", "output", text)
		return fallback
	}

	selected := make([]*cdpsupport.Document, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, ranked[i])
	}
	return selected
}

// ParseIndices parses comma-separated 0-based indices into [0, n).
// It returns false if any token is not an integer or is out of range, or if
// the output holds no indices. Duplicates are dropped and at most three
// indices are kept, in the order given.
func ParseIndices(text string, n int) ([]int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	var indices []int
	seen := make(map[int]bool)
	for _, tok := range strings.Split(text, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || i < 0 || i >= n {
			return nil, false
		}
		if seen[i] || len(indices) == maxSelected {
			continue
		}
		seen[i] = true
		indices = append(indices, i)
	}
	return indices, true
}

// BuildRankingPrompt builds the prompt asking for the most relevant
// document indices.
func BuildRankingPrompt(question string, docs []*cdpsupport.Document) string {
	excerpts := make([]string, 0, len(docs))
	for _, doc := range docs {
		excerpts = append(excerpts, fmt.Sprintf("Title: %s\nURL: %s\nContent: %s",
			doc.Title, doc.URL, cdpsupport.Truncate(doc.Content, excerptLength)))
	}

	var sb strings.Builder
	sb.WriteString("You are a search engine designed to find the most relevant documentation for CDP (Customer Data Platform) questions. ")
	sb.WriteString("Given the following user query and document excerpts, return the indices of the 3 most relevant documents, separated by commas.\n\n")
	fmt.Fprintf(&sb, "Query: %s\n\n", question)
	sb.WriteString("Documents:\n")
	sb.WriteString(strings.Join(excerpts, documentSeparator))
	sb.WriteString("\n\nReturn only the indices (0-based) of the 3 most relevant documents, separated by commas.\n")
	return sb.String()
}
