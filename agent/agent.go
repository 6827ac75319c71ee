// Package agent answers support questions about the supported platforms.
//
// A question passes through a topical gate, platform identification,
// relevance selection over the loaded documentation, and finally answer
// composition. Every outcome, failures included, is an Answer tagged with
// the path that produced it.
package agent

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fwojciec/cdpsupport"
)

// Fixed answer texts.
const (
	EmptyQuestionText = "Please provide a question."
	LoadingText       = "The documentation is still loading. Please try again in a few minutes."
	OffTopicText      = "I'm a CDP support agent focused on helping with questions about Segment, mParticle, Lytics, and Zeotap. Please ask a question related to these Customer Data Platforms."
	NoDocsText        = "I couldn't find specific information about that in the CDP documentation. Could you please rephrase your question or provide more details?"
	errorTextPrefix   = "I encountered an error while trying to answer your question. Please try again later. Error: "
)

// Compile-time interface verification.
var _ cdpsupport.Answerer = (*Agent)(nil)

// Agent implements cdpsupport.Answerer over a document library and a
// language model.
type Agent struct {
	library   cdpsupport.DocumentLibrary
	completer cdpsupport.Completer
	catalog   cdpsupport.Catalog
	rules     cdpsupport.PlatformRules
	logger    *slog.Logger
}

// New creates an Agent. When rules is nil, platforms are identified by
// their IDs. A nil logger discards log output.
func New(library cdpsupport.DocumentLibrary, completer cdpsupport.Completer, catalog cdpsupport.Catalog, rules cdpsupport.PlatformRules, logger *slog.Logger) *Agent {
	if rules == nil {
		rules = cdpsupport.RulesFor(catalog)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Agent{
		library:   library,
		completer: completer,
		catalog:   catalog,
		rules:     rules,
		logger:    logger,
	}
}

// Answer answers a question. It never returns nil.
func (a *Agent) Answer(ctx context.Context, question string) *cdpsupport.Answer {
	question = strings.TrimSpace(question)
	if question == "" {
		return &cdpsupport.Answer{Text: EmptyQuestionText, Source: cdpsupport.SourceError}
	}
	if !a.library.Ready() {
		return &cdpsupport.Answer{Text: LoadingText, Source: cdpsupport.SourceError}
	}

	if !a.IsRelated(ctx, question) {
		a.logger.Info("query not related to CDPs")
		return &cdpsupport.Answer{Text: OffTopicText, Source: cdpsupport.SourceOffTopic}
	}

	id, identified := a.rules.Identify(question)
	var platform *cdpsupport.Platform
	if identified {
		platform = a.catalog.Find(id)
	}

	docs := a.SelectDocuments(ctx, question, platform)
	if len(docs) == 0 {
		a.logger.Info("no relevant documents found")
		return &cdpsupport.Answer{Text: NoDocsText, Source: cdpsupport.SourceNoDocs}
	}

	if cdpsupport.HasSynthetic(docs) {
		return a.answerDirect(ctx, question, platform)
	}
	return a.answerFromDocuments(ctx, question, platform, docs)
}

func (a *Agent) answerDirect(ctx context.Context, question string, platform *cdpsupport.Platform) *cdpsupport.Answer {
	logger := a.logger.With("path", cdpsupport.SourceDirect, "platform", platformID(platform))
	logger.Info("answering without documentation")

	text, err := a.completer.Complete(ctx, cdpsupport.CompletionRequest{
		Tier:        cdpsupport.TierLarge,
		Prompt:      BuildDirectPrompt(question, platform),
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		logger.Error("failed to generate answer", "err", err)
		return ErrorAnswer(err)
	}

	return &cdpsupport.Answer{
		Text:     text,
		Source:   cdpsupport.SourceDirect,
		Platform: platformID(platform),
	}
}

func (a *Agent) answerFromDocuments(ctx context.Context, question string, platform *cdpsupport.Platform, docs []*cdpsupport.Document) *cdpsupport.Answer {
	logger := a.logger.With("path", cdpsupport.SourceDocBased, "platform", platformID(platform))
	logger.Info("answering from documentation", "documents", len(docs))

	text, err := a.completer.Complete(ctx, cdpsupport.CompletionRequest{
		Tier:        cdpsupport.TierLarge,
		Prompt:      BuildDocumentPrompt(question, docs),
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		logger.Error("failed to generate answer", "err", err)
		return ErrorAnswer(err)
	}

	return &cdpsupport.Answer{
		Text:     text,
		Source:   cdpsupport.SourceDocBased,
		Platform: platformID(platform),
		URLs:     cdpsupport.URLs(docs),
	}
}

// ErrorAnswer reports a failure to the caller as an answer.
func ErrorAnswer(err error) *cdpsupport.Answer {
	msg := err.Error()
	var e *cdpsupport.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return &cdpsupport.Answer{Text: errorTextPrefix + msg, Source: cdpsupport.SourceError}
}

func platformID(p *cdpsupport.Platform) cdpsupport.PlatformID {
	if p == nil {
		return ""
	}
	return p.ID
}
