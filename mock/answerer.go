package mock

import (
	"context"

	"github.com/fwojciec/cdpsupport"
)

var _ cdpsupport.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of cdpsupport.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, question string) *cdpsupport.Answer
}

func (a *Answerer) Answer(ctx context.Context, question string) *cdpsupport.Answer {
	return a.AnswerFn(ctx, question)
}
