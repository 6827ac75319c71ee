package mock

import (
	"context"

	"github.com/fwojciec/cdpsupport"
)

var _ cdpsupport.Completer = (*Completer)(nil)

// Completer is a mock implementation of cdpsupport.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req cdpsupport.CompletionRequest) (string, error)
}

func (c *Completer) Complete(ctx context.Context, req cdpsupport.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}
