package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/cdpsupport"
)

// Run executes the ask command. Documentation is loaded from the cache,
// or crawled, before the question is answered.
func (c *AskCmd) Run(deps *Dependencies) error {
	if err := deps.Library.LoadAll(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdpsupport.ErrorMessage(err))
		return err
	}

	answer := deps.Answerer.Answer(deps.Ctx, strings.Join(c.Question, " "))

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	if len(answer.URLs) > 0 {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Sources:")
		for _, u := range answer.URLs {
			fmt.Fprintf(deps.Stdout, "  %s\n", u)
		}
	}

	if answer.Source == cdpsupport.SourceError {
		return cdpsupport.Errorf(cdpsupport.EINTERNAL, "%s", answer.Text)
	}
	return nil
}
