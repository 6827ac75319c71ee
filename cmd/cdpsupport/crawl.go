package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/cdpsupport"
)

// crawlTimes is implemented by stores that record when a platform was saved.
type crawlTimes interface {
	CrawledAt(ctx context.Context, platform cdpsupport.PlatformID) (time.Time, error)
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	ids := make([]cdpsupport.PlatformID, 0, len(c.IDs))
	for _, id := range c.IDs {
		ids = append(ids, cdpsupport.PlatformID(id))
	}
	if len(ids) == 0 {
		ids = deps.Catalog.IDs()
	}

	for _, id := range ids {
		if deps.Catalog.Find(id) == nil {
			fmt.Fprintf(deps.Stderr, "error: platform %q not found. Known platforms: %v\n", id, deps.Catalog.IDs())
			return cdpsupport.Errorf(cdpsupport.ENOTFOUND, "platform %q not found", id)
		}
	}

	if len(c.IDs) == 0 {
		if err := deps.Library.LoadAll(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cdpsupport.ErrorMessage(err))
			return err
		}
	} else {
		for _, id := range ids {
			if _, err := deps.Library.Load(deps.Ctx, id); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", cdpsupport.ErrorMessage(err))
				return err
			}
		}
	}

	times, _ := deps.Store.(crawlTimes)
	for _, id := range ids {
		fmt.Fprintf(deps.Stdout, "%s  %d documents", id, len(deps.Library.Documents(id)))
		if times != nil {
			if at, err := times.CrawledAt(deps.Ctx, id); err == nil {
				fmt.Fprintf(deps.Stdout, "  crawled %s", at.Format(time.RFC3339))
			}
		}
		fmt.Fprintln(deps.Stdout)
	}

	if err := deps.Library.Err(); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", cdpsupport.ErrorMessage(err))
		return err
	}
	return nil
}
