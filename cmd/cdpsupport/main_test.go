package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/agent"
	main "github.com/fwojciec/cdpsupport/cmd/cdpsupport"
	"github.com/fwojciec/cdpsupport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docsPage renders a documentation page with enough words to be kept.
func docsPage(url string) string {
	return fmt.Sprintf(`<html><head><title>Docs for %s</title></head><body>
<div class="content"><p>%s</p></div>
</body></html>`, url, strings.Repeat("events are collected and routed to destinations ", 6))
}

// siteFetcher serves docsPage for every URL and counts fetches.
func siteFetcher(fetches *atomic.Int32) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			fetches.Add(1)
			return docsPage(url), nil
		},
		CloseFn: func() error { return nil },
	}
}

// supportCompleter says yes at the gate, picks the first document and
// answers with a fixed text.
func supportCompleter() *mock.Completer {
	return &mock.Completer{
		CompleteFn: func(_ context.Context, req cdpsupport.CompletionRequest) (string, error) {
			switch {
			case req.Tier == cdpsupport.TierSmall:
				return "yes", nil
			case req.MaxTokens == 20:
				return "0", nil
			default:
				return "Create a source in the Segment workspace.", nil
			}
		},
	}
}

func newMain(fetches *atomic.Int32) *main.Main {
	m := main.NewMain()
	m.Getenv = func(string) string { return "" }
	m.Fetcher = siteFetcher(fetches)
	m.Completer = supportCompleter()
	return m
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"serve", "crawl", "ask"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "--provider")
	assert.Contains(t, helpOutput, "--cache-dir")
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "serve")
	})

	t.Run("help flag prints help", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "crawl")
	})

	t.Run("missing groq key fails with hint", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32
		m := newMain(&fetches)
		m.Completer = nil

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--cache-dir", t.TempDir(), "ask", "What is Segment?"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "GROQ_API_KEY")
		assert.Contains(t, stderr.String(), "console.groq.com")
		assert.Zero(t, fetches.Load())
	})

	t.Run("missing gemini key fails with hint", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32
		m := newMain(&fetches)
		m.Completer = nil

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--provider", "gemini", "--cache-dir", t.TempDir(), "ask", "What is Segment?"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
		assert.Contains(t, stderr.String(), "aistudio.google.com")
	})

	t.Run("rejects unknown extractor", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32
		err := newMain(&fetches).Run(context.Background(), []string{"--extractor", "regex", "crawl"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}

func TestMain_Run_Ask(t *testing.T) {
	t.Parallel()

	t.Run("crawls, caches and answers as JSON", func(t *testing.T) {
		t.Parallel()

		// Story: a first run with an empty cache crawls every platform,
		// writes the cache files and answers from the Segment page.
		dir := t.TempDir()
		var fetches atomic.Int32
		stdout := &bytes.Buffer{}

		err := newMain(&fetches).Run(context.Background(),
			[]string{"--cache-dir", dir, "--log-level", "error", "ask", "--json", "How", "do", "I", "set", "up", "a", "Segment", "source?"},
			stdout, &bytes.Buffer{})
		require.NoError(t, err)

		var answer cdpsupport.Answer
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &answer))
		assert.Equal(t, cdpsupport.SourceDocBased, answer.Source)
		assert.Equal(t, cdpsupport.PlatformSegment, answer.Platform)
		assert.Equal(t, []string{"https://segment.com/docs/?ref=nav"}, answer.URLs)
		assert.Equal(t, "Create a source in the Segment workspace.", answer.Text)

		assert.Equal(t, int32(4), fetches.Load())
		for _, id := range cdpsupport.DefaultCatalog().IDs() {
			assert.FileExists(t, filepath.Join(dir, string(id)+"_docs.json"))
		}
	})

	t.Run("second run is served from the cache", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		args := []string{"--cache-dir", dir, "--log-level", "error", "ask", "What", "is", "Lytics?"}

		var first atomic.Int32
		require.NoError(t, newMain(&first).Run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{}))

		var second atomic.Int32
		stdout := &bytes.Buffer{}
		require.NoError(t, newMain(&second).Run(context.Background(), args, stdout, &bytes.Buffer{}))

		assert.Equal(t, int32(4), first.Load())
		assert.Zero(t, second.Load())
		assert.Contains(t, stdout.String(), "Sources:")
		assert.Contains(t, stdout.String(), "https://docs.lytics.com/")
	})

	t.Run("off-topic question is declined", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32
		m := newMain(&fetches)
		m.Completer = &mock.Completer{
			CompleteFn: func(context.Context, cdpsupport.CompletionRequest) (string, error) {
				return "no", nil
			},
		}

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--cache-dir", t.TempDir(), "--log-level", "error", "ask", "What's the weather?"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), agent.OffTopicText)
	})
}

func TestMain_Run_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("crawls named platforms into the sqlite cache", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var fetches atomic.Int32
		stdout := &bytes.Buffer{}

		err := newMain(&fetches).Run(context.Background(),
			[]string{"--store", "sqlite", "--cache-dir", dir, "--log-level", "error", "crawl", "segment", "zeotap"},
			stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, int32(2), fetches.Load())
		assert.Contains(t, stdout.String(), "segment  1 documents")
		assert.Contains(t, stdout.String(), "zeotap  1 documents")
		assert.Regexp(t, `segment  1 documents  crawled \d{4}-\d{2}-\d{2}T`, stdout.String())
		assert.NotContains(t, stdout.String(), "lytics")
		assert.FileExists(t, filepath.Join(dir, "cdpsupport.db"))
	})

	t.Run("unknown platform is rejected before crawling", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32
		stderr := &bytes.Buffer{}

		err := newMain(&fetches).Run(context.Background(),
			[]string{"--cache-dir", t.TempDir(), "crawl", "hubspot"},
			&bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, cdpsupport.ENOTFOUND, cdpsupport.ErrorCode(err))
		assert.Contains(t, stderr.String(), `platform "hubspot" not found`)
		assert.Zero(t, fetches.Load())
	})

	t.Run("platform catalog file overrides seeds", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		catalog := filepath.Join(dir, "platforms.yaml")
		require.NoError(t, os.WriteFile(catalog, []byte("platforms:\n  - id: segment\n    seed_url: https://docs.example.com/segment/\n"), 0o644))

		var fetched []string
		m := main.NewMain()
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				return docsPage(url), nil
			},
			CloseFn: func() error { return nil },
		}

		err := m.Run(context.Background(),
			[]string{"--platforms", catalog, "--cache-dir", dir, "--log-level", "error", "crawl", "segment"},
			&bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/segment/"}, fetched)
	})
}
