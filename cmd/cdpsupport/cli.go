package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/cdpsupport"
	"github.com/fwojciec/cdpsupport/library"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Catalog  cdpsupport.Catalog
	Library  *library.Library
	Store    cdpsupport.DocumentStore
	Answerer cdpsupport.Answerer
	Metrics  http.Handler

	// Listener overrides the serve address when set.
	Listener net.Listener
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Provider     string        `enum:"groq,gemini" default:"groq" help:"Language model provider (groq, gemini)"`
	CacheDir     string        `name:"cache-dir" env:"CDP_CACHE_DIR" default:"./cdp_cache" help:"Directory holding cached documentation"`
	Store        string        `enum:"json,sqlite" default:"json" help:"Cache backend (json, sqlite)"`
	Extractor    string        `enum:"selector,readability,trafilatura" default:"selector" help:"Content extractor (selector, readability, trafilatura)"`
	MaxPages     int           `name:"max-pages" default:"50" help:"Maximum pages visited per platform"`
	FetchTimeout time.Duration `name:"fetch-timeout" default:"10s" help:"Timeout for a single page fetch"`
	Rate         float64       `default:"0" help:"Requests per second per documentation host (0 disables limiting)"`
	Platforms    string        `help:"YAML file overriding the platform catalog"`
	LogLevel     string        `name:"log-level" enum:"debug,info,warn,error" default:"info" help:"Log level (debug, info, warn, error)"`

	Serve ServeCmd `cmd:"" help:"Serve the support chat over HTTP"`
	Crawl CrawlCmd `cmd:"" help:"Load or crawl platform documentation into the cache"`
	Ask   AskCmd   `cmd:"" help:"Answer a single question"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port int `env:"PORT" default:"5000" help:"Port to listen on"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	IDs []string `arg:"" optional:"" name:"platform" help:"Platforms to load (default: all)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" help:"Question to ask"`
	JSON     bool     `name:"json" help:"Print the answer as JSON"`
}
