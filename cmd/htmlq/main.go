package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"htmltree/internal/config"
	"htmltree/internal/html"
	"htmltree/pkg/htmltree"

	"go.uber.org/zap"
)

var (
	// Query flags
	strict    = flag.Bool("strict", false, "Fail when a query term cannot be parsed")
	checkCSS  = flag.Bool("css", false, "Also validate each query as a CSS selector")
	showXPath = flag.Bool("xpath", false, "Print the XPath translation of each query")
	first     = flag.Bool("first", false, "Report only the first match (with -sample)")

	// Sample document flags
	sample         = flag.Bool("sample", false, "Run queries against the built-in login form")
	selfCloseSlash = flag.Bool("self-close-slash", false, "Render single tags as <br /> instead of <br>")
	noEscape       = flag.Bool("no-escape", false, "Write text content without escaping")

	// Output control flags
	verbose = flag.Bool("verbose", false, "Verbose output with debug logging")
	quiet   = flag.Bool("quiet", false, "Suppress all output except errors")
	stats   = flag.Bool("stats", false, "Show processing time")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	// Validate command line arguments
	if err := validateArgs(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		strict:   *strict,
		checkCSS: *checkCSS,
		xpath:    *showXPath,
		first:    *first,
		config:   buildConfig(),
		logger:   logger,
	}

	out := io.Writer(os.Stdout)
	if *quiet {
		out = io.Discard
	}

	startTime := time.Now()
	if *sample {
		err = runSample(out, flag.Args(), opts)
	} else {
		err = runExplain(out, flag.Args(), opts)
	}
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *stats {
		fmt.Fprintf(os.Stderr, "Processing completed in %v\n", time.Since(startTime))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: htmlq [flags] query...\n\n")
	fmt.Fprintf(os.Stderr, "Explains how each query is parsed. With -sample, runs the queries\n")
	fmt.Fprintf(os.Stderr, "against a built-in login form and prints the matching elements.\n\n")
	flag.PrintDefaults()
}

// options carries the settings shared by both modes
type options struct {
	strict   bool
	checkCSS bool
	xpath    bool
	first    bool
	config   config.Config
	logger   *zap.Logger
}

// validateArgs validates command line arguments
func validateArgs(queries []string) error {
	if len(queries) == 0 {
		return fmt.Errorf("at least one query is required")
	}
	if *quiet && *verbose {
		return fmt.Errorf("cannot specify both -quiet and -verbose")
	}
	if *first && !*sample {
		return fmt.Errorf("-first requires -sample")
	}
	return nil
}

// buildConfig creates the render configuration from command line flags
func buildConfig() config.Config {
	cfg := config.Default()
	cfg.SelfCloseSlash = *selfCloseSlash
	cfg.EscapeText = !*noEscape
	return cfg
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// checkQuery parses query and applies the -strict and -css checks
func checkQuery(query string, opts options) (htmltree.Sequence, error) {
	seq := htmltree.ParseSequence(query)
	opts.logger.Debug("parsed query",
		zap.String("query", query),
		zap.Int("terms", len(seq)),
		zap.Bool("valid", seq.Valid()),
	)

	if opts.strict && !seq.Valid() {
		return nil, fmt.Errorf("query %q has terms that match nothing", query)
	}

	if opts.checkCSS {
		if err := html.Validate(query); err != nil {
			if opts.strict {
				return nil, err
			}
			opts.logger.Warn("query is not valid CSS", zap.String("query", query), zap.Error(err))
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	return seq, nil
}

// runExplain prints the parsed terms of every query
func runExplain(w io.Writer, queries []string, opts options) error {
	for _, query := range queries {
		seq, err := checkQuery(query, opts)
		if err != nil {
			return err
		}
		explain(w, query, seq)

		if opts.xpath {
			expr, err := html.XPath(seq)
			if err != nil {
				fmt.Fprintf(w, "  xpath: (%v)\n", err)
				continue
			}
			fmt.Fprintf(w, "  xpath: %s\n", expr)
		}
	}
	return nil
}

func explain(w io.Writer, query string, seq htmltree.Sequence) {
	fmt.Fprintf(w, "query: %s\n", query)
	if len(seq) == 0 {
		fmt.Fprintf(w, "  (empty query, matches nothing)\n")
		return
	}

	terms := strings.Fields(query)
	for i, sel := range seq {
		fmt.Fprintf(w, "  %d  %-24s %s\n", i+1, terms[i], describe(sel))
	}
}

// describe lists the conditions of a selector term
func describe(sel htmltree.Selector) string {
	switch {
	case sel.Predicate != nil:
		return "predicate"
	case sel.Wildcard:
		return "any element"
	case sel.IsEmpty():
		return "unparseable, matches nothing"
	}

	var parts []string
	if sel.Tag != "" {
		parts = append(parts, "tag="+sel.Tag)
	}
	if sel.Class != "" {
		parts = append(parts, "class="+sel.Class)
	}
	if sel.ID != "" {
		parts = append(parts, "id="+sel.ID)
	}
	if sel.Attr != "" {
		if sel.HasValue {
			parts = append(parts, fmt.Sprintf("attr %s=%q", sel.Attr, sel.Value))
		} else {
			parts = append(parts, "attr "+sel.Attr)
		}
	}
	return strings.Join(parts, " ")
}

// runSample runs every query against the sample document
func runSample(w io.Writer, queries []string, opts options) error {
	page := sampleDocument()
	renderer := htmltree.NewRenderer(opts.config)

	var doc *html.Document
	if opts.checkCSS || opts.xpath {
		var err error
		doc, err = html.NewDocumentWithConfig(page, opts.config)
		if err != nil {
			return fmt.Errorf("failed to export sample document: %w", err)
		}
	}

	for _, query := range queries {
		seq, err := checkQuery(query, opts)
		if err != nil {
			return err
		}

		var found htmltree.NodeSet
		if opts.first {
			found = page.FirstSeq(seq)
		} else {
			found = page.QuerySeq(seq)
		}
		opts.logger.Info("ran query", zap.String("query", query), zap.Int("matches", found.Count()))

		fmt.Fprintf(w, "query: %s (%d %s)\n", query, found.Count(), plural(found.Count(), "match", "matches"))
		for _, n := range found {
			fmt.Fprintf(w, "  %s\n", renderer.RenderString(n))
		}

		if opts.checkCSS {
			compareCSS(w, doc, query, found, opts)
		}
		if opts.xpath {
			if xpathFound, err := doc.QuerySequence(seq); err == nil {
				fmt.Fprintf(w, "  xpath: %d %s\n", len(xpathFound), plural(len(xpathFound), "match", "matches"))
			}
		}
	}

	return nil
}

// compareCSS reports how many elements cascadia selects for the same query
func compareCSS(w io.Writer, doc *html.Document, query string, found htmltree.NodeSet, opts options) {
	cssFound, err := doc.QuerySelectorAll(query)
	if err != nil {
		return // already reported by checkQuery
	}
	if opts.first && len(cssFound) > 1 {
		cssFound = cssFound[:1]
	}

	distinct := make(map[*htmltree.Node]bool, len(found))
	for _, n := range found {
		distinct[n] = true
	}
	if len(distinct) != len(cssFound) {
		opts.logger.Debug("css result differs",
			zap.String("query", query),
			zap.Int("tree", len(distinct)),
			zap.Int("css", len(cssFound)),
		)
	}
	fmt.Fprintf(w, "  css: %d %s\n", len(cssFound), plural(len(cssFound), "match", "matches"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
