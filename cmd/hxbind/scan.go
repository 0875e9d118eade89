package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/net/html"

	"github.com/pthm/hxbind"
	"github.com/pthm/hxbind/internal/config"
	"github.com/pthm/hxbind/internal/ctxlog"
	"github.com/pthm/hxbind/lib/dom"
)

// errDiagnostics signals a non-zero exit whose reason was already printed.
var errDiagnostics = errors.New("diagnostics reported")

// scanResult is one directive-bearing element.
type scanResult struct {
	Source      string                   `json:"source"`
	Element     string                   `json:"element"`
	Directives  *hxbind.ParsedDirectives `json:"directives"`
	Diagnostics hxbind.Diagnostics       `json:"diagnostics,omitempty"`
}

func (c *cli) runScan(ctx context.Context, files []string, checkOnly bool) error {
	scanner := hxbind.NewScanner(hxbind.WithLogger(ctxlog.FromContext(ctx)))

	var results []scanResult
	if len(files) == 0 {
		r, err := scanReader(scanner, "<stdin>", c.stdin)
		if err != nil {
			return err
		}
		results = r
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		r, err := scanReader(scanner, path, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, r...)
	}

	var diagCount int
	for _, r := range results {
		diagCount += len(r.Diagnostics)
	}

	if checkOnly {
		for _, r := range results {
			for _, d := range r.Diagnostics {
				fmt.Fprintf(c.stdout, "%s: %s: %s: %s\n", r.Source, r.Element, d.Code, d.Message)
			}
		}
		if diagCount > 0 {
			return errDiagnostics
		}
		return nil
	}

	if err := c.writeResults(results); err != nil {
		return err
	}
	if c.cfg.Strict && diagCount > 0 {
		return errDiagnostics
	}
	return nil
}

// scanReader parses a document and scans every directive-bearing element.
// Inputs without an <html> tag are parsed as body fragments.
func scanReader(scanner *hxbind.Scanner, source string, r io.Reader) ([]scanResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var roots []*html.Node
	if strings.Contains(strings.ToLower(string(data)), "<html") {
		doc, err := dom.Parse(strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
		roots = []*html.Node{doc}
	} else {
		roots, err = dom.ParseFragment(strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
	}

	var results []scanResult
	for _, el := range dom.FindDirectiveElements(roots...) {
		pd, diags := scanner.Scan(el)
		results = append(results, scanResult{
			Source:      source,
			Element:     describe(el),
			Directives:  pd,
			Diagnostics: diags,
		})
	}
	return results, nil
}

func (c *cli) writeResults(results []scanResult) error {
	switch c.cfg.Output {
	case config.OutputJSON:
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		if results == nil {
			results = []scanResult{}
		}
		return enc.Encode(results)

	case config.OutputDump:
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		for _, r := range results {
			fmt.Fprintf(c.stdout, "%s %s\n", r.Source, r.Element)
			cfg.Fdump(c.stdout, r.Directives)
		}
		return nil

	case config.OutputManifest:
		enc, err := hxbind.NewEncoder([]byte(c.cfg.Key))
		if err != nil {
			return err
		}
		for _, r := range results {
			m, err := hxbind.EncodeManifest(enc, r.Directives)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "%s\t%s\t%s\n", r.Source, r.Element, m)
		}
		return nil

	default:
		for _, r := range results {
			fmt.Fprintf(c.stdout, "%s %s\n", r.Source, r.Element)
			writeDirectives(c.stdout, r.Directives)
		}
		return nil
	}
}

// describe renders an element as "<tag id=... class=...>".
func describe(el hxbind.Element) string {
	var sb strings.Builder
	sb.WriteString("<" + strings.ToLower(el.TagName()))
	for _, name := range []string{"id", "name", "type"} {
		if v, ok := hxbind.AttributeValue(el, name); ok {
			fmt.Fprintf(&sb, " %s=%q", name, v)
		}
	}
	sb.WriteString(">")
	return sb.String()
}

func writeDirectives(w io.Writer, pd *hxbind.ParsedDirectives) {
	if pd.ModelDirective != nil {
		fmt.Fprintf(w, "  model     %s\n", formatValue(*pd.ModelDirective))
	}
	writeMap(w, "attribute", pd.AttributeDirectives)
	writeMap(w, "property", pd.PropertyDirectives)
	if cd := pd.ClassDirective; !cd.IsEmpty() {
		if cd.ComputedClass != nil {
			fmt.Fprintf(w, "  class     = %s\n", formatValue(*cd.ComputedClass))
		}
		writeMap(w, "class", cd.ReactiveClasses)
	}
	writeMap(w, "behavior", pd.BehaviorDirectives)
}

func writeMap(w io.Writer, label string, dm hxbind.DirectiveMap) {
	for name, dv := range dm.All() {
		fmt.Fprintf(w, "  %-9s %s = %s\n", label, name, formatValue(dv))
	}
}

func formatValue(dv hxbind.DirectiveValue) string {
	var sb strings.Builder
	sb.WriteString(dv.Target)
	if dv.DomProperty != "" {
		sb.WriteString(" :" + dv.DomProperty)
	}
	for _, m := range dv.Modifiers() {
		fmt.Fprintf(&sb, " #%s%v", m.Name, m.Args)
	}
	if dv.Event != "" {
		sb.WriteString(" @" + dv.Event)
	}
	return sb.String()
}
