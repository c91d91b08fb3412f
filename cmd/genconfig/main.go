// Package main implements the genconfig tool that writes config.default.yaml
// and config/default.yaml from config.ExampleConfig(), annotated with
// config.ConfigDocs.
//
// It is invoked by go generate via the directive in internal/config/config.go.
package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	"tools.zach/dev/scheduler/internal/atomicfile"
	"tools.zach/dev/scheduler/internal/config"
	"tools.zach/dev/scheduler/internal/paths"
)

// header is the comment block at the top of the generated file.
var header = []string{
	"Scheduler Configuration",
	"",
	"Generated by cmd/genconfig; edit internal/config instead.",
}

func main() {
	// go generate runs from internal/config/; ../../ is the repo root where
	// configdata.go embeds config.default.yaml.
	written, err := generate(paths.Layout{Root: "../.."})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	for _, p := range written {
		fmt.Printf("wrote %s\n", p)
	}
}

// generate renders the example config and writes it to both the embedded
// default and the default runtime config path under l.
func generate(l paths.Layout) ([]string, error) {
	out, err := render(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := os.MkdirAll(l.ConfigDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	targets := []string{l.DefaultConfig(), l.Config()}
	for _, p := range targets {
		if err := atomicfile.Write(p, out, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
	}
	return targets, nil
}

// render encodes cfg as YAML with every documented key annotated.
func render(cfg *config.Config, docs map[string]config.FieldDoc) ([]byte, error) {
	var body yaml.Node
	if err := body.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	annotate(&body, "", docs)

	if len(body.Content) > 0 {
		first := body.Content[0]
		first.HeadComment = joinComments(commentLines(strings.Join(header, "\n")), "#", first.HeadComment)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&body); err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}

// annotate walks a mapping node and attaches each documented key's comment
// and commented-out alternatives as the key's head comment. Documented keys
// the encoder omitted (omitempty at their zero value) are written as
// commented-out entries ahead of the first key of their section.
func annotate(m *yaml.Node, prefix string, docs map[string]config.FieldDoc) {
	if m.Kind != yaml.MappingNode {
		return
	}

	emitted := map[string]bool{}
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		path := joinPath(prefix, key.Value)
		emitted[path] = true

		if doc, ok := docs[path]; ok {
			key.HeadComment = docComment(doc)
		}
		annotate(val, path, docs)
	}

	if len(m.Content) == 0 {
		return
	}
	var omitted []string
	for _, path := range omittedPaths(prefix, docs, emitted) {
		omitted = append(omitted, docComment(docs[path]), "#")
	}
	if len(omitted) > 0 {
		first := m.Content[0]
		first.HeadComment = joinComments(append(omitted, first.HeadComment)...)
	}
}

// docComment renders a FieldDoc as comment lines: the description followed by
// each alternative.
func docComment(doc config.FieldDoc) string {
	return joinComments(commentLines(doc.Comment), commentLines(strings.Join(doc.Alternatives, "\n")))
}

// joinComments joins the non-empty comment blocks with newlines.
func joinComments(blocks ...string) string {
	var out []string
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n")
}

// omittedPaths returns the sorted doc keys that are direct children of prefix
// but were not emitted by the encoder.
func omittedPaths(prefix string, docs map[string]config.FieldDoc, emitted map[string]bool) []string {
	var out []string
	for path := range docs {
		if emitted[path] || !isDirectChild(prefix, path) {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// isDirectChild reports whether path is exactly one segment below prefix.
func isDirectChild(prefix, path string) bool {
	if prefix == "" {
		return !strings.Contains(path, ".")
	}
	rest, ok := strings.CutPrefix(path, prefix+".")
	return ok && rest != "" && !strings.Contains(rest, ".")
}

// joinPath appends a key to a dotted path.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// commentLines prefixes each line of s with "# ". Empty lines become "#".
func commentLines(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = "#"
			continue
		}
		lines[i] = "# " + l
	}
	return strings.Join(lines, "\n")
}
