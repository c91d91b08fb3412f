package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
	"tools.zach/dev/scheduler/internal/config"
	"tools.zach/dev/scheduler/internal/paths"
)

// ///////////////////////////////////////////////
// Helper Tests
// ///////////////////////////////////////////////

func TestCommentLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single", "hello", "# hello"},
		{"multi", "a\nb", "# a\n# b"},
		{"blank line", "a\n\nb", "# a\n#\n# b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commentLines(tt.in); got != tt.want {
				t.Errorf("commentLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsDirectChild(t *testing.T) {
	tests := []struct {
		prefix, path string
		want         bool
	}{
		{"", "log_level", true},
		{"", "log.file", false},
		{"log", "log.file", true},
		{"log", "log", false},
		{"log", "logger.file", false},
		{"log", "log.rotate.size", false},
	}
	for _, tt := range tests {
		if got := isDirectChild(tt.prefix, tt.path); got != tt.want {
			t.Errorf("isDirectChild(%q, %q) = %v, want %v", tt.prefix, tt.path, got, tt.want)
		}
	}
}

func TestJoinPath(t *testing.T) {
	if got := joinPath("", "log"); got != "log" {
		t.Errorf("joinPath(\"\", log) = %q", got)
	}
	if got := joinPath("log", "file"); got != "log.file" {
		t.Errorf("joinPath(log, file) = %q", got)
	}
}

func TestOmittedPaths(t *testing.T) {
	docs := map[string]config.FieldDoc{
		"log.file":        {},
		"log.max_size_mb": {},
		"log.zeta":        {},
		"log_level":       {},
	}
	emitted := map[string]bool{"log.max_size_mb": true}

	got := omittedPaths("log", docs, emitted)
	want := []string{"log.file", "log.zeta"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("omittedPaths = %v, want %v", got, want)
	}
}

// ///////////////////////////////////////////////
// render Tests
// ///////////////////////////////////////////////

func TestRenderRoundTrips(t *testing.T) {
	out, err := render(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got config.Config
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("rendered YAML does not parse: %v\n%s", err, out)
	}
	if got != *config.ExampleConfig() {
		t.Errorf("round trip = %+v, want %+v", got, *config.ExampleConfig())
	}
}

func TestRenderAnnotates(t *testing.T) {
	out, err := render(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"# Scheduler Configuration",
		"# Minimum log severity. Required.",
		"log_level: info",
		"# log_level: debug",
		"# Log file path. Leave unset to log to stderr.",
		"# file: scheduler.log",
		"max_size_mb: 10",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered config missing %q:\n%s", want, text)
		}
	}
}

func TestJoinComments(t *testing.T) {
	if got := joinComments("# a", "", "# b"); got != "# a\n# b" {
		t.Errorf("joinComments = %q", got)
	}
	if got := joinComments("", ""); got != "" {
		t.Errorf("joinComments of empties = %q, want empty", got)
	}
}

func TestDocComment(t *testing.T) {
	doc := config.FieldDoc{Comment: "Level.", Alternatives: []string{"log_level: off"}}
	if got := docComment(doc); got != "# Level.\n# log_level: off" {
		t.Errorf("docComment = %q", got)
	}
	if got := docComment(config.FieldDoc{}); got != "" {
		t.Errorf("docComment(empty) = %q, want empty", got)
	}
}

// ///////////////////////////////////////////////
// generate Tests
// ///////////////////////////////////////////////

func TestGenerateWritesBothConfigs(t *testing.T) {
	l := paths.Layout{Root: t.TempDir()}

	written, err := generate(l)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(written) != 2 || written[0] != l.DefaultConfig() || written[1] != l.Config() {
		t.Fatalf("written = %v, want [%s %s]", written, l.DefaultConfig(), l.Config())
	}

	want, err := render(config.ExampleConfig(), config.ConfigDocs)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, p := range written {
		got, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", p, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s differs from rendered config", p)
		}
	}

	if _, err := config.Load(l.Config()); err != nil {
		t.Errorf("generated runtime config does not load: %v", err)
	}
}

func TestCheckedInConfigsInSync(t *testing.T) {
	l := paths.Layout{Root: filepath.Join("..", "..")}

	embedded, err := os.ReadFile(l.DefaultConfig())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	runtime, err := os.ReadFile(l.Config())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(embedded, runtime) {
		t.Errorf("%s and %s differ; run go generate ./internal/config", l.DefaultConfig(), l.Config())
	}
}
