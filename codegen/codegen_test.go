package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lk16/peggen/grammar"
)

const sampleGrammar = `
@token
A = "a" .

@token
B = "b" .

ROOT = A B .
`

func TestRenderDeterministic(t *testing.T) {
	rs, err := grammar.Load("g.peg", sampleGrammar)
	if err != nil {
		t.Fatalf("grammar.Load() error = %v", err)
	}

	first, err := Render(rs, "g.peg")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := Render(rs, "g.peg")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if first != second {
		t.Error("Render() is not deterministic across two invocations over the same RuleSet")
	}

	for _, want := range []string{
		"package generated",
		`peggen.Literal(peggen.TokenKind("A"), "a")`,
		`peggen.Literal(peggen.TokenKind("B"), "b")`,
		"func Parse(filename, text string)",
		`const Root = "ROOT"`,
	} {
		if !strings.Contains(first, want) {
			t.Errorf("rendered artifact missing %q", want)
		}
	}
}

func TestRenderReparsedGrammarMatches(t *testing.T) {
	// Re-loading the same grammar text twice and rendering both must
	// produce byte-identical output (Testable Property 5).
	rsA, err := grammar.Load("g.peg", sampleGrammar)
	if err != nil {
		t.Fatalf("grammar.Load() error = %v", err)
	}
	rsB, err := grammar.Load("g.peg", sampleGrammar)
	if err != nil {
		t.Fatalf("grammar.Load() error = %v", err)
	}

	a, err := Render(rsA, "g.peg")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := Render(rsB, "g.peg")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if a != b {
		t.Error("rendering two independently loaded RuleSets for identical grammar text produced different artifacts")
	}
}

// Scenario 6 (§8): staleness round-trip.
func TestStalenessRoundTrip(t *testing.T) {
	dir := t.TempDir()
	grammarPath := filepath.Join(dir, "g.peg")
	artifactPath := filepath.Join(dir, "g_parser.go")

	if err := os.WriteFile(grammarPath, []byte(sampleGrammar), 0o644); err != nil {
		t.Fatalf("WriteFile(grammar) error = %v", err)
	}

	upToDate, err := IsUpToDate(grammarPath, artifactPath)
	if err != nil {
		t.Fatalf("IsUpToDate() error = %v", err)
	}
	if upToDate {
		t.Fatal("IsUpToDate() = true before the artifact exists")
	}

	if err := WriteIfStale(grammarPath, artifactPath); err != nil {
		t.Fatalf("WriteIfStale() error = %v", err)
	}

	upToDate, err = IsUpToDate(grammarPath, artifactPath)
	if err != nil {
		t.Fatalf("IsUpToDate() error = %v", err)
	}
	if !upToDate {
		t.Fatal("IsUpToDate() = false right after WriteIfStale()")
	}

	// Writing again when already fresh must be a no-op content-wise.
	before, err := os.ReadFile(artifactPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if err := WriteIfStale(grammarPath, artifactPath); err != nil {
		t.Fatalf("WriteIfStale() (second call) error = %v", err)
	}
	after, err := os.ReadFile(artifactPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(before) != string(after) {
		t.Error("WriteIfStale() changed an already up-to-date artifact")
	}

	// Mutating the grammar by a single character must report staleness.
	mutated := strings.Replace(sampleGrammar, `"a"`, `"c"`, 1)
	if err := os.WriteFile(grammarPath, []byte(mutated), 0o644); err != nil {
		t.Fatalf("WriteFile(mutated grammar) error = %v", err)
	}
	upToDate, err = IsUpToDate(grammarPath, artifactPath)
	if err != nil {
		t.Fatalf("IsUpToDate() error = %v", err)
	}
	if upToDate {
		t.Fatal("IsUpToDate() = true after mutating the grammar by one character")
	}
}

func TestIsUpToDateOnGrammarError(t *testing.T) {
	dir := t.TempDir()
	grammarPath := filepath.Join(dir, "bad.peg")
	artifactPath := filepath.Join(dir, "bad_parser.go")

	if err := os.WriteFile(grammarPath, []byte("not a grammar"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := IsUpToDate(grammarPath, artifactPath); err == nil {
		t.Fatal("IsUpToDate() on an unparsable grammar should return an error")
	}
	if err := WriteIfStale(grammarPath, artifactPath); err == nil {
		t.Fatal("WriteIfStale() on an unparsable grammar should return an error")
	}
	if _, err := os.Stat(artifactPath); !os.IsNotExist(err) {
		t.Error("WriteIfStale() must not create the artifact on a grammar-load failure")
	}
}
