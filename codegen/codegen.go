// Package codegen renders a loaded grammar.RuleSet as a standalone Go
// source file (§4.5, §6 "Emitted artifact surface") and implements the
// is-up-to-date / write-if-stale staleness check the CLI exposes.
//
// The renderer never ranges over a Go map when order matters: every
// order-sensitive slice (terminal kinds, terminal rules, non-terminal rule
// bodies) is walked in the declaration order grammar.Load recorded, so two
// runs over the same grammar text produce byte-identical output (Testable
// Property 5).
package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/lk16/peggen"
	"github.com/lk16/peggen/grammar"
)

// artifactPackage is the package name baked into every generated artifact.
// The CLI surface (§6) takes only a grammar path and an artifact path, no
// extra configuration, so there is nowhere for a caller to override this.
const artifactPackage = "generated"

// Render produces the full text of the generated artifact for rs. The
// comment at the top of the artifact records the grammar file it was
// generated from, for a human reading the generated file. That path is part
// of the bytes is-up-to-date compares, so the same grammar rendered under a
// differently spelled path yields a different artifact.
func Render(rs *grammar.RuleSet, grammarFile string) (string, error) {
	data, err := newTemplateData(rs, grammarFile)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := artifactTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("codegen: render artifact: %w", err)
	}
	return buf.String(), nil
}

// IsUpToDate reports whether artifactPath exists and its content equals a
// freshly rendered artifact for the grammar at grammarPath (§4.5).
func IsUpToDate(grammarPath, artifactPath string) (bool, error) {
	fresh, err := renderFromFile(grammarPath)
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(artifactPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("codegen: reading %s: %w", artifactPath, err)
	}
	return string(existing) == fresh, nil
}

// WriteIfStale overwrites artifactPath with a freshly rendered artifact iff
// it differs from what's already there (or nothing is there yet). The
// write goes through a temp file in the artifact's own directory, renamed
// into place, so a reader never observes a partially written artifact.
func WriteIfStale(grammarPath, artifactPath string) error {
	fresh, err := renderFromFile(grammarPath)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(artifactPath)
	if err == nil && string(existing) == fresh {
		return nil
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("codegen: reading %s: %w", artifactPath, err)
	}

	return atomicWrite(artifactPath, fresh)
}

func renderFromFile(grammarPath string) (string, error) {
	text, err := os.ReadFile(grammarPath)
	if err != nil {
		return "", fmt.Errorf("codegen: reading %s: %w", grammarPath, err)
	}
	rs, err := grammar.Load(grammarPath, string(text))
	if err != nil {
		return "", err
	}
	return Render(rs, grammarPath)
}

// atomicWrite writes content to a temp file beside path and renames it
// into place, so two concurrent invocations targeting the same artifact
// path never interleave writes. The uuid suffix is the only thing that
// needs to be unique; nothing about it is ever persisted or compared.
func atomicWrite(path, content string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, ".peggen-"+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("codegen: writing temp artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("codegen: renaming temp artifact into place: %w", err)
	}
	return nil
}

// templateData is the fully-rendered-to-Go-source view text/template walks
// over. Every field that matters for determinism is a slice already in
// its final order; the template itself never sorts or ranges over a map.
type templateData struct {
	Package     string
	GrammarFile string
	Root        string

	TerminalKindLiterals []string // Go string literals, declaration order
	TerminalRuleExprs    []string // Go expressions building each TerminalRule, declaration order
	PrunedTerminals      []string // Go string literals, sorted

	NonTerminalNameLiterals []string          // Go string literals, sorted lexically (enum)
	NonTerminalRuleEntries  []mapEntryGoLines // "name": expr pairs, declaration order
	PrunedNonTerminals      []string          // Go string literals, sorted
}

type mapEntryGoLines struct {
	NameLiteral string
	ExprGo      string
}

func newTemplateData(rs *grammar.RuleSet, grammarFile string) (*templateData, error) {
	data := &templateData{
		Package:     artifactPackage,
		GrammarFile: grammarFile,
		Root:        rs.Root,
	}

	for _, kind := range rs.TerminalKinds {
		data.TerminalKindLiterals = append(data.TerminalKindLiterals, fmt.Sprintf("%q", string(kind)))
	}
	for _, rule := range rs.TerminalRules {
		expr, err := terminalRuleGo(rule)
		if err != nil {
			return nil, err
		}
		data.TerminalRuleExprs = append(data.TerminalRuleExprs, expr)
	}
	data.PrunedTerminals = sortedQuoted(keysOfTerminalSet(rs.PrunedTerminals))

	sortedNames := append([]string(nil), rs.NonTerminalNames...)
	sort.Strings(sortedNames)
	for _, name := range sortedNames {
		data.NonTerminalNameLiterals = append(data.NonTerminalNameLiterals, fmt.Sprintf("%q", name))
	}
	for _, name := range rs.NonTerminalNames {
		exprGo, err := exprToGo(rs.NonTerminalRules[name])
		if err != nil {
			return nil, err
		}
		data.NonTerminalRuleEntries = append(data.NonTerminalRuleEntries, mapEntryGoLines{
			NameLiteral: fmt.Sprintf("%q", name),
			ExprGo:      exprGo,
		})
	}
	data.PrunedNonTerminals = sortedQuoted(keysOfStringSet(rs.PrunedNonTerms))

	return data, nil
}

func keysOfTerminalSet(set map[peggen.TokenKind]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, string(k))
	}
	return out
}

func keysOfStringSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func sortedQuoted(ss []string) []string {
	sort.Strings(ss)
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

// terminalRuleGo renders one TerminalRule as the Go expression that
// reconstructs it: peggen.Literal(...) or peggen.MustRegex(...), using the
// exported accessors in peggen/token.go (§6's "literal-vs-regex variant
// plus payload").
func terminalRuleGo(rule peggen.TerminalRule) (string, error) {
	kind := string(rule.Kind())
	if literal, ok := peggen.LiteralBytes(rule); ok {
		return fmt.Sprintf("peggen.Literal(peggen.TokenKind(%q), %q)", kind, literal), nil
	}
	if source, ok := peggen.RegexSource(rule); ok {
		return fmt.Sprintf("peggen.MustRegex(peggen.TokenKind(%q), %q)", kind, source), nil
	}
	return "", fmt.Errorf("codegen: terminal rule %q is neither literal nor regex", kind)
}

// exprToGo recursively renders e as the Go expression that reconstructs
// it, dispatching on the same closed variant set interp.go's exec method
// switches on.
func exprToGo(e peggen.Expr) (string, error) {
	switch e := e.(type) {
	case *peggen.TerminalExpr:
		return fmt.Sprintf("peggen.Term(peggen.TokenKind(%q))", string(e.Kind)), nil
	case *peggen.NonTerminalExpr:
		return fmt.Sprintf("peggen.NonTerm(%q)", e.Name), nil
	case *peggen.ConcatExpr:
		return joinSubsGo("peggen.Concat", e.Subs)
	case *peggen.AltExpr:
		return joinSubsGo("peggen.Alt", e.Subs)
	case *peggen.RepeatExpr:
		sub, err := exprToGo(e.Sub)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("peggen.Repeat(%d, %s)", e.Min, sub), nil
	case *peggen.OptionalExpr:
		sub, err := exprToGo(e.Sub)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("peggen.Optional(%s)", sub), nil
	default:
		return "", fmt.Errorf("codegen: unknown expression variant %T", e)
	}
}

func joinSubsGo(ctor string, subs []peggen.Expr) (string, error) {
	parts := make([]string, len(subs))
	for i, sub := range subs {
		s, err := exprToGo(sub)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return fmt.Sprintf("%s(%s)", ctor, strings.Join(parts, ", ")), nil
}

var artifactTemplate = template.Must(template.New("artifact").Parse(`// Code generated by peggen from {{.GrammarFile}}. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/lk16/peggen"
)

// Root is the distinguished non-terminal name parsing starts at.
const Root = {{printf "%q" .Root}}

// TerminalKinds is the full declared terminal-kind set, in declaration
// order, that TerminalRules must cover exactly.
var TerminalKinds = []peggen.TokenKind{
{{- range .TerminalKindLiterals}}
	peggen.TokenKind({{.}}),
{{- end}}
}

// TerminalRules is the ordered terminal rule list the tokenizer tries in
// list-order priority.
var TerminalRules = []peggen.TerminalRule{
{{- range .TerminalRuleExprs}}
	{{.}},
{{- end}}
}

// PrunedTerminals is the set of terminal kinds dropped from the token
// stream after a successful match.
var PrunedTerminals = map[peggen.TokenKind]bool{
{{- range .PrunedTerminals}}
	peggen.TokenKind({{.}}): true,
{{- end}}
}

// NonTerminalNames is the full declared non-terminal name set.
var NonTerminalNames = []string{
{{- range .NonTerminalNameLiterals}}
	{{.}},
{{- end}}
}

// NonTerminalRules maps each non-terminal name to its expression.
var NonTerminalRules = map[string]peggen.Expr{
{{- range .NonTerminalRuleEntries}}
	{{.NameLiteral}}: {{.ExprGo}},
{{- end}}
}

// PrunedNonTerminals is the set of non-terminal labels lifted by pass 2.
var PrunedNonTerminals = map[string]bool{
{{- range .PrunedNonTerminals}}
	{{.}}: true,
{{- end}}
}

func declaredTerminalKinds() map[peggen.TokenKind]bool {
	declared := make(map[peggen.TokenKind]bool, len(TerminalKinds))
	for _, k := range TerminalKinds {
		declared[k] = true
	}
	return declared
}

func declaredNonTerminals() map[string]bool {
	declared := make(map[string]bool, len(NonTerminalNames))
	for _, n := range NonTerminalNames {
		declared[n] = true
	}
	return declared
}

// Parse tokenizes text and parses it against NonTerminalRules starting at
// Root, applying both pruning passes to the result.
func Parse(filename, text string) ([]peggen.Token, *peggen.Node, error) {
	tokens, err := peggen.Tokenize(filename, text, TerminalRules, declaredTerminalKinds(), PrunedTerminals)
	if err != nil {
		return nil, nil, err
	}

	tree, err := peggen.Parse(filename, text, tokens, NonTerminalRules, declaredNonTerminals(), Root)
	if err != nil {
		return tokens, nil, err
	}

	tree = peggen.LiftUnlabeled(tree)
	tree = peggen.DropByLabel(tree, PrunedNonTerminals, false)
	return tokens, tree, nil
}
`))
