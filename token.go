package peggen

import (
	"fmt"
	"regexp"
)

// TokenKind names a terminal. Kept as a plain string (rather than a
// generated int enum) so a loaded grammar and a hard-coded bootstrap grammar
// can be compared for structural equality without sharing a registry.
type TokenKind string

// Token is an immutable (kind, offset, length) triple produced by the
// tokenizer. The covered text is text[Offset : Offset+Length).
//
// Grounded on aksiksi-histweet/lib/lexer.go's Token{kind, val, pos, size},
// generalized to an ordered-rule-list scheme instead of histweet's
// "closest, then longest, match wins across all patterns at once" search.
type Token struct {
	Kind   TokenKind
	Offset int
	Length int
}

func (t Token) End() int {
	return t.Offset + t.Length
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d+%d", t.Kind, t.Offset, t.Length)
}

// TerminalRule is one rule in the tokenizer's ordered rule list: either an
// exact literal prefix match or a compiled regex longest-prefix match.
type TerminalRule interface {
	Kind() TokenKind
	// match reports the length of the match at text[at:], or -1 if the
	// rule does not match there. A zero-length regex match is reported
	// as -1 (the zero-length guard, §4.1).
	match(text string, at int) int
	isTerminalRule()
}

type literalRule struct {
	kind    TokenKind
	literal string
}

// Literal constructs a terminal rule that matches iff the input at the
// current offset starts with exactly the given bytes.
func Literal(kind TokenKind, literal string) TerminalRule {
	return &literalRule{kind: kind, literal: literal}
}

func (r *literalRule) Kind() TokenKind { return r.kind }
func (r *literalRule) isTerminalRule() {}

func (r *literalRule) match(text string, at int) int {
	if len(text)-at < len(r.literal) {
		return -1
	}
	if text[at:at+len(r.literal)] != r.literal {
		return -1
	}
	return len(r.literal)
}

type regexRule struct {
	kind    TokenKind
	source  string
	pattern *regexp.Regexp
}

// Regex constructs a terminal rule that matches the longest prefix the
// given pattern accepts at the current offset. The pattern is implicitly
// anchored to the current offset and compiled with leftmost-longest (POSIX)
// semantics, so "longest prefix accepted" is literal RE2 behavior rather
// than Go's default leftmost-first alternation.
//
// Using regexp (stdlib) here instead of a hand-rolled matcher departs from
// the teacher's own style (hucsmn-peg implements its own rune-range/set/
// case-fold primitives with no regexp import at all) — see DESIGN.md for
// why that's the one deliberate stdlib choice in this codebase.
func Regex(kind TokenKind, source string) (TerminalRule, error) {
	pattern, err := regexp.Compile(`\A(?:` + source + `)`)
	if err != nil {
		return nil, fmt.Errorf("peggen: invalid regex for %q: %w", kind, err)
	}
	pattern.Longest()
	return &regexRule{kind: kind, source: source, pattern: pattern}, nil
}

// MustRegex is Regex, panicking on an invalid pattern. Used for the
// hard-coded bootstrap grammar, whose patterns are compile-time constants.
func MustRegex(kind TokenKind, source string) TerminalRule {
	rule, err := Regex(kind, source)
	if err != nil {
		panic(err)
	}
	return rule
}

func (r *regexRule) Kind() TokenKind { return r.kind }
func (r *regexRule) isTerminalRule() {}

func (r *regexRule) match(text string, at int) int {
	loc := r.pattern.FindStringIndex(text[at:])
	if loc == nil || loc[1] == 0 {
		return -1
	}
	return loc[1]
}

// LiteralBytes returns rule's literal text and true if rule is a Literal
// rule, or ("", false) otherwise. Exported so the codegen package can
// render the exact payload §6's "Emitted artifact surface" calls for
// without a second, parallel representation of TerminalRule.
func LiteralBytes(rule TerminalRule) (string, bool) {
	lr, ok := rule.(*literalRule)
	if !ok {
		return "", false
	}
	return lr.literal, true
}

// RegexSource returns rule's original (uncompiled) regex source and true
// if rule is a Regex rule, or ("", false) otherwise.
func RegexSource(rule TerminalRule) (string, bool) {
	rr, ok := rule.(*regexRule)
	if !ok {
		return "", false
	}
	return rr.source, true
}
