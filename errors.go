package peggen

import (
	"fmt"
	"strings"
)

// TokenizeError is raised by the tokenizer when no terminal rule matches at
// the current offset.
type TokenizeError struct {
	File   string
	Text   string
	Offset int
}

func (err *TokenizeError) Error() string {
	return Diagnostic("tokenize", err.File, err.Text, err.Offset, nil)
}

// ParseError is raised by the interpreter at the first failure that escapes
// every alternation/optional/repeat handler: an unconsumed or unexpected
// token in a required position.
type ParseError struct {
	File     string
	Text     string
	Offset   int
	Expected []string // optional; the interpreter never populates it, see design notes §9
}

func (err *ParseError) Error() string {
	return Diagnostic("parse", err.File, err.Text, err.Offset, err.Expected)
}

// UnknownTokenReferenceError is raised by the translator when a rule body
// references a name that is declared as neither a terminal nor a
// non-terminal.
type UnknownTokenReferenceError struct {
	File   string
	Text   string
	Offset int
	Name   string
}

func (err *UnknownTokenReferenceError) Error() string {
	msg := fmt.Sprintf("unknown reference %q", err.Name)
	return Diagnostic(msg, err.File, err.Text, err.Offset, nil)
}

// TerminalRuleSetError is raised at tokenizer startup when the supplied
// ordered terminal rule list doesn't match the declared terminal-kind set
// exactly.
type TerminalRuleSetError struct {
	Missing   []string
	Unexpected []string
}

func (err *TerminalRuleSetError) Error() string {
	var parts []string
	if len(err.Missing) > 0 {
		parts = append(parts, "missing terminal kinds: "+strings.Join(err.Missing, ", "))
	}
	if len(err.Unexpected) > 0 {
		parts = append(parts, "unexpected terminal kinds: "+strings.Join(err.Unexpected, ", "))
	}
	return "peggen: malformed terminal rule set (" + strings.Join(parts, "; ") + ")"
}

// NonTerminalRuleSetError is raised at interpreter startup when the rule
// map's key set doesn't match the declared non-terminal name set, or when
// the distinguished root key is absent.
type NonTerminalRuleSetError struct {
	Missing    []string
	Unexpected []string
	MissingRoot bool
}

func (err *NonTerminalRuleSetError) Error() string {
	var parts []string
	if err.MissingRoot {
		parts = append(parts, "missing ROOT")
	}
	if len(err.Missing) > 0 {
		parts = append(parts, "missing non-terminals: "+strings.Join(err.Missing, ", "))
	}
	if len(err.Unexpected) > 0 {
		parts = append(parts, "unexpected non-terminals: "+strings.Join(err.Unexpected, ", "))
	}
	return "peggen: malformed non-terminal rule set (" + strings.Join(parts, "; ") + ")"
}

// RuleBodyViolation names the kind of static-validation failure an invalid
// rule body triggers (§4.4).
type RuleBodyViolation string

const (
	// ViolationRegexInNonTerminal: a non-terminal body contains a regex leaf.
	ViolationRegexInNonTerminal RuleBodyViolation = "regex-in-non-terminal"
	// ViolationCompositionInTerminal: a terminal body is not a single
	// literal or single regex expression.
	ViolationCompositionInTerminal RuleBodyViolation = "composition-in-terminal"
)

// InvalidRuleBodyError is raised by the translator when a rule body fails
// one of the terminal/non-terminal well-formedness checks.
type InvalidRuleBodyError struct {
	File      string
	Text      string
	Offset    int
	Name      string
	Violation RuleBodyViolation
}

func (err *InvalidRuleBodyError) Error() string {
	msg := fmt.Sprintf("invalid rule body for %q (%s)", err.Name, err.Violation)
	return Diagnostic(msg, err.File, err.Text, err.Offset, nil)
}

// DuplicateDeclarationError is raised by the loader when a terminal kind or
// non-terminal name is declared more than once.
type DuplicateDeclarationError struct {
	File   string
	Text   string
	Offset int
	Name   string
}

func (err *DuplicateDeclarationError) Error() string {
	msg := fmt.Sprintf("duplicate declaration of %q", err.Name)
	if err.File == "" && err.Text == "" {
		return "peggen: " + msg
	}
	return Diagnostic(msg, err.File, err.Text, err.Offset, nil)
}

// errorCornerCase marks a state the interpreter's exhaustive type switches
// should make unreachable; grounded on hucsmn-peg/errors.go's own
// errorCornerCase sentinel for the same purpose.
var errorCornerCase = fmt.Errorf("peggen: this corner case should never be reached")
