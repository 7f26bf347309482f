package peggen

import "testing"

func declaredFrom(rules []TerminalRule) map[TokenKind]bool {
	declared := make(map[TokenKind]bool, len(rules))
	for _, r := range rules {
		declared[r.Kind()] = true
	}
	return declared
}

// Scenario 1 (§8): tokenize alphabet.
func TestTokenizeAlphabet(t *testing.T) {
	rules := []TerminalRule{Literal("A", "a"), Literal("B", "b")}
	tokens, err := Tokenize("f", "ab", rules, declaredFrom(rules), nil)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []Token{{Kind: "A", Offset: 0, Length: 1}, {Kind: "B", Offset: 1, Length: 1}}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens[%d] = %v, want %v", i, tokens[i], want[i])
		}
	}
}

// Scenario 2 (§8): prune whitespace.
func TestTokenizePruneWhitespace(t *testing.T) {
	rules := []TerminalRule{
		Literal("A", "a"),
		Literal("B", "b"),
		MustRegex("WS", "[ \n]*"),
	}
	pruned := map[TokenKind]bool{"WS": true}
	tokens, err := Tokenize("f", " \n a\n b\n ", rules, declaredFrom(rules), pruned)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []Token{{Kind: "A", Offset: 3, Length: 1}, {Kind: "B", Offset: 6, Length: 1}}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens (%v), want %d", len(tokens), tokens, len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens[%d] = %v, want %v", i, tokens[i], want[i])
		}
	}
}

// Scenario 3 (§8): greedy regex with backtrack blocked.
func TestTokenizeGreedyRegex(t *testing.T) {
	rules := []TerminalRule{MustRegex("A", "a*"), Literal("B", "b")}
	declared := declaredFrom(rules)

	tokens, err := Tokenize("f", "aaaab", rules, declared, nil)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []Token{{Kind: "A", Offset: 0, Length: 4}, {Kind: "B", Offset: 4, Length: 1}}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens[%d] = %v, want %v", i, tokens[i], want[i])
		}
	}

	_, err = Tokenize("f", "aaaabx", rules, declared, nil)
	if err == nil {
		t.Fatal("Tokenize() on trailing garbage should fail")
	}
	tokErr, ok := err.(*TokenizeError)
	if !ok {
		t.Fatalf("error type = %T, want *TokenizeError", err)
	}
	if tokErr.Offset != 5 {
		t.Errorf("TokenizeError.Offset = %d, want 5", tokErr.Offset)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	rules := []TerminalRule{Literal("A", "a")}
	tokens, err := Tokenize("f", "", rules, declaredFrom(rules), nil)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("got %d tokens, want 0", len(tokens))
	}
}

func TestTokenizeUnmatchedOffset(t *testing.T) {
	rules := []TerminalRule{Literal("A", "a")}
	_, err := Tokenize("f", "ax", rules, declaredFrom(rules), nil)
	tokErr, ok := err.(*TokenizeError)
	if !ok {
		t.Fatalf("error type = %T, want *TokenizeError", err)
	}
	if tokErr.Offset != 1 {
		t.Errorf("Offset = %d, want 1", tokErr.Offset)
	}
}

func TestTokenizeStartupValidation(t *testing.T) {
	declared := map[TokenKind]bool{"A": true, "B": true}
	rules := []TerminalRule{Literal("A", "a"), Literal("C", "c")}

	_, err := Tokenize("f", "a", rules, declared, nil)
	setErr, ok := err.(*TerminalRuleSetError)
	if !ok {
		t.Fatalf("error type = %T, want *TerminalRuleSetError", err)
	}
	if len(setErr.Missing) != 1 || setErr.Missing[0] != "B" {
		t.Errorf("Missing = %v, want [B]", setErr.Missing)
	}
	if len(setErr.Unexpected) != 1 || setErr.Unexpected[0] != "C" {
		t.Errorf("Unexpected = %v, want [C]", setErr.Unexpected)
	}
}

func TestTokenizeDuplicateKindInRuleList(t *testing.T) {
	declared := map[TokenKind]bool{"A": true}
	rules := []TerminalRule{Literal("A", "a"), Literal("A", "b")}
	_, err := Tokenize("f", "a", rules, declared, nil)
	if _, ok := err.(*DuplicateDeclarationError); !ok {
		t.Fatalf("error type = %T, want *DuplicateDeclarationError", err)
	}
}

func TestTokenizeOrderingGuarantee(t *testing.T) {
	rules := []TerminalRule{MustRegex("WS", "[ ]*"), Literal("A", "a")}
	pruned := map[TokenKind]bool{"WS": true}
	tokens, err := Tokenize("f", "a a a", rules, declaredFrom(rules), pruned)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].Offset >= tokens[i].Offset {
			t.Errorf("token %d offset %d not strictly before token %d offset %d", i-1, tokens[i-1].Offset, i, tokens[i].Offset)
		}
		if tokens[i-1].End() > tokens[i].Offset {
			t.Errorf("token %d (%v) overlaps token %d (%v)", i-1, tokens[i-1], i, tokens[i])
		}
	}
}
