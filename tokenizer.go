package peggen

import "sort"

// Tokenize scans text left-to-right using the ordered rules, emitting one
// token per match (dropped if its kind is in pruned), and fails at the
// first offset no rule matches.
//
// declaredKinds is the full set of terminal kinds the grammar declared;
// rules must cover it exactly (§4.1 startup validation) before any
// scanning happens.
func Tokenize(file, text string, rules []TerminalRule, declaredKinds map[TokenKind]bool, pruned map[TokenKind]bool) ([]Token, error) {
	if err := validateTerminalRules(rules, declaredKinds); err != nil {
		return nil, err
	}

	var tokens []Token
	at := 0
	for at < len(text) {
		kind, length, ok := matchOne(rules, text, at)
		if !ok {
			return nil, &TokenizeError{File: file, Text: text, Offset: at}
		}
		if !pruned[kind] {
			tokens = append(tokens, Token{Kind: kind, Offset: at, Length: length})
		}
		at += length
	}
	return tokens, nil
}

// matchOne tries rules in list order and returns the first match. The
// zero-length guard (§4.1) is enforced per-rule inside TerminalRule.match,
// not here.
func matchOne(rules []TerminalRule, text string, at int) (TokenKind, int, bool) {
	for _, rule := range rules {
		if n := rule.match(text, at); n >= 0 {
			return rule.Kind(), n, true
		}
	}
	return "", 0, false
}

// validateTerminalRules checks that the rule list's kinds equal
// declaredKinds exactly, with no duplicates, reporting missing and
// unexpected kinds distinctly.
func validateTerminalRules(rules []TerminalRule, declaredKinds map[TokenKind]bool) error {
	seen := make(map[TokenKind]bool, len(rules))
	var unexpected []string
	for _, rule := range rules {
		k := rule.Kind()
		if seen[k] {
			return &DuplicateDeclarationError{Name: string(k)}
		}
		seen[k] = true
		if !declaredKinds[k] {
			unexpected = append(unexpected, string(k))
		}
	}

	var missing []string
	for k := range declaredKinds {
		if !seen[k] {
			missing = append(missing, string(k))
		}
	}

	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(unexpected)
	return &TerminalRuleSetError{Missing: missing, Unexpected: unexpected}
}
