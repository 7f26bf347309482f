// Package grammar loads the grammar description language (§4.4, §6) that
// declares a tokenizer's terminal rules and an interpreter's non-terminal
// rules. The loader's own terminals and non-terminals are hard-coded here
// (bootstrap), forming a self-describing rule set: the same rule set,
// spelled out in its own textual syntax, lives at testdata/grammar.peg and
// is used by the self-hosting round-trip test (Testable Property 6).
package grammar

import "github.com/lk16/peggen"

// Bootstrap terminal kinds, in the priority order the tokenizer tries them.
// Longer punctuation alternatives (")+" etc.) are listed ahead of their
// prefixes so list-order priority (not longest-match-wins) still picks them
// correctly — see §9's "terminal-rule ordering convention" design note.
//
// TOKEN_NAME accepts both cases: terminal names are uppercase by convention
// but non-terminal names are not, and both are spelled with this same kind
// (§6). A declared name must not start with "prune", "token", or "regex("
// — those always win as the earlier-priority keyword/punctuation rule,
// since this tokenizer has no notion of a word boundary.
const (
	kindComment       peggen.TokenKind = "COMMENT"
	kindWS            peggen.TokenKind = "WS"
	kindRegexOpen     peggen.TokenKind = "REGEX_OPEN"
	kindKwPrune       peggen.TokenKind = "KW_PRUNE"
	kindKwToken       peggen.TokenKind = "KW_TOKEN"
	kindLiteralExpr   peggen.TokenKind = "LITERAL_EXPRESSION"
	kindTokenName     peggen.TokenKind = "TOKEN_NAME"
	kindRParenPlus    peggen.TokenKind = "RPAREN_PLUS"
	kindRParenStar    peggen.TokenKind = "RPAREN_STAR"
	kindRParenQuest   peggen.TokenKind = "RPAREN_QUESTION"
	kindRParen        peggen.TokenKind = "RPAREN"
	kindLParen        peggen.TokenKind = "LPAREN"
	kindAt            peggen.TokenKind = "AT"
	kindEquals        peggen.TokenKind = "EQUALS"
	kindDot           peggen.TokenKind = "DOT"
	kindPipe          peggen.TokenKind = "PIPE"
)

// Bootstrap non-terminal names.
const (
	nameRoot         = "ROOT"
	nameEntry        = "entry"
	nameDecorator    = "decorator"
	nameTokenDef     = "definition"
	nameExpression   = "expression"
	nameConcat       = "concatenation"
	nameAtom         = "atom"
	nameBracket      = "bracket_expression"
	nameTerminalExpr = "terminal_expr"
	nameRegexExpr    = "regex_expr"
)

// bootstrapTerminalRules builds the ordered rule list for the grammar
// language itself. kindLiteralExpr's content class excludes the quote
// itself (rather than relying on a lazy quantifier, which peggen.Regex's
// forced .Longest() ignores) so the longest accepted prefix is always the
// one ending at the first unescaped closing quote.
func bootstrapTerminalRules() []peggen.TerminalRule {
	return []peggen.TerminalRule{
		peggen.MustRegex(kindComment, `//[^\n]*`),
		peggen.MustRegex(kindWS, `[ \t\r\n]+`),
		peggen.Literal(kindRegexOpen, "regex("),
		peggen.Literal(kindKwPrune, "prune"),
		peggen.Literal(kindKwToken, "token"),
		peggen.MustRegex(kindLiteralExpr, `"([^"\\]|\\.)*"`),
		peggen.MustRegex(kindTokenName, `[A-Za-z_]+`),
		peggen.Literal(kindRParenPlus, ")+"),
		peggen.Literal(kindRParenStar, ")*"),
		peggen.Literal(kindRParenQuest, ")?"),
		peggen.Literal(kindRParen, ")"),
		peggen.Literal(kindLParen, "("),
		peggen.Literal(kindAt, "@"),
		peggen.Literal(kindEquals, "="),
		peggen.Literal(kindDot, "."),
		peggen.Literal(kindPipe, "|"),
	}
}

func bootstrapDeclaredTerminalKinds() map[peggen.TokenKind]bool {
	declared := make(map[peggen.TokenKind]bool)
	for _, r := range bootstrapTerminalRules() {
		declared[r.Kind()] = true
	}
	return declared
}

func bootstrapPrunedTerminals() map[peggen.TokenKind]bool {
	return map[peggen.TokenKind]bool{
		kindComment: true,
		kindWS:      true,
	}
}

// bootstrapNonTerminalRules builds the grammar-of-grammars directly from
// the same Expr constructors the translator (translate.go) produces for
// user grammars — there is no special-cased bootstrap interpreter, only a
// fixed rule map (§4.4 "Grammar-of-grammars bootstrap").
//
//	ROOT               = ( entry )+ .
//	entry              = ( decorator )* definition .
//	decorator          = "@" ( "prune" | "token" ) .
//	definition         = TOKEN_NAME "=" expression "." .
//	expression         = concatenation ( "|" concatenation )* .
//	concatenation      = ( atom )+ .
//	atom               = terminal_expr | bracket_expression .
//	bracket_expression = "(" expression ( ")+" | ")*" | ")?" | ")" ) .
//	terminal_expr      = TOKEN_NAME | LITERAL_EXPRESSION | regex_expr .
//	regex_expr         = "regex(" LITERAL_EXPRESSION ")" .
func bootstrapNonTerminalRules() map[string]peggen.Expr {
	return map[string]peggen.Expr{
		nameRoot: peggen.OnceOrMore(peggen.NonTerm(nameEntry)),
		nameEntry: peggen.Concat(
			peggen.Repeat(0, peggen.NonTerm(nameDecorator)),
			peggen.NonTerm(nameTokenDef),
		),
		nameDecorator: peggen.Concat(
			peggen.Term(kindAt),
			peggen.Alt(peggen.Term(kindKwPrune), peggen.Term(kindKwToken)),
		),
		nameTokenDef: peggen.Concat(
			peggen.Term(kindTokenName),
			peggen.Term(kindEquals),
			peggen.NonTerm(nameExpression),
			peggen.Term(kindDot),
		),
		nameExpression: peggen.Concat(
			peggen.NonTerm(nameConcat),
			peggen.Repeat(0, peggen.Concat(peggen.Term(kindPipe), peggen.NonTerm(nameConcat))),
		),
		nameConcat: peggen.OnceOrMore(peggen.NonTerm(nameAtom)),
		nameAtom: peggen.Alt(
			peggen.NonTerm(nameTerminalExpr),
			peggen.NonTerm(nameBracket),
		),
		nameBracket: peggen.Concat(
			peggen.Term(kindLParen),
			peggen.NonTerm(nameExpression),
			peggen.Alt(
				peggen.Term(kindRParenPlus),
				peggen.Term(kindRParenStar),
				peggen.Term(kindRParenQuest),
				peggen.Term(kindRParen),
			),
		),
		nameTerminalExpr: peggen.Alt(
			peggen.Term(kindTokenName),
			peggen.Term(kindLiteralExpr),
			peggen.NonTerm(nameRegexExpr),
		),
		nameRegexExpr: peggen.Concat(
			peggen.Term(kindRegexOpen),
			peggen.Term(kindLiteralExpr),
			peggen.Term(kindRParen),
		),
	}
}

func bootstrapDeclaredNonTerminals() map[string]bool {
	declared := make(map[string]bool)
	for name := range bootstrapNonTerminalRules() {
		declared[name] = true
	}
	return declared
}
