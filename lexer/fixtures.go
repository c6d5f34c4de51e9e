package lexer

import "strings"

// validFragments is the lexer's own generalization of the teacher's
// internal/test token-soup generator (internal/test/lexer.go,
// validTokens): a semicolon-delimited list of source fragments, each
// one lexically valid on its own, covering every token family this
// package recognizes (keywords, compound operators, every literal
// kind, comments). RandomSource stitches a pseudo-random run of these
// together into a buffer that Lex is guaranteed not to reject.
const validFragments = "func;main;(;);{;};->;Int;" +
	"mutable;const;export;defer;if;else;for;while;in;inline;" +
	"break;continue;return;match;true;false;null;unreachable;" +
	"\"a string\";\"\";'x';'\\n';123;3;3.14;0;" +
	"+;-;*;/;%;==;!=;<=;>=;&&;||;and;or;~;!;" +
	"+=;-=;*=;/=;%=;<<;>>;<<=;>>=;" +
	"++;--;=;,;;;:;::;.;..;...;?;[;];" +
	"// a line comment\n;/* a block comment */;\n"

// RandomSource returns a source buffer of roughly n whitespace- or
// sep-separated fragments drawn from validFragments, selected by next
// (called once per fragment; callers typically close over a
// math/rand.Rand so the sequence is reproducible). The result always
// lexes successfully.
func RandomSource(n int, sep string, next func(choices int) int) string {
	fragments := strings.Split(validFragments, ";")

	toks := make([]string, 0, n)
	for len(toks) < n {
		toks = append(toks, fragments[next(len(fragments))])
	}

	return strings.Join(toks, sep)
}
