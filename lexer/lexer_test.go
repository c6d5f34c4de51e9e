package lexer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccuetoh-maqui-lang-student/langfront/token"
)

func kinds(s Stream) []token.Kind {
	ks := make([]token.Kind, len(s))
	for i, t := range s {
		ks[i] = t.Kind
	}
	return ks
}

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		fail   bool
		expect []token.Kind
	}{
		{
			name:   "empty string literal",
			src:    `""`,
			expect: []token.Kind{token.STRING, token.EOF},
		},
		{
			name: "func decl skeleton",
			src:  "func main () {}",
			expect: []token.Kind{
				token.FUNC, token.IDENTIFIER, token.LPAREN, token.RPAREN,
				token.LBRACE, token.RBRACE, token.EOF,
			},
		},
		{
			name: "line comment produces no token",
			src:  "x;// a comment\ny;",
			expect: []token.Kind{
				token.IDENTIFIER, token.SEMICOLON,
				token.IDENTIFIER, token.SEMICOLON,
				token.EOF,
			},
		},
		{
			name:   "unterminated block comment is a LexError",
			src:    "/* unterminated",
			fail:   true,
			expect: nil,
		},
		{
			name:   "unterminated string is a LexError",
			src:    `"unterminated`,
			fail:   true,
			expect: nil,
		},
		{
			name:   "digit 0 starts a numeric literal",
			src:    "0",
			expect: []token.Kind{token.INTEGER, token.EOF},
		},
		{
			name:   "bare bang lexes as EXCLAMATION, not MINUS_MINUS",
			src:    "!a",
			expect: []token.Kind{token.EXCLAMATION, token.IDENTIFIER, token.EOF},
		},
		{
			name:   "bang-equals is a single compound token",
			src:    "a != b",
			expect: []token.Kind{token.IDENTIFIER, token.EXCLAMATION_EQUALS, token.IDENTIFIER, token.EOF},
		},
		{
			name: "maximal munch prefers the longest compound operator",
			src:  "a <<= b",
			expect: []token.Kind{
				token.IDENTIFIER, token.LBITSHIFT_EQUALS, token.IDENTIFIER, token.EOF,
			},
		},
		{
			name:   "keyword table wins over plain identifier",
			src:    "mutable",
			expect: []token.Kind{token.MUTABLE, token.EOF},
		},
		{
			name:   "float literal requires a digit after the dot",
			src:    "3.14",
			expect: []token.Kind{token.FLOAT_LIT, token.EOF},
		},
		{
			name: "bare dot after digits is two tokens, not a float",
			src:  "3.",
			expect: []token.Kind{
				token.INTEGER, token.DOT, token.EOF,
			},
		},
		{
			name:   "invalid character fails positioned",
			src:    "`",
			fail:   true,
			expect: nil,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			stream, err := Lex([]byte(c.src), "test.mq")
			if c.fail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.expect, kinds(stream))
		})
	}
}

func TestLexStreamEndsWithExactlyOneEOF(t *testing.T) {
	stream, err := Lex([]byte("x = 1;"), "test.mq")
	require.NoError(t, err)

	require.NotEmpty(t, stream)
	assert.Equal(t, token.EOF, stream.Last().Kind)

	eofCount := 0
	for _, tok := range stream {
		if tok.Kind == token.EOF {
			eofCount++
		}
	}
	assert.Equal(t, 1, eofCount)
}

func TestLexemeMatchesSourceSlice(t *testing.T) {
	src := "foo = 123;"
	stream, err := Lex([]byte(src), "test.mq")
	require.NoError(t, err)

	for _, tok := range stream {
		if tok.Kind == token.EOF {
			continue
		}
		got := src[tok.Position.Offset : tok.Position.Offset+len(tok.Lexeme)]
		assert.Equal(t, tok.Lexeme, got)
	}
}

func TestLexSkipsUTF8BOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x;")...)
	stream, err := Lex(src, "test.mq")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.SEMICOLON, token.EOF}, kinds(stream))
}

func TestLexPositionTracking(t *testing.T) {
	stream, err := Lex([]byte("x\ny"), "test.mq")
	require.NoError(t, err)
	require.Len(t, stream, 3) // x, y, EOF

	assert.Equal(t, 1, stream[0].Position.Line)
	assert.Equal(t, 2, stream[1].Position.Line)
}

func TestRandomSourceAlwaysLexes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{10, 100, 1000} {
		src := RandomSource(size, " ", rng.Intn)
		_, err := Lex([]byte(src), "fuzz.mq")
		assert.NoError(t, err, "random source of size %d failed to lex: %q", size, src)
	}
}

func benchmarkLex(size int, b *testing.B) {
	rng := rand.New(rand.NewSource(int64(size)))
	src := []byte(RandomSource(size, " ", rng.Intn))

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := Lex(src, "bench.mq"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLex100(b *testing.B)   { benchmarkLex(100, b) }
func BenchmarkLex1000(b *testing.B)  { benchmarkLex(1000, b) }
func BenchmarkLex10000(b *testing.B) { benchmarkLex(10000, b) }
