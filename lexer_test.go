// lexer_test.go
package nano

import (
	"reflect"
	"testing"
)

func scanTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	rep := NewReporter()
	tokens := NewLexer(src, rep).Scan()
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func Test_Lexer_Punctuation(t *testing.T) {
	got := scanTypes(t, `( ) { } [ ] , . - + ; * ? : /`)
	want := []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, DOT,
		MINUS, PLUS, SEMICOLON, STAR, QUESTION, COLON, SLASH, EOF,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func Test_Lexer_TwoCharacterOperators(t *testing.T) {
	got := scanTypes(t, `-> == != <= >= :: && ||`)
	want := []TokenType{ARROW, EQUALEQUAL, BANGEQUAL, LESSEQUAL, GREATEREQUAL, COLONCOLON, AND, OR, EOF}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func Test_Lexer_KeywordsAndIdentifiers(t *testing.T) {
	got := scanTypes(t, `if else elif while for def return true false None and or in x foo_bar`)
	want := []TokenType{
		IF, ELSE, ELIF, WHILE, FOR, DEF, RETURN, TRUE, FALSE, NONE, KWAND, KWOR, IN,
		IDENT, IDENT, EOF,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func Test_Lexer_CommentsAndWhitespace(t *testing.T) {
	rep := NewReporter()
	tokens := NewLexer("x = 1 // a comment\ny = 2 # another\n", rep).Scan()
	if rep.HadError {
		t.Fatalf("unexpected lex error")
	}
	if tokens[len(tokens)-1].Line != 3 {
		t.Fatalf("expected EOF on line 3, got line %d", tokens[len(tokens)-1].Line)
	}
}

func Test_Lexer_StringEscapes(t *testing.T) {
	rep := NewReporter()
	tokens := NewLexer(`"a\nb\t\"c\"\\d\q"`, rep).Scan()
	if tokens[0].Type != STRING {
		t.Fatalf("expected STRING, got %v", tokens[0].Type)
	}
	got := tokens[0].Literal.AsString()
	want := "a\nb\t\"c\"\\d\\q"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_Lexer_UnterminatedString_ReportsButStillEmitsToken(t *testing.T) {
	rep := NewReporter()
	tokens := NewLexer(`"abc`, rep).Scan()
	if !rep.HadError {
		t.Fatalf("expected an error to be reported")
	}
	if tokens[0].Type != STRING || tokens[0].Literal.AsString() != "abc" {
		t.Fatalf("expected partial string token, got %#v", tokens[0])
	}
}

func Test_Lexer_NumberLiterals(t *testing.T) {
	rep := NewReporter()
	tokens := NewLexer("42 3.14 0.5", rep).Scan()
	want := []string{"42", "3.14", "0.5"}
	for i, w := range want {
		if tokens[i].Type != NUMBER {
			t.Fatalf("token %d: expected NUMBER, got %v", i, tokens[i].Type)
		}
		if got := tokens[i].Literal.AsNumber().String(); got != w {
			t.Fatalf("token %d: got %q, want %q", i, got, w)
		}
	}
}

func Test_Lexer_UnexpectedCharacter_ReportsDiagnostic(t *testing.T) {
	rep := NewReporter()
	NewLexer("x = 1 & 2", rep).Scan()
	if !rep.HadError {
		t.Fatalf("expected a diagnostic for a lone '&'")
	}
}

func Test_Lexer_EveryTokenCarriesLine(t *testing.T) {
	rep := NewReporter()
	tokens := NewLexer("x\ny\nz", rep).Scan()
	wantLines := []int{1, 2, 3, 3}
	for i, w := range wantLines {
		if tokens[i].Line != w {
			t.Fatalf("token %d: expected line %d, got %d", i, w, tokens[i].Line)
		}
	}
}
