package syntax

import (
	"testing"
)

// testLang compiles a small C-like definition used throughout the scanner
// and highlighter tests.
func testLang(t *testing.T) *Language {
	t.Helper()
	lang, err := CompileLanguage(&RawLanguage{
		Name:     "test",
		Keywords: []string{"if", "else", "return"},
		Ranges: []RawRange{
			{Start: "/*", End: "*/", Kind: "comment"},
			{Start: `"`, End: `"`, Escape: `\`, Kind: "string"},
		},
		Tokens: []RawToken{
			{Pattern: "0x%x+", Kind: "number"},
			{Pattern: "%d+.?%d*", Kind: "number"},
			{Pattern: "([%a_][%w_]*)%(", Kind: "function"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return lang
}

func scanString(t *testing.T, lang *Language, line string, in LineState) ([]Span, LineState) {
	t.Helper()
	spans, out := ScanLine(lang, []rune(line), in)
	checkCover(t, line, spans)
	return spans, out
}

// checkCover asserts the fundamental span invariants: ordered by start,
// non-overlapping, and exactly covering [0, len(line)).
func checkCover(t *testing.T, line string, spans []Span) {
	t.Helper()
	at := 0
	for i, s := range spans {
		if s.Start != at {
			t.Fatalf("line %q: span %d starts at %v, expected %v (spans %+v)", line, i, s.Start, at, spans)
		}
		if s.End <= s.Start {
			t.Fatalf("line %q: span %d is empty or inverted: %+v", line, i, s)
		}
		at = s.End
	}
	if at != len([]rune(line)) {
		t.Fatalf("line %q: spans cover [0,%v), expected [0,%v)", line, at, len([]rune(line)))
	}
}

func kindsOf(spans []Span) []Kind {
	kinds := make([]Kind, len(spans))
	for i, s := range spans {
		kinds[i] = s.Kind
	}
	return kinds
}

func TestScanKeywordsAndPlain(t *testing.T) {
	lang := testLang(t)

	spans, out := scanString(t, lang, "if x else yif", StateNormal)
	if out != StateNormal {
		t.Errorf("Expected Normal outgoing state, got %v", out)
	}

	expected := []Span{
		{0, 2, Keyword},  // if
		{2, 5, Plain},    // " x "
		{5, 9, Keyword},  // else
		{9, 13, Plain},   // " yif": keywords never match inside identifiers
	}
	for i, want := range expected {
		if i >= len(spans) || spans[i] != want {
			t.Fatalf("Expected spans %+v, got %+v", expected, spans)
		}
	}
}

func TestScanKeywordBoundary(t *testing.T) {
	lang, err := CompileLanguage(&RawLanguage{Name: "kw", Keywords: []string{"if"}})
	if err != nil {
		t.Fatal(err)
	}

	spans, _ := scanString(t, lang, "ifdef", StateNormal)
	if len(spans) != 1 || spans[0].Kind != Plain {
		t.Errorf("Expected one Plain span for \"ifdef\", got %+v", spans)
	}
}

func TestScanNumbersInOrder(t *testing.T) {
	lang := testLang(t)

	// The hex rule is declared before the decimal rule, so "0x2A" must not
	// be split by the decimal rule matching its leading zero.
	spans, _ := scanString(t, lang, "0x2A 3.25", StateNormal)

	expected := []Span{
		{0, 4, Number},
		{4, 5, Plain},
		{5, 9, Number},
	}
	for i, want := range expected {
		if i >= len(spans) || spans[i] != want {
			t.Fatalf("Expected spans %+v, got %+v", expected, spans)
		}
	}
}

func TestScanFunctionCapture(t *testing.T) {
	lang := testLang(t)

	spans, _ := scanString(t, lang, "foo(1)", StateNormal)

	// Only the captured identifier is a Function span; the consumed "("
	// is classified Plain.
	expected := []Span{
		{0, 3, Function},
		{3, 4, Plain},
		{4, 5, Number},
		{5, 6, Plain},
	}
	for i, want := range expected {
		if i >= len(spans) || spans[i] != want {
			t.Fatalf("Expected spans %+v, got %+v", expected, spans)
		}
	}
}

func TestScanStringEscapes(t *testing.T) {
	lang := testLang(t)

	// The escaped quote must not close the string
	spans, out := scanString(t, lang, `"a\"b"`, StateNormal)
	if out != StateNormal {
		t.Errorf("Expected Normal outgoing state, got %v", out)
	}
	if len(spans) != 1 || spans[0] != (Span{0, 6, String}) {
		t.Errorf("Expected one String span [0,6), got %+v", spans)
	}

	// An escaped escape does not protect the quote
	spans, _ = scanString(t, lang, `"a\\" x`, StateNormal)
	if spans[0] != (Span{0, 5, String}) {
		t.Errorf("Expected String span [0,5), got %+v", spans)
	}
}

func TestScanRangesWinOverPatterns(t *testing.T) {
	lang := testLang(t)

	// "123" inside the string must not be classified Number
	spans, _ := scanString(t, lang, `"123"`, StateNormal)
	if len(spans) != 1 || spans[0].Kind != String {
		t.Errorf("Expected the whole literal to be String, got %+v", spans)
	}

	// A comment range beats the number pattern at the same offset too
	lang2, err := CompileLanguage(&RawLanguage{
		Name:   "tie",
		Ranges: []RawRange{{Start: "123", End: "!", Kind: "comment"}},
		Tokens: []RawToken{{Pattern: "%d+", Kind: "number"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	spans, _ = scanString(t, lang2, "123x!", StateNormal)
	if spans[0].Kind != Comment {
		t.Errorf("Expected range to win the tie, got %+v", spans)
	}
}

func TestScanBlockCommentAcrossLines(t *testing.T) {
	lang := testLang(t)

	spans, out := scanString(t, lang, "/* start", StateNormal)
	if !out.InRange() {
		t.Fatalf("Expected an open range, got state %v", out)
	}
	if len(spans) != 1 || spans[0] != (Span{0, 8, Comment}) {
		t.Errorf("Expected the whole line to be Comment, got %+v", spans)
	}

	spans, out = scanString(t, lang, "end */ if", out)
	if out != StateNormal {
		t.Errorf("Expected the comment to close, got state %v", out)
	}
	expected := []Span{
		{0, 6, Comment},
		{6, 7, Plain},
		{7, 9, Keyword},
	}
	for i, want := range expected {
		if i >= len(spans) || spans[i] != want {
			t.Fatalf("Expected spans %+v, got %+v", expected, spans)
		}
	}
}

func TestScanOpenRangeAtLineEnd(t *testing.T) {
	lang := testLang(t)

	// A start delimiter at the very end of the line opens the range with an
	// empty body
	spans, out := scanString(t, lang, "x = /*", StateNormal)
	if !out.InRange() {
		t.Fatalf("Expected an open range, got state %v", out)
	}
	if last := spans[len(spans)-1]; last != (Span{4, 6, Comment}) {
		t.Errorf("Expected trailing Comment span [4,6), got %+v", spans)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	lang := testLang(t)

	// Scanning is total: an unterminated string is simply an open range
	_, out := scanString(t, lang, `"never closed`, StateNormal)
	if out != LineState(1) {
		t.Errorf("Expected open range rule 1, got state %v", out)
	}
}

func TestScanLineCommentDoesNotPropagate(t *testing.T) {
	lang, err := CompileLanguage(&RawLanguage{
		Name:   "line",
		Ranges: []RawRange{{Start: "//", End: "\n", Kind: "comment"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	spans, out := scanString(t, lang, "x // trailing", StateNormal)
	if out != StateNormal {
		t.Errorf("Expected line comments to end with their line, got state %v", out)
	}
	if last := spans[len(spans)-1]; last.Kind != Comment || last.End != 13 {
		t.Errorf("Expected Comment to the end of line, got %+v", spans)
	}
}

func TestScanRangeMaxLength(t *testing.T) {
	lang, err := CompileLanguage(&RawLanguage{
		Name:   "chars",
		Ranges: []RawRange{{Start: "'", End: "'", Escape: `\`, MaxLength: 2, Kind: "string"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	spans, _ := scanString(t, lang, `'a'`, StateNormal)
	if spans[0] != (Span{0, 3, String}) {
		t.Errorf("Expected char literal String span, got %+v", spans)
	}

	// Too long for the rule: not a range at all, runes scan as plain text
	spans, _ = scanString(t, lang, `'abcdefg'`, StateNormal)
	if spans[0].Kind == String {
		t.Errorf("Expected over-long candidate to be rejected, got %+v", spans)
	}
}

func TestScanMarkovProperty(t *testing.T) {
	lang := testLang(t)
	line := `return "a\"b" /* c`

	spans1, out1 := scanString(t, lang, line, StateNormal)
	spans2, out2 := scanString(t, lang, line, StateNormal)

	if out1 != out2 || len(spans1) != len(spans2) {
		t.Fatalf("Scanning is not deterministic: %+v/%v vs %+v/%v", spans1, out1, spans2, out2)
	}
	for i := range spans1 {
		if spans1[i] != spans2[i] {
			t.Fatalf("Scanning is not deterministic: %+v vs %+v", spans1, spans2)
		}
	}
}

func TestScanEmptyLine(t *testing.T) {
	lang := testLang(t)

	spans, out := ScanLine(lang, nil, StateNormal)
	if len(spans) != 0 || out != StateNormal {
		t.Errorf("Expected no spans and Normal state, got %+v, %v", spans, out)
	}

	// An empty line inside an open range stays in the range
	spans, out = ScanLine(lang, nil, LineState(0))
	if len(spans) != 0 || out != LineState(0) {
		t.Errorf("Expected the open range to pass through, got %+v, %v", spans, out)
	}
}
