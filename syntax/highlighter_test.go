package syntax

import (
	"testing"
)

// sliceDoc is the simplest possible Document: a slice of lines.
type sliceDoc struct {
	lines []string
	reads int // LineRunes calls, for observing how much rescanning happens
}

func newSliceDoc(lines ...string) *sliceDoc {
	return &sliceDoc{lines: lines}
}

func (d *sliceDoc) Lines() int {
	if len(d.lines) == 0 {
		return 1
	}
	return len(d.lines)
}

func (d *sliceDoc) LineRunes(line int) []rune {
	d.reads++
	if line >= len(d.lines) {
		return nil
	}
	return []rune(d.lines[line])
}

// replaceLines mirrors a buffer edit: lines [start, oldEnd] become newLines.
// It returns the arguments for ApplyEdit.
func (d *sliceDoc) replaceLines(start, oldEnd int, newLines ...string) (int, int, int) {
	tail := append([]string(nil), d.lines[oldEnd+1:]...)
	d.lines = append(d.lines[:start], append(newLines, tail...)...)
	return start, oldEnd, start + len(newLines) - 1
}

func assertStates(t *testing.T, h *Highlighter, want []LineState) {
	t.Helper()
	for i, state := range want {
		if got := h.StateAfter(i); got != state {
			t.Errorf("Line %v: expected state %v, got %v", i, state, got)
		}
	}
}

func assertSameHighlights(t *testing.T, h *Highlighter, doc Document, lang *Language) {
	t.Helper()
	fresh := NewHighlighter(doc, lang)
	for y := 0; y < doc.Lines(); y++ {
		if h.StateAfter(y) != fresh.StateAfter(y) {
			t.Errorf("Line %v: incremental state %v != full-scan state %v", y, h.StateAfter(y), fresh.StateAfter(y))
		}
		a, b := h.SpansForLine(y), fresh.SpansForLine(y)
		if len(a) != len(b) {
			t.Errorf("Line %v: incremental spans %+v != full-scan spans %+v", y, a, b)
			continue
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("Line %v: incremental spans %+v != full-scan spans %+v", y, a, b)
				break
			}
		}
	}
}

func TestHighlighterInitialScan(t *testing.T) {
	lang := testLang(t)
	doc := newSliceDoc(
		"if x",
		"/* open",
		"still inside",
		"closed */ else",
		"return",
	)

	h := NewHighlighter(doc, lang)

	assertStates(t, h, []LineState{
		StateNormal,
		LineState(0),
		LineState(0),
		StateNormal,
		StateNormal,
	})

	if spans := h.SpansForLine(2); len(spans) != 1 || spans[0].Kind != Comment {
		t.Errorf("Expected line 2 fully Comment, got %+v", spans)
	}
}

func TestHighlighterEditPropagatesDownward(t *testing.T) {
	lang := testLang(t)
	doc := newSliceDoc("a", "b", "c", "d")
	h := NewHighlighter(doc, lang)

	// Open a block comment on line 1: every following line changes state
	h.ApplyEdit(doc.replaceLines(1, 1, "/* b"))

	assertStates(t, h, []LineState{StateNormal, LineState(0), LineState(0), LineState(0)})
	if spans := h.SpansForLine(3); len(spans) != 1 || spans[0].Kind != Comment {
		t.Errorf("Expected line 3 fully Comment, got %+v", spans)
	}

	// And closing it restores the rest
	h.ApplyEdit(doc.replaceLines(1, 1, "b"))
	assertStates(t, h, []LineState{StateNormal, StateNormal, StateNormal, StateNormal})
	assertSameHighlights(t, h, doc, lang)
}

func TestHighlighterFixpointStopsRescan(t *testing.T) {
	lang := testLang(t)
	lines := []string{"x = 1"}
	for i := 0; i < 100; i++ {
		lines = append(lines, "y = 2")
	}
	doc := newSliceDoc(lines...)
	h := NewHighlighter(doc, lang)

	// Editing line 0 without changing its outgoing state must stop the
	// rescan at the first unchanged line, not walk the whole document.
	doc.reads = 0
	h.ApplyEdit(doc.replaceLines(0, 0, "x = 42"))

	if doc.reads > 2 {
		t.Errorf("Expected the rescan to stop at the fixpoint, read %v lines", doc.reads)
	}
	assertSameHighlights(t, h, doc, lang)
}

func TestHighlighterNoOpEditIsIdempotent(t *testing.T) {
	lang := testLang(t)
	doc := newSliceDoc(`s := "abc`, "def", `ghi"`)
	h := NewHighlighter(doc, lang)

	before := make([]LineState, doc.Lines())
	for i := range before {
		before[i] = h.StateAfter(i)
	}

	// Replace line 1 with identical text
	h.ApplyEdit(doc.replaceLines(1, 1, "def"))

	for i, state := range before {
		if got := h.StateAfter(i); got != state {
			t.Errorf("Line %v: state changed from %v to %v on a no-op edit", i, state, got)
		}
	}
	assertSameHighlights(t, h, doc, lang)
}

func TestHighlighterInsertAndDeleteLines(t *testing.T) {
	lang := testLang(t)
	doc := newSliceDoc("/* a", "b */", "if c")
	h := NewHighlighter(doc, lang)

	// Insert two lines inside the comment
	h.ApplyEdit(doc.replaceLines(0, 0, "/* a", "new1", "new2"))
	if doc.Lines() != 5 {
		t.Fatalf("Expected 5 lines, got %v", doc.Lines())
	}
	assertStates(t, h, []LineState{LineState(0), LineState(0), LineState(0), StateNormal, StateNormal})
	assertSameHighlights(t, h, doc, lang)

	// Delete the closing line: the comment now runs to the end
	h.ApplyEdit(doc.replaceLines(3, 4, "if c"))
	assertStates(t, h, []LineState{LineState(0), LineState(0), LineState(0), LineState(0)})
	assertSameHighlights(t, h, doc, lang)
}

func TestHighlighterIncrementalMatchesFullScan(t *testing.T) {
	lang := testLang(t)
	doc := newSliceDoc("a", "b", "c", "d", "e", "f")
	h := NewHighlighter(doc, lang)

	edits := [][]string{
		{`x = "one`},
		{`two"`},
		{"/*"},
		{"*/"},
		{"if else return"},
	}
	line := 0
	for _, newLines := range edits {
		h.ApplyEdit(doc.replaceLines(line, line, newLines...))
		assertSameHighlights(t, h, doc, lang)
		line = (line + 2) % doc.Lines()
	}
}

func TestHighlighterReset(t *testing.T) {
	lang := testLang(t)
	doc := newSliceDoc("/* a", "b")
	h := NewHighlighter(doc, lang)

	// Mutate the document behind the highlighter's back, then Reset: the
	// degraded fallback must still produce a full, correct rescan.
	doc.lines = []string{"x", "y", "z"}
	h.Reset()

	assertStates(t, h, []LineState{StateNormal, StateNormal, StateNormal})
	assertSameHighlights(t, h, doc, lang)
}

func TestHighlighterMismatchedEditFallsBack(t *testing.T) {
	lang := testLang(t)
	doc := newSliceDoc("a", "b", "c")
	h := NewHighlighter(doc, lang)

	// Lie about the edit shape: the cache length check catches it and the
	// highlighter recovers by rescanning everything.
	doc.lines = []string{"/* a", "b", "c", "d"}
	h.ApplyEdit(0, 0, 0)

	assertStates(t, h, []LineState{LineState(0), LineState(0), LineState(0), LineState(0)})
	assertSameHighlights(t, h, doc, lang)
}

func TestHighlighterSetLanguage(t *testing.T) {
	lang := testLang(t)
	doc := newSliceDoc("if x")
	h := NewHighlighter(doc, PlainText)

	if spans := h.SpansForLine(0); len(spans) != 1 || spans[0].Kind != Plain {
		t.Errorf("Expected PlainText to classify everything Plain, got %+v", spans)
	}

	h.SetLanguage(lang)
	if spans := h.SpansForLine(0); len(spans) == 0 || spans[0].Kind != Keyword {
		t.Errorf("Expected Keyword span after language switch, got %+v", spans)
	}
}
