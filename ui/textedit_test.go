package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/fivemoreminix/lexi/syntax"
)

func newTestEdit(t *testing.T, contents string) *TextEdit {
	t.Helper()
	var screen tcell.Screen // Never drawn to: the TextEdit is not focused
	te := NewTextEdit(&screen, "", []byte(contents), &Theme{}, syntax.PlainText)
	te.SetSize(80, 10)
	return te
}

func TestTextEditScrolling(t *testing.T) {
	te := newTestEdit(t, strings.Repeat("line\n", 40))

	// Moving below the view scrolls just enough to show the cursor's line
	te.SetCursor(te.GetCursor().SetLineCol(25, 0))
	te.ScrollToCursor()
	if te.scrolly != 16 {
		t.Errorf("Expected scrolly 16, got %v", te.scrolly)
	}

	// Moving above the view scrolls back up to the cursor's line
	te.SetCursor(te.GetCursor().SetLineCol(3, 0))
	te.ScrollToCursor()
	if te.scrolly != 3 {
		t.Errorf("Expected scrolly 3, got %v", te.scrolly)
	}

	// Moving within the view leaves the scroll alone
	te.SetCursor(te.GetCursor().SetLineCol(8, 0))
	te.ScrollToCursor()
	if te.scrolly != 3 {
		t.Errorf("Expected scrolly to stay 3, got %v", te.scrolly)
	}
}

func TestTextEditHorizontalScrolling(t *testing.T) {
	te := newTestEdit(t, strings.Repeat("a", 200))
	columnWidth := te.getColumnWidth()

	te.SetCursor(te.GetCursor().SetLineCol(0, 150))
	te.ScrollToCursor()
	if want := 150 - (80 - columnWidth) + 1; te.scrollx != want {
		t.Errorf("Expected scrollx %v, got %v", want, te.scrollx)
	}

	te.SetCursor(te.GetCursor().SetLineCol(0, 0))
	te.ScrollToCursor()
	if te.scrollx != 0 {
		t.Errorf("Expected scrollx 0, got %v", te.scrollx)
	}
}

func TestTextEditInsertDelete(t *testing.T) {
	te := newTestEdit(t, "abc")

	te.Insert("x")
	if got := string(te.Buffer.Bytes()); got != "xabc" {
		t.Fatalf("Expected \"xabc\", got %#v", got)
	}
	if !te.Dirty {
		t.Errorf("Expected the edit to mark the buffer dirty")
	}

	// Splitting the line must grow the highlighter's cache with the buffer
	te.Insert("\n")
	if te.Buffer.Lines() != 2 {
		t.Fatalf("Expected 2 lines, got %v", te.Buffer.Lines())
	}
	if spans := te.Highlighter.SpansForLine(1); len(spans) != 1 || spans[0].Kind != syntax.Plain {
		t.Errorf("Expected line 1 to be one Plain span, got %+v", spans)
	}

	// Backspace at the start of a line joins it with the previous one
	te.Delete(false)
	if got := string(te.Buffer.Bytes()); got != "xabc" {
		t.Errorf("Expected \"xabc\" after joining, got %#v", got)
	}
	if te.Buffer.Lines() != 1 {
		t.Errorf("Expected 1 line, got %v", te.Buffer.Lines())
	}
}

func TestTextEditCutLine(t *testing.T) {
	te := newTestEdit(t, "one\ntwo\nthree")
	te.SetCursor(te.GetCursor().SetLineCol(1, 0))

	if cut := te.CutLine(); cut != "two\n" {
		t.Errorf("Expected to cut \"two\\n\", got %#v", cut)
	}
	if got := string(te.Buffer.Bytes()); got != "one\nthree" {
		t.Errorf("Expected \"one\\nthree\", got %#v", got)
	}
	if spans := te.Highlighter.SpansForLine(1); len(spans) != 1 || spans[0].End != 5 {
		t.Errorf("Expected line 1 spans to cover \"three\", got %+v", spans)
	}
}

func TestTextEditSoftTabs(t *testing.T) {
	soft, err := syntax.CompileLanguage(&syntax.RawLanguage{
		Name:        "soft",
		IndentWidth: 2,
		SoftTabs:    true,
	})
	if err != nil {
		t.Fatal(err)
	}

	te := newTestEdit(t, "abc")
	te.SetLanguage(soft)

	te.Insert("\t")
	if got := string(te.Buffer.Bytes()); got != "  abc" {
		t.Errorf("Expected two spaces of indent, got %#v", got)
	}
	if _, col := te.GetCursor().GetLineCol(); col != 2 {
		t.Errorf("Expected cursor past the indent at col 2, got %v", col)
	}
}
