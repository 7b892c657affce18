package syntax

// A Document is the read-only view of a text buffer the highlighter scans.
// buffer.Buffer satisfies it.
type Document interface {
	// Lines returns the number of lines in the document, at least 1.
	Lines() int
	// LineRunes returns the runes of the given line without its delimiter.
	LineRunes(line int) []rune
}

type lineCache struct {
	spans []Span
	out   LineState
	valid bool
}

// A Highlighter keeps one document's highlighting consistent with its text
// across edits. It caches, per line, the spans and the outgoing LineState;
// because a line's scan depends only on its text and incoming state, an
// edit only forces rescanning until some line's outgoing state comes out
// the same as before.
//
// A Highlighter is owned by a single document and is not safe for
// concurrent use. The Language it scans with is shared and immutable.
type Highlighter struct {
	doc   Document
	lang  *Language
	lines []lineCache
}

// NewHighlighter scans the whole document once and returns its highlighter.
func NewHighlighter(doc Document, lang *Language) *Highlighter {
	h := &Highlighter{doc: doc, lang: lang}
	h.Reset()
	return h
}

func (h *Highlighter) Language() *Language { return h.lang }

// SetLanguage switches the active language and rescans the document.
func (h *Highlighter) SetLanguage(lang *Language) {
	h.lang = lang
	h.Reset()
}

// Reset discards all cached state and rescans every line from StateNormal.
// It is also the degraded fallback when the cache no longer lines up with
// the document.
func (h *Highlighter) Reset() {
	h.lines = make([]lineCache, h.doc.Lines())
	h.rescan(0, len(h.lines)-1)
}

// ApplyEdit reconciles the cache after the buffer replaced lines
// [startLine, oldEndLine] with lines [startLine, newEndLine]. It rescans
// from startLine, carrying state forward, and stops at the first line past
// the edit whose outgoing state matches what was cached before the edit;
// every later line's cache entry is still valid then.
func (h *Highlighter) ApplyEdit(startLine, oldEndLine, newEndLine int) {
	if startLine < 0 {
		startLine = 0
	}
	if oldEndLine < startLine {
		oldEndLine = startLine
	}
	if newEndLine < startLine {
		newEndLine = startLine
	}
	if startLine > len(h.lines) {
		h.Reset()
		return
	}

	// Splice the cache: fresh entries for the edited range, old entries
	// shifted into place after it.
	tailAt := oldEndLine + 1
	if tailAt > len(h.lines) {
		tailAt = len(h.lines)
	}
	spliced := make([]lineCache, 0, startLine+(newEndLine-startLine+1)+(len(h.lines)-tailAt))
	spliced = append(spliced, h.lines[:startLine]...)
	spliced = append(spliced, make([]lineCache, newEndLine-startLine+1)...)
	spliced = append(spliced, h.lines[tailAt:]...)
	h.lines = spliced

	if len(h.lines) != h.doc.Lines() {
		// The caller's line ranges disagree with the buffer. Correct
		// output still matters more than speed, so start over.
		h.Reset()
		return
	}

	h.rescan(startLine, newEndLine)
}

// rescan scans lines from startLine onward. Lines through editEnd are
// unconditionally rescanned; past editEnd, scanning stops at the state
// fixpoint.
func (h *Highlighter) rescan(startLine, editEnd int) {
	state := StateNormal
	if startLine > 0 {
		state = h.lines[startLine-1].out
	}

	for y := startLine; y < len(h.lines); y++ {
		prev := h.lines[y]
		spans, out := ScanLine(h.lang, h.doc.LineRunes(y), state)
		h.lines[y] = lineCache{spans: spans, out: out, valid: true}
		state = out

		if y > editEnd && prev.valid && prev.out == out {
			break
		}
	}
}

// SpansForLine returns the cached spans for a line, ordered by start
// offset. The slice must not be modified.
func (h *Highlighter) SpansForLine(line int) []Span {
	if line < 0 || line >= len(h.lines) {
		return nil
	}
	return h.lines[line].spans
}

// StateAfter returns the outgoing LineState of the given line.
func (h *Highlighter) StateAfter(line int) LineState {
	if line < 0 || line >= len(h.lines) {
		return StateNormal
	}
	return h.lines[line].out
}
