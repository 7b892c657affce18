package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/fivemoreminix/lexi/buffer"
	"github.com/fivemoreminix/lexi/syntax"
)

// TextEdit is a field for line-based editing. Every edit is reported to the
// highlighter, which keeps its line cache in sync incrementally; drawing only
// reads cached spans.
type TextEdit struct {
	Buffer      buffer.Buffer
	Highlighter *syntax.Highlighter
	Language    *syntax.Language
	LineNumbers bool   // Whether to render line numbers (and therefore the column)
	Dirty       bool   // Whether the buffer has been edited
	UseHardTabs bool   // When true, tabs are '\t'
	TabSize     int    // How many columns a tab occupies
	IsCRLF      bool   // Whether the file's line endings are CRLF (\r\n) or LF (\n)
	FilePath    string // Will be empty if the file has not been saved yet

	screen           *tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll
	colorscheme      Colorscheme

	baseComponent
}

// NewTextEdit initializes the buffer with the given contents and highlights it
// with the given language. If filePath is empty, the TextEdit has no file
// association.
func NewTextEdit(screen *tcell.Screen, filePath string, contents []byte, theme *Theme, lang *syntax.Language) *TextEdit {
	te := &TextEdit{
		Language:    lang,
		LineNumbers: true,
		UseHardTabs: !lang.SoftTabs,
		TabSize:     lang.IndentWidth,
		FilePath:    filePath,

		screen:        screen,
		colorscheme:   DefaultColorscheme,
		baseComponent: baseComponent{theme: theme},
	}
	te.SetContents(contents)
	return te
}

// SetContents replaces the internal buffer of the TextEdit component. The
// contents are determined to be either CRLF or LF based on line-endings.
func (t *TextEdit) SetContents(contents []byte) {
	var i int
loop:
	for i < len(contents) {
		switch contents[i] {
		case '\n':
			t.IsCRLF = false
			break loop
		case '\r':
			t.IsCRLF = true
			break loop
		}
		_, size := utf8.DecodeRune(contents[i:])
		i += size
	}

	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(&t.Buffer)
	t.Highlighter = syntax.NewHighlighter(t.Buffer, t.Language)
}

// SetLanguage switches the language the buffer is highlighted with.
func (t *TextEdit) SetLanguage(lang *syntax.Language) {
	t.Language = lang
	t.UseHardTabs = !lang.SoftTabs
	t.TabSize = lang.IndentWidth
	t.Highlighter.SetLanguage(lang)
}

// SetColorscheme changes the styles highlight kinds are drawn with.
func (t *TextEdit) SetColorscheme(colorscheme Colorscheme) {
	t.colorscheme = colorscheme
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextEdit) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	}
	return "\n"
}

// Delete with `forwards` false will backspace, destroying the character before
// the cursor, while Delete with `forwards` true will delete the character
// after (or on) the cursor.
func (t *TextEdit) Delete(forwards bool) {
	cursLine, cursCol := t.cursor.GetLineCol()
	linesBefore := t.Buffer.Lines()
	startLine := cursLine

	if forwards { // Delete the character after the cursor
		// Nothing to do at the very end of the buffer
		if cursLine >= t.Buffer.Lines()-1 && cursCol >= t.Buffer.RunesInLine(cursLine) {
			return
		}
		t.Buffer.Remove(cursLine, cursCol, cursLine, cursCol)
	} else { // Delete the character before the cursor
		if cursLine == 0 && cursCol == 0 {
			return
		}
		t.cursor = t.cursor.Left() // Back up to that character
		delLine, delCol := t.cursor.GetLineCol()
		t.Buffer.Remove(delLine, delCol, delLine, delCol)
		startLine = delLine
	}
	t.Dirty = true

	// A removed delimiter joins two lines; the cache must shrink with the text
	linesRemoved := linesBefore - t.Buffer.Lines()
	t.Highlighter.ApplyEdit(startLine, startLine+linesRemoved, startLine)

	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// Insert writes `contents` at the cursor position and advances the cursor past
// what it wrote. Line delimiters and the tab character are supported; any
// other control characters will be printed.
func (t *TextEdit) Insert(contents string) {
	startLine, _ := t.cursor.GetLineCol()
	linesBefore := t.Buffer.Lines()

	runes := []rune(contents)
	for i := 0; i < len(runes); i++ {
		cursLine, cursCol := t.cursor.GetLineCol()
		switch ch := runes[i]; ch {
		case '\r':
			// If the character after is a \n, then it is a CRLF
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++ // Consume '\n' after
				t.Buffer.Insert(cursLine, cursCol, []byte{'\n'})
				t.cursor = t.cursor.SetLineCol(cursLine+1, 0)
			}
		case '\n':
			t.Buffer.Insert(cursLine, cursCol, []byte{'\n'})
			t.cursor = t.cursor.SetLineCol(cursLine+1, 0)
		case '\b':
			t.Delete(false) // Delete the character before the cursor
		case '\t':
			if !t.UseHardTabs { // If this file does not use hard tabs...
				// Insert spaces
				spaces := strings.Repeat(" ", t.TabSize)
				t.Buffer.Insert(cursLine, cursCol, []byte(spaces))
				t.cursor = t.cursor.SetLineCol(cursLine, cursCol+t.TabSize)
				continue
			}
			fallthrough // Append the \t character
		default:
			// Insert character into line
			t.Buffer.Insert(cursLine, cursCol, []byte(string(ch)))
			t.cursor = t.cursor.SetLineCol(cursLine, cursCol+1)
		}
	}
	t.Dirty = true

	linesAdded := t.Buffer.Lines() - linesBefore
	t.Highlighter.ApplyEdit(startLine, startLine, startLine+linesAdded)

	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// CopyLine returns the contents of the line the cursor is on, including its
// delimiter.
func (t *TextEdit) CopyLine() string {
	cursLine, _ := t.cursor.GetLineCol()
	return string(t.Buffer.Line(cursLine))
}

// CutLine removes the line the cursor is on and returns its contents,
// including the delimiter.
func (t *TextEdit) CutLine() string {
	contents := t.CopyLine()

	cursLine, _ := t.cursor.GetLineCol()
	if t.Buffer.Lines() == 1 && t.Buffer.RunesInLine(0) == 0 {
		return contents // Nothing to remove from an empty buffer
	}

	linesBefore := t.Buffer.Lines()
	t.Buffer.Remove(cursLine, 0, cursLine, t.Buffer.RunesInLine(cursLine))
	t.Dirty = true

	linesRemoved := linesBefore - t.Buffer.Lines()
	t.Highlighter.ApplyEdit(cursLine, cursLine+linesRemoved, cursLine)

	t.cursor = t.cursor.SetLineCol(cursLine, 0)
	t.ScrollToCursor()
	t.updateCursorVisibility()
	return contents
}

// getTabCountInLineAtCol returns the tabs in the given line before the column
// position, if hard tabs are enabled. If hard tabs are not enabled, the
// function returns zero. Multiply the returned count by TabSize-1 to get the
// extra screen offset produced by tabs.
func (t *TextEdit) getTabCountInLineAtCol(line, col int) int {
	if !t.UseHardTabs {
		return 0
	}
	var count int
	for i, r := range t.Buffer.LineRunes(line) {
		if i >= col {
			break
		}
		if r == '\t' {
			count++
		}
	}
	return count
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit. Sends a signal to show the cursor if the TextEdit
// is focused.
func (t *TextEdit) updateCursorVisibility() {
	if t.focused {
		columnWidth := t.getColumnWidth()
		line, col := t.cursor.GetLineCol()
		tabOffset := t.getTabCountInLineAtCol(line, col) * (t.TabSize - 1)
		(*t.screen).ShowCursor(t.x+columnWidth+col+tabOffset-t.scrollx, t.y+line-t.scrolly)
	}
}

// ScrollToCursor scrolls the view if the cursor is out of it.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()

	// Handle hard tabs
	tabOffset := t.getTabCountInLineAtCol(line, col) * (t.TabSize - 1)

	// Scroll just enough to keep the cursor's line and column in view
	t.scrolly = Clamp(t.scrolly, line-t.height+1, line)

	columnWidth := t.getColumnWidth()
	t.scrollx = Clamp(t.scrollx, (col+tabOffset)-(t.width-columnWidth)+1, col+tabOffset)
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.cursor = newCursor
	t.updateCursorVisibility()
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	var columnWidth int
	if t.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = Max(3, 1+len(strconv.Itoa(t.Buffer.Lines())))
	}
	return columnWidth
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	bufferLines := t.Buffer.Lines()

	defaultStyle := t.colorscheme.GetStyle(syntax.Plain)
	columnStyle := t.theme.GetOrDefault("TextEditColumn")

	DrawRect(s, t.x+columnWidth, t.y, t.width-columnWidth, t.height, ' ', defaultStyle)

	for lineY := t.y; lineY < t.y+t.height; lineY++ { // For each line we can draw...
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		lineNumStr := "" // Line number as a string

		if line < bufferLines { // Only index buffer if we are within it...
			lineNumStr = strconv.Itoa(line + 1)

			lineRunes := t.Buffer.LineRunes(line)
			spans := t.Highlighter.SpansForLine(line)
			var spanIdx int

			// X offset we draw the next rune at (some runes can be 2 cols wide)
			col := t.x + columnWidth - t.scrollx

			for runeIdx, r := range lineRunes {
				// Spans are ordered, so the walk through them never backs up
				for spanIdx < len(spans) && runeIdx >= spans[spanIdx].End {
					spanIdx++
				}
				style := defaultStyle
				if spanIdx < len(spans) && runeIdx >= spans[spanIdx].Start {
					style = t.colorscheme.GetStyle(spans[spanIdx].Kind)
				}

				if r == '\t' { // Tabs draw as TabSize cells of whitespace
					for i := 0; i < t.TabSize; i++ {
						if col >= t.x+columnWidth && col < t.x+t.width {
							s.SetContent(col, lineY, ' ', nil, style)
						}
						col++
					}
					continue
				}

				if col >= t.x+columnWidth && col < t.x+t.width {
					s.SetContent(col, lineY, r, nil, style)
				}
				col += runewidth.RuneWidth(r)
			}
		}

		columnStr := fmt.Sprintf("%s%s│", strings.Repeat(" ", columnWidth-len(lineNumStr)-1), lineNumStr) // Right align line number

		DrawStr(s, t.x, lineY, columnStr, columnStyle) // Draw column
	}

	t.updateCursorVisibility()
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is
// set visible and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else {
		(*t.screen).HideCursor()
	}
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			t.SetCursor(t.cursor.Up())
			t.ScrollToCursor()
		case tcell.KeyDown:
			t.SetCursor(t.cursor.Down())
			t.ScrollToCursor()
		case tcell.KeyLeft:
			t.SetCursor(t.cursor.Left())
			t.ScrollToCursor()
		case tcell.KeyRight:
			t.SetCursor(t.cursor.Right())
			t.ScrollToCursor()
		case tcell.KeyHome:
			cursLine, _ := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(cursLine, 0))
			t.ScrollToCursor()
		case tcell.KeyEnd:
			cursLine, _ := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(cursLine, math.MaxInt32)) // Max column
			t.ScrollToCursor()
		case tcell.KeyPgUp:
			_, cursCol := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(t.scrolly-t.height, cursCol)) // Go a page up
			t.ScrollToCursor()
		case tcell.KeyPgDn:
			_, cursCol := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(t.scrolly+t.height*2-1, cursCol)) // Go a page down
			t.ScrollToCursor()

		// Deleting
		case tcell.KeyBackspace:
			fallthrough
		case tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			t.Insert("\t") // (can translate to spaces)
		case tcell.KeyEnter:
			t.Insert("\n")

		// Inserting
		case tcell.KeyRune:
			t.Insert(string(ev.Rune())) // Insert rune
		default:
			return false
		}
		return true
	}
	return false
}
