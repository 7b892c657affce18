package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/fivemoreminix/lexi/syntax"
	"github.com/fivemoreminix/lexi/ui"
)

var theme = ui.Theme{}

var focusedComponent ui.Component = nil

func changeFocus(to ui.Component) {
	if focusedComponent != nil {
		focusedComponent.SetFocused(false)
	}
	focusedComponent = to
	to.SetFocused(true)
}

func main() {
	registry := syntax.DefaultRegistry()

	// User definitions shadow the built-in languages
	if configDir, err := os.UserConfigDir(); err == nil {
		dir := filepath.Join(configDir, "lexi", "languages")
		if err := syntax.LoadLanguageDir(registry, dir); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	var filePath string
	var contents []byte
	if len(os.Args) > 1 {
		filePath = os.Args[1]
		bytes, err := os.ReadFile(filePath)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		contents = bytes
	}

	lang, err := registry.ByFilename(filePath)
	if errors.Is(err, syntax.ErrUnknownLanguage) {
		lang = syntax.PlainText
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	s, e := tcell.NewScreen()
	if e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		os.Exit(1)
	}
	if e := s.Init(); e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		os.Exit(1)
	}
	defer s.Fini() // Useful for handling panics

	_, _ = ClipInitialize(ClipExternal) // Falls back to the internal clipboard

	sizex, sizey := s.Size()

	textEdit := ui.NewTextEdit(&s, filePath, contents, &theme, lang)
	textEdit.SetPos(0, 0)
	textEdit.SetSize(sizex, sizey-1)
	changeFocus(textEdit)

main_loop:
	for {
		s.Clear()

		textEdit.Draw(s)
		drawStatusBar(s, textEdit, sizey-1, sizex)

		s.Show()

		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			sizex, sizey = s.Size()
			textEdit.SetSize(sizex, sizey-1)
			s.Sync() // Redraw everything
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlQ:
				break main_loop
			case tcell.KeyCtrlS:
				if err := saveFile(textEdit); err != nil {
					s.Beep()
				}
			case tcell.KeyCtrlX:
				if line := textEdit.CutLine(); line != "" {
					_ = ClipWrite(line)
				}
			case tcell.KeyCtrlC:
				if line := textEdit.CopyLine(); line != "" {
					_ = ClipWrite(line)
				}
			case tcell.KeyCtrlV:
				contents, err := ClipRead()
				if err != nil {
					s.Beep()
					continue
				}
				textEdit.Insert(contents)
			default:
				focusedComponent.HandleEvent(ev)
			}
		}
	}
}

func drawStatusBar(s tcell.Screen, te *ui.TextEdit, y, width int) {
	style := theme.GetOrDefault("StatusBar")
	ui.DrawRect(s, 0, y, width, 1, ' ', style)

	name := te.FilePath
	if name == "" {
		name = "noname"
	}
	if te.Dirty {
		name += " *"
	}
	ui.DrawStr(s, 1, y, name, style)

	line, col := te.GetCursor().GetLineCol()
	right := fmt.Sprintf("%s  %d:%d", te.Language.Name, line+1, col+1)
	ui.DrawStr(s, width-len(right)-1, y, right, style)
}

func saveFile(te *ui.TextEdit) error {
	if te.FilePath == "" {
		return errors.New("no file path")
	}
	f, err := os.Create(te.FilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := te.Buffer.WriteTo(f); err != nil {
		return err
	}
	te.Dirty = false
	return nil
}
