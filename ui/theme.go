package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/fivemoreminix/lexi/syntax"
)

// A Theme is a map of string names to styles. Themes can be passed by reference
// to components to set their styles. If a theme value cannot be found, then the
// `DefaultTheme` value will be used, instead. An updated list of theme keys can
// be found on the default theme.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	} else {
		panic(fmt.Sprintf("key \"%v\" not present in default theme", key))
	}
}

// DefaultTheme uses only the first 16 colors present in most colored terminals.
var DefaultTheme = Theme{
	"Normal":         tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"StatusBar":      tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"TextEdit":       tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TextEditColumn": tcell.Style{}.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack),
}

// A Colorscheme assigns a style to each highlight kind. Any kind without an
// entry falls back to the Plain style.
type Colorscheme map[syntax.Kind]tcell.Style

func (c Colorscheme) GetStyle(kind syntax.Kind) tcell.Style {
	if style, ok := c[kind]; ok {
		return style
	}
	return c[syntax.Plain]
}

// DefaultColorscheme uses only the first 16 colors present in most colored
// terminals.
var DefaultColorscheme = Colorscheme{
	syntax.Plain:      tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	syntax.Comment:    tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	syntax.DocComment: tcell.Style{}.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack),
	syntax.String:     tcell.Style{}.Foreground(tcell.ColorOlive).Background(tcell.ColorBlack),
	syntax.Number:     tcell.Style{}.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack),
	syntax.Function:   tcell.Style{}.Foreground(tcell.ColorBlue).Background(tcell.ColorBlack),
	syntax.Symbol:     tcell.Style{}.Foreground(tcell.ColorTeal).Background(tcell.ColorBlack),
	syntax.Keyword:    tcell.Style{}.Foreground(tcell.ColorNavy).Background(tcell.ColorBlack),
	syntax.Type:       tcell.Style{}.Foreground(tcell.ColorPurple).Background(tcell.ColorBlack),
	syntax.Meta:       tcell.Style{}.Foreground(tcell.ColorMaroon).Background(tcell.ColorBlack),
}
