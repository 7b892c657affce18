package ui

import "github.com/gdamore/tcell/v2"

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr will render each character of a string at `x` and `y`.
func DrawStr(s tcell.Screen, x, y int, str string, style tcell.Style) {
	runes := []rune(str)
	for idx := 0; idx < len(runes); idx++ {
		s.SetContent(x+idx, y, runes[idx], nil, style)
	}
}
