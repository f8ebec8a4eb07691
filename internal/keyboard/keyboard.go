// Package keyboard projects a game session onto a grid of selectable buttons.
package keyboard

import "strings"

const (
	// RowWidth is the number of buttons in every padded row
	RowWidth = 5

	Placeholder    = "*"
	SeparatorLabel = "🔝Відгадай слово🔝"
	JoinLabel      = "Прийняти гру"
	fillerLabel    = " "
)

// Button is one selectable cell. Data is the opaque payload sent back by the
// chat platform when the button is pressed.
type Button struct {
	Label string
	Data  string
}

// Grid is a row-major keyboard
type Grid [][]Button

// CellCount returns the total number of buttons in the grid
func (g Grid) CellCount() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// Layout describes what to render
type Layout struct {
	// Word is the secret word. Empty renders only the letter picker.
	Word string
	// Revealed letters are shown as themselves, every other rune as Placeholder.
	Revealed []string
	// Letters is the ordered alphabet offered for guessing.
	Letters []string
	// SessionID is embedded in every guess and join payload.
	SessionID string
	// JoinAffordance appends the accept-game row.
	JoinAffordance bool
}

// Project renders the word progress rows, a separator, the letter picker and
// optionally the join row.
func Project(l Layout) Grid {
	revealed := make(map[string]bool, len(l.Revealed))
	for _, r := range l.Revealed {
		revealed[strings.ToLower(r)] = true
	}

	var wordCells []Button
	for _, r := range l.Word {
		label := Placeholder
		if revealed[string(r)] {
			label = string(r)
		}
		wordCells = append(wordCells, Button{Label: label, Data: NoopPayload})
	}

	grid := chunk(wordCells)
	grid = append(grid, []Button{{Label: SeparatorLabel, Data: NoopPayload}})

	letterCells := make([]Button, 0, len(l.Letters))
	for _, letter := range l.Letters {
		letterCells = append(letterCells, Button{Label: letter, Data: GuessPayload(l.SessionID, letter)})
	}
	grid = append(grid, chunk(letterCells)...)

	if l.JoinAffordance {
		grid = append(grid, []Button{{Label: JoinLabel, Data: JoinPayload(l.SessionID)}})
	}
	return grid
}

// chunk splits cells into rows of RowWidth, padding the last row with filler
// buttons. Each filler is a new value so callers can never share one.
func chunk(cells []Button) Grid {
	var rows Grid
	for len(cells) > 0 {
		n := RowWidth
		if len(cells) < n {
			n = len(cells)
		}
		row := make([]Button, 0, RowWidth)
		row = append(row, cells[:n]...)
		for len(row) < RowWidth {
			row = append(row, filler())
		}
		rows = append(rows, row)
		cells = cells[n:]
	}
	return rows
}

func filler() Button {
	return Button{Label: fillerLabel, Data: NoopPayload}
}
