package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordduel/internal/alphabet"
)

const testSessionID = "6f1c2a9e-8d4b-4f5e-9a57-0c1d2e3f4a5b"

func TestProjectLayout(t *testing.T) {
	letters := alphabet.For(alphabet.Ukrainian)

	tests := []struct {
		name      string
		word      string
		join      bool
		wordRows  int
		totalRows int
	}{
		{name: "short word", word: "кіт", wordRows: 1, totalRows: 1 + 1 + 7},
		{name: "exact row", word: "слово", wordRows: 1, totalRows: 1 + 1 + 7},
		{name: "two rows", word: "шевченко", wordRows: 2, totalRows: 2 + 1 + 7},
		{name: "with join", word: "кіт", join: true, wordRows: 1, totalRows: 1 + 1 + 7 + 1},
		{name: "empty word", word: "", wordRows: 0, totalRows: 1 + 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := Project(Layout{Word: tt.word, Letters: letters, SessionID: testSessionID, JoinAffordance: tt.join})
			require.Len(t, grid, tt.totalRows)

			for i := 0; i < tt.wordRows; i++ {
				assert.Len(t, grid[i], RowWidth, "word row %d", i)
			}
			sep := grid[tt.wordRows]
			require.Len(t, sep, 1)
			assert.Equal(t, SeparatorLabel, sep[0].Label)

			alphaRows := grid[tt.wordRows+1 : tt.wordRows+1+7]
			cells := 0
			for _, row := range alphaRows {
				assert.Len(t, row, RowWidth)
				cells += len(row)
			}
			assert.Equal(t, 0, cells%RowWidth)

			if tt.join {
				last := grid[len(grid)-1]
				require.Len(t, last, 1)
				assert.Equal(t, JoinLabel, last[0].Label)
				assert.Equal(t, JoinPayload(testSessionID), last[0].Data)
			}
		})
	}
}

func TestProjectMasksUnrevealedLetters(t *testing.T) {
	grid := Project(Layout{Word: "кіт", Revealed: []string{"К", "т"}, Letters: alphabet.For(alphabet.Ukrainian), SessionID: testSessionID})

	labels := []string{}
	for _, b := range grid[0] {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"к", Placeholder, "т", " ", " "}, labels)
	for _, b := range grid[0] {
		assert.Equal(t, NoopPayload, b.Data)
	}
}

func TestProjectLetterPayloads(t *testing.T) {
	letters := alphabet.For(alphabet.English)
	grid := Project(Layout{Word: "go", Letters: letters, SessionID: testSessionID})

	var got []string
	for _, row := range grid[2:] {
		for _, b := range row {
			if b.Data == NoopPayload {
				continue
			}
			p := ParsePayload(b.Data)
			require.Equal(t, ActionGuess, p.Action)
			assert.Equal(t, testSessionID, p.SessionID)
			assert.Equal(t, b.Label, p.Letter)
			got = append(got, p.Letter)
		}
	}
	assert.Equal(t, letters, got)
}

func TestProjectFillerNotShared(t *testing.T) {
	a := Project(Layout{Word: "a", Letters: []string{"a"}})
	a[0][1].Label = "changed"

	b := Project(Layout{Word: "a", Letters: []string{"a"}})
	assert.Equal(t, " ", b[0][1].Label)
	assert.Equal(t, " ", a[0][2].Label)
}

func TestPayloadLimits(t *testing.T) {
	for _, l := range alphabet.For(alphabet.Ukrainian) {
		assert.LessOrEqual(t, len(GuessPayload(testSessionID, l)), 64)
	}
	assert.LessOrEqual(t, len(JoinPayload(testSessionID)), 64)
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Payload
	}{
		{name: "join", data: "j:abc", want: Payload{Action: ActionJoin, SessionID: "abc"}},
		{name: "guess", data: "g:abc:ї", want: Payload{Action: ActionGuess, SessionID: "abc", Letter: "ї"}},
		{name: "noop", data: NoopPayload, want: Payload{Action: ActionNone}},
		{name: "filler from old keyboards", data: " ", want: Payload{Action: ActionNone}},
		{name: "guess with word", data: "g:abc:ab", want: Payload{Action: ActionNone}},
		{name: "join without id", data: "j:", want: Payload{Action: ActionNone}},
		{name: "bare legacy letter", data: "а", want: Payload{Action: ActionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePayload(tt.data))
		})
	}
}
