package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"wordduel/internal/alphabet"
	"wordduel/internal/keyboard"
	"wordduel/internal/models"
)

const (
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorLavender lipgloss.Color = "#b4befe"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

var cellStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorSurface1).
	Width(3).
	Align(lipgloss.Center)

var (
	revealedStyle = cellStyle.Foreground(colorGreen).Bold(true)
	hiddenStyle   = cellStyle.Foreground(colorOverlay0)
	usedHitStyle  = cellStyle.Foreground(colorGreen).Faint(true)
	usedMissStyle = cellStyle.Foreground(colorRed).Strikethrough(true)
	letterStyle   = cellStyle.Foreground(colorLavender)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	labelStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Render a stored session and its keyboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, backend, err := openBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			s, err := backend.Store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSession(s))
			return nil
		},
	}
}

// renderSession draws the session header followed by the keyboard the
// players currently see.
func renderSession(s *models.GameSession) string {
	second := "-"
	if s.SecondPlayer != nil {
		second = s.SecondPlayer.DisplayName()
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Session "+s.ID),
		field("status", string(s.Status())),
		field("word", s.Word),
		field("creator", s.FirstPlayer.DisplayName()),
		field("guesser", second),
		field("attempts", fmt.Sprintf("%d", s.AttemptsRemaining)),
		field("used", strings.Join(s.UsedLetters, " ")),
		field("version", fmt.Sprintf("%d", s.Version)),
	)

	grid := keyboard.Project(keyboard.Layout{
		Word:           s.Word,
		Revealed:       s.UsedLetters,
		Letters:        alphabet.For(alphabet.Script(s.Script)),
		SessionID:      s.ID,
		JoinAffordance: s.SecondPlayer == nil,
	})

	rows := []string{header, ""}
	for _, row := range grid {
		rows = append(rows, renderRow(s, row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderRow(s *models.GameSession, row []keyboard.Button) string {
	if len(row) == 1 {
		// separator and join rows
		return labelStyle.Render(row[0].Label)
	}

	cells := make([]string, 0, len(row))
	for _, b := range row {
		cells = append(cells, cellFor(s, b).Render(b.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func cellFor(s *models.GameSession, b keyboard.Button) lipgloss.Style {
	p := keyboard.ParsePayload(b.Data)
	switch {
	case p.Action != keyboard.ActionGuess && b.Label == keyboard.Placeholder:
		return hiddenStyle
	case p.Action != keyboard.ActionGuess:
		return revealedStyle
	case !s.HasUsed(p.Letter):
		return letterStyle
	case strings.Contains(s.Word, p.Letter):
		return usedHitStyle
	default:
		return usedMissStyle
	}
}

func field(name, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-9s", name)) + value
}
