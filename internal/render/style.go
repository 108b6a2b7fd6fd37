package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	successMark = "✓"
	failureMark = "✗"
)

var (
	colorGreen = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	colorRed   = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
)

// Success writes "✓ msg". The mark is colored only when w is a terminal.
func Success(w io.Writer, msg string) error {
	return marked(w, colorGreen, successMark, msg)
}

// Failure writes "✗ msg". The mark is colored only when w is a terminal.
func Failure(w io.Writer, msg string) error {
	return marked(w, colorRed, failureMark, msg)
}

func marked(w io.Writer, color lipgloss.AdaptiveColor, mark, msg string) error {
	style := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(color)
	_, err := io.WriteString(w, style.Render(mark)+" "+msg+"\n")
	return err
}
