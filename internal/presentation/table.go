package presentation

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"cert-inventory/internal/models"

	"golang.org/x/term"
)

const (
	ansiReset   = "\x1b[0m"
	ansiDarkRed = "\x1b[38;5;88m"
	ansiRed     = "\x1b[91m"
	ansiGreen   = "\x1b[32m"
)

var tierColors = map[models.ExpirationStatus]string{
	models.StatusExpired:  ansiDarkRed,
	models.StatusExpiring: ansiRed,
	models.StatusActive:   ansiGreen,
}

var tableHeader = []string{"Description", "Issuer", "Status", "Days to expire"}

// ShouldColor reports whether f is an interactive terminal and NO_COLOR is unset.
func ShouldColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// RenderTable writes rows as an aligned table. With color set, each row is tinted by tier.
func RenderTable(w io.Writer, rows []Row, color bool) error {
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, tableHeader)
	for _, row := range rows {
		cells = append(cells, []string{row.Subject, row.Issuer, row.Status, row.DaysLabel})
	}

	widths := make([]int, len(tableHeader))
	for _, line := range cells {
		for i, cell := range line {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i, line := range cells {
		text := formatLine(line, widths)

		if color && i > 0 {
			text = tierColors[rows[i-1].Tier] + text + ansiReset
		}

		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}

		if i == 0 {
			if _, err := fmt.Fprintln(w, separator(widths)); err != nil {
				return err
			}
		}
	}

	return nil
}

func formatLine(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cell)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	return b.String()
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "  ")
}
