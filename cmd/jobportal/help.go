package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f97316")).
		Bold(true).
		Render("N E M E S I S   G R O U P")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Staffing, payroll and careers from your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"jobportal", "Open the portal (interactive TUI)"},
		{"jobportal open <path>", "Start on a page, e.g. /jobs or /admin"},
		{"jobportal status", "Show who is signed in"},
		{"jobportal logout", "Clear the saved session"},
		{"jobportal terms", "Terms of Service"},
		{"jobportal privacy", "Privacy Policy"},
		{"jobportal contact", "Contact page"},
		{"jobportal version", "Show version"},
		{"jobportal help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, tagline) //nolint:errcheck
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.cmd)), descStyle.Render(c.desc)) //nolint:errcheck
	}
	env := descStyle.Render("Env: JP_API_URL JP_SITE_URL JP_HOME JP_REDIS_ADDR JP_LOG_LEVEL JP_ROTATE_INTERVAL")
	fmt.Fprintf(w, "\n  %s\n\n", env) //nolint:errcheck
}
