// Package cliutil holds the presentation layer shared by the REPL and
// script-runner entry point: lipgloss styles and the small set of
// print helpers built on top of them, generalized from the teacher's
// pkg/cmd/root.go and pkg/cmd/version.go.
package cliutil

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	logoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	subtextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// Banner renders the REPL welcome banner's title line.
func Banner() string {
	return logoStyle.Render("Slisp") + " - a small Lisp-family language."
}

// PrintHeader writes a styled section header to w.
func PrintHeader(w io.Writer, title string) {
	fmt.Fprintln(w, headerStyle.Render(title))
}

// PrintInfo writes a styled "label: value" line to w.
func PrintInfo(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s: %s\n", subtextStyle.Render(label), value)
}

// PrintError writes a styled "Error: what" line to w, per spec.md §7's
// host flush-the-error-queue contract.
func PrintError(w io.Writer, what string) {
	fmt.Fprintln(w, errorStyle.Render("Error:"), what)
}

// Prompt returns the styled REPL prompt string: ">>> " for new input,
// "... " for the continuation of an incomplete form (spec.md §6).
func Prompt(continuation bool) string {
	if continuation {
		return promptStyle.Render("... ")
	}
	return promptStyle.Render(">>> ")
}

// Plain strips styling, for non-terminal output (piping stdout to a
// file should not carry ANSI prompts/colors).
func Plain(continuation bool) string {
	if continuation {
		return "... "
	}
	return ">>> "
}
