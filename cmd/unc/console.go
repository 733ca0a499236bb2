package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"uncreator/internal/dispatch"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// maxListedFailures caps how many failed records are echoed to the console.
const maxListedFailures = 10

// reportedError marks an error whose message was already shown on the console.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// reportError prints err unless the command already reported it.
func reportError(w io.Writer, err error) {
	var r *reportedError
	if errors.As(err, &r) {
		return
	}
	fmt.Fprintln(w, errorStyle.Render("[-]"), err)
}

func printLaunched(w io.Writer, launched int) {
	fmt.Fprintf(w, "%s %d threads started\n", infoStyle.Render("[*]"), launched)
}

// printSummary reports a joined run. finished is false when the run was
// aborted by a write error or interrupt.
func printSummary(w io.Writer, sum *dispatch.Summary, outputPath string, lines, bytes int64, finished bool) {
	if sum.Failed > 0 {
		fmt.Fprintf(w, "%s %d of %d records failed\n", errorStyle.Render("[-]"), sum.Failed, sum.Launched)
		for i, f := range sum.Failures {
			if i == maxListedFailures {
				fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("    ... %d more", sum.Failed-maxListedFailures)))
				break
			}
			fmt.Fprintln(w, mutedStyle.Render("    "+f.String()))
		}
	}
	if sum.Cancelled > 0 {
		fmt.Fprintf(w, "%s %d records not written\n", errorStyle.Render("[-]"), sum.Cancelled)
	}

	switch {
	case finished && sum.Complete():
		fmt.Fprintf(w, "%s List creation finished: %s\n", okStyle.Render("[+]"), outputPath)
	case finished:
		fmt.Fprintf(w, "%s List creation finished: %s\n", infoStyle.Render("[*]"), outputPath)
	default:
		fmt.Fprintf(w, "%s List creation aborted: %s\n", errorStyle.Render("[-]"), outputPath)
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("    %d succeeded, %d failed, %s usernames (%s)",
		sum.Succeeded, sum.Failed, humanize.Comma(lines), humanize.Bytes(uint64(bytes)))))
}
