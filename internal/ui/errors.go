package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"libtest/internal/domain"
	"libtest/internal/storage"
)

// maxOutputLines bounds how much captured output the details pane shows per stream
const maxOutputLines = 200

// Viewer displays the failures of a run
type Viewer interface {
	View(report *domain.RunReport) error
}

// ErrorViewer displays failed libraries in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage) *ErrorViewer {
	return &ErrorViewer{storage: st}
}

// View displays the non-passed libraries of a report in an interactive TUI
func (ev *ErrorViewer) View(report *domain.RunReport) error {
	// Indices into report.Details of the libraries that did not pass
	var failed []int
	for i, d := range report.Details {
		if !d.Outcome.Passed() {
			failed = append(failed, i)
		}
	}
	if len(failed) == 0 {
		color.Green("✓ No failed libraries in the last run!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	for n, i := range failed {
		list.AddItem(listItemText(report.Details[i], n+1), "", 0, nil)
	}

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for _, i := range failed {
			if !report.Details[i].Resolved {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" Failed libraries (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ", len(failed), unresolved))
	}

	updateDetails := func() {
		n := list.GetCurrentItem()
		if n < 0 || n >= len(failed) {
			return
		}
		result := report.Details[failed[n]]
		statsView.SetText(formatFailureStats(result, report.Meta))
		detailsView.SetText(formatFailureDetails(result))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				n := list.GetCurrentItem()
				if n >= 0 && n < len(failed) {
					d := &report.Details[failed[n]]
					d.Resolved = !d.Resolved
					list.SetItemText(n, listItemText(*d, n+1), "")
					updateHeader()
					// Resolved marks are a convenience; a failed save must not break the viewer
					_ = ev.storage.Save(report)
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func listItemText(result domain.LibraryResult, number int) string {
	if result.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", number, result.Name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", number, result.Name)
}

// stageLabel names the pipeline stage an outcome stopped at
func stageLabel(outcome domain.Outcome) string {
	switch outcome {
	case domain.OutcomeSkipped:
		return "missing files"
	case domain.OutcomeCompileFailed:
		return "compilation"
	case domain.OutcomeCheckFailed:
		return "valgrind"
	case domain.OutcomeInterrupted:
		return "interrupted"
	default:
		return string(outcome)
	}
}

// formatFailureStats formats the header line for a failed library
func formatFailureStats(result domain.LibraryResult, meta domain.RunMeta) string {
	dir := meta.TargetDir
	if dir == "" {
		dir = "."
	}
	return fmt.Sprintf("[cyan]library:[white] [yellow]%s[white]  [cyan]stage:[white] [red]%s[white]  [cyan]dir:[white] %s\n",
		tview.Escape(result.Name), stageLabel(result.Outcome), tview.Escape(dir))
}

// formatFailureDetails formats a failed library for display using tview color tags
func formatFailureDetails(result domain.LibraryResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s: %s[white]\n\n", tview.Escape(result.Name), stageLabel(result.Outcome))

	if len(result.Missing) > 0 {
		fmt.Fprintf(&b, "[yellow]Missing files:[white]\n")
		for _, file := range result.Missing {
			fmt.Fprintf(&b, "  %s\n", tview.Escape(file))
		}
		b.WriteString("\n")
	}

	if result.Command != "" {
		fmt.Fprintf(&b, "[yellow]Command:[white]\n%s\n\n", tview.Escape(result.Command))
	}

	writeStream(&b, "Standard error", result.Stderr)
	writeStream(&b, "Standard output", result.Stdout)

	return b.String()
}

func writeStream(b *strings.Builder, title, output string) {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return
	}
	fmt.Fprintf(b, "[yellow]%s:[white]\n", title)
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if i == maxOutputLines {
			fmt.Fprintf(b, "[gray]... and %d more lines[white]\n", len(lines)-maxOutputLines)
			break
		}
		fmt.Fprintf(b, "%s\n", tview.Escape(line))
	}
	b.WriteString("\n")
}
