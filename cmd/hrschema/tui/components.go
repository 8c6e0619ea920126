package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationDialog asks the operator to confirm a migration before any SQL
// runs. Selection starts on No.
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
	OnConfirm   func() tea.Cmd
	OnCancel    func() tea.Cmd
}

// NewConfirmationDialog creates a dialog with the given title and message.
func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{Title: title, Message: message}
}

// Update handles key presses while the dialog is focused.
func (d *ConfirmationDialog) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "left", "h", "right", "l", "tab":
		d.YesSelected = !d.YesSelected
	case "y":
		d.YesSelected = true
		return d.confirm()
	case "n":
		d.YesSelected = false
		return d.confirm()
	case "enter":
		return d.confirm()
	}
	return nil
}

func (d *ConfirmationDialog) confirm() tea.Cmd {
	if d.YesSelected {
		if d.OnConfirm != nil {
			return d.OnConfirm()
		}
		return nil
	}
	if d.OnCancel != nil {
		return d.OnCancel()
	}
	return nil
}

// View renders the dialog in a bordered box.
func (d ConfirmationDialog) View() string {
	yes := inactiveButtonStyle.Render("Yes")
	no := inactiveButtonStyle.Render("No")
	if d.YesSelected {
		yes = activeButtonStyle.Render("Yes")
	} else {
		no = activeButtonStyle.Render("No")
	}

	help := FormatKey("y/n", "choose") + " • " +
		FormatKey("enter", "confirm") + " • " +
		FormatKey("esc", "back")

	body := strings.Join([]string{
		titleStyle.Render(d.Title),
		d.Message,
		lipgloss.JoinHorizontal(lipgloss.Left, yes, "  ", no),
		helpStyle.Render(help),
	}, "\n\n")

	return boxStyle.Render(body)
}

// MigrationItem is one migration in the selection list.
type MigrationItem struct {
	Version   string
	Name      string
	Status    string
	AppliedAt string
}

func (i MigrationItem) FilterValue() string { return i.Version + " " + i.Name }

func (i MigrationItem) Title() string {
	return fmt.Sprintf("%s %s - %s", FormatStatus(i.Status), i.Version, i.Name)
}

func (i MigrationItem) Description() string {
	switch {
	case i.Status == "failed":
		return dangerStyle.Render("Failed, run migrate status for the error")
	case i.AppliedAt != "":
		return mutedStyle.Render("Applied: " + i.AppliedAt)
	default:
		return mutedStyle.Render("Not applied")
	}
}

// MigrationItemDelegate renders MigrationItems on two lines with a cursor on
// the selected entry.
type MigrationItemDelegate struct{}

func (d MigrationItemDelegate) Height() int                         { return 2 }
func (d MigrationItemDelegate) Spacing() int                        { return 1 }
func (d MigrationItemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d MigrationItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MigrationItem)
	if !ok {
		return
	}

	lines := mi.Title() + "\n  " + mi.Description()
	if index == m.Index() {
		_, _ = fmt.Fprint(w, selectedItemStyle.Render("▸ "+lines))
		return
	}
	_, _ = fmt.Fprint(w, unselectedItemStyle.Render("  "+lines))
}

// ProgressView tracks how far an executing batch has advanced.
type ProgressView struct {
	Current int
	Total   int
	Message string
}

// View renders the progress box.
func (p ProgressView) View() string {
	parts := []string{titleStyle.Render("Migration Progress")}
	if p.Message != "" {
		parts = append(parts, infoStyle.Render(p.Message))
	}
	parts = append(parts, FormatProgressBar(p.Current, p.Total, 40))

	return boxStyle.Render(strings.Join(parts, "\n\n"))
}

// LogView keeps the most recent execution messages, dropping the oldest once
// MaxLen is exceeded.
type LogView struct {
	Logs   []string
	MaxLen int
}

// NewLogView creates a log view holding at most maxLen entries.
func NewLogView(maxLen int) LogView {
	return LogView{MaxLen: maxLen}
}

// AddLog appends a log entry.
func (l *LogView) AddLog(entry string) {
	l.Logs = append(l.Logs, entry)
	if len(l.Logs) > l.MaxLen {
		l.Logs = l.Logs[len(l.Logs)-l.MaxLen:]
	}
}

// View renders the log box.
func (l LogView) View() string {
	if len(l.Logs) == 0 {
		return mutedStyle.Render("No output yet")
	}

	var b strings.Builder
	for _, entry := range l.Logs {
		b.WriteString(mutedStyle.Render("• "))
		b.WriteString(entry)
		b.WriteString("\n")
	}

	return boxStyle.Render(b.String())
}
