package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestConfirmationDialog_Keys(t *testing.T) {
	t.Run("tab toggles selection", func(t *testing.T) {
		d := NewConfirmationDialog("Confirm", "proceed?")
		if d.YesSelected {
			t.Fatal("expected selection to start on No")
		}

		d.Update(tea.KeyMsg{Type: tea.KeyTab})
		if !d.YesSelected {
			t.Error("expected tab to move selection to Yes")
		}
	})

	t.Run("y confirms directly", func(t *testing.T) {
		confirmed := false
		d := NewConfirmationDialog("Confirm", "proceed?")
		d.OnConfirm = func() tea.Cmd {
			confirmed = true
			return nil
		}

		d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
		if !confirmed {
			t.Error("expected y to invoke OnConfirm")
		}
	})

	t.Run("enter on No cancels", func(t *testing.T) {
		cancelled := false
		d := NewConfirmationDialog("Confirm", "proceed?")
		d.OnCancel = func() tea.Cmd {
			cancelled = true
			return nil
		}

		d.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if !cancelled {
			t.Error("expected enter on No to invoke OnCancel")
		}
	})
}

func TestMigrationItem_Description(t *testing.T) {
	applied := MigrationItem{Status: "applied", AppliedAt: "2024-01-01 12:00:00"}
	if !strings.Contains(applied.Description(), "Applied: 2024-01-01 12:00:00") {
		t.Errorf("unexpected description: %q", applied.Description())
	}

	// Failure records carry a timestamp too; the failure wins.
	failed := MigrationItem{Status: "failed", AppliedAt: "2024-01-01 12:00:00"}
	if !strings.Contains(failed.Description(), "Failed") {
		t.Errorf("unexpected description: %q", failed.Description())
	}

	pending := MigrationItem{Status: "pending"}
	if !strings.Contains(pending.Description(), "Not applied") {
		t.Errorf("unexpected description: %q", pending.Description())
	}
}

func TestMigrationItem_FilterValue(t *testing.T) {
	item := MigrationItem{Version: "20240101000000", Name: "create_hr_schema"}
	if item.FilterValue() != "20240101000000 create_hr_schema" {
		t.Errorf("unexpected filter value: %q", item.FilterValue())
	}
}

func TestLogView_CapsEntries(t *testing.T) {
	l := NewLogView(2)
	l.AddLog("one")
	l.AddLog("two")
	l.AddLog("three")

	if len(l.Logs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(l.Logs))
	}
	if l.Logs[0] != "two" || l.Logs[1] != "three" {
		t.Errorf("expected oldest entry dropped, got %v", l.Logs)
	}
}
