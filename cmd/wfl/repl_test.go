package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgomes/wfl/wfl"
)

func enter(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func lastOutput(m replModel) historyEntry {
	if len(m.history) == 0 {
		return historyEntry{}
	}
	return m.history[len(m.history)-1]
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := enter(t, newREPLModel(newTestSession(t)), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := enter(t, newREPLModel(newTestSession(t)), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestEvaluateRecordsResultAndHistory(t *testing.T) {
	rm, _ := enter(t, newREPLModel(newTestSession(t)), "me.loc")

	entry := lastOutput(rm)
	if entry.isErr || entry.output != "loc(2,2)" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if len(rm.cmdHistory) != 1 || rm.cmdHistory[0] != "me.loc" {
		t.Fatalf("query not recorded: %v", rm.cmdHistory)
	}
	last, err := rm.session.locals.Get("_")
	if err != nil || last.TypeTag() != wfl.TypeLocation {
		t.Fatalf("_ should hold the last result, got %v %v", last, err)
	}
}

func TestEvaluateAssignmentStoresLocal(t *testing.T) {
	m := newREPLModel(newTestSession(t))

	output, isErr := m.evaluate("gold = teams.0.gold")
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	gold, err := m.session.locals.Get("gold")
	if err != nil {
		t.Fatalf("expected gold to be stored in locals")
	}
	if gold.Kind() != wfl.KindInt || gold.Int() != 100 {
		t.Fatalf("unexpected gold value: %#v", gold)
	}
}

func TestEvaluateErrorShowsStatus(t *testing.T) {
	m := newREPLModel(newTestSession(t))
	output, isErr := m.evaluate("me.wings")
	if !isErr || !strings.HasPrefix(output, "attribute_not_found:") {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestInputsCommandDescribesCallable(t *testing.T) {
	rm, _ := enter(t, newREPLModel(newTestSession(t)), ":inputs me.attacks.0")
	entry := lastOutput(rm)
	if entry.isErr || !strings.HasPrefix(entry.output, "attack\n") {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if !strings.Contains(entry.output, "specials") {
		t.Fatalf("attack attributes missing: %q", entry.output)
	}
}

func TestAutocompleteSingleMatch(t *testing.T) {
	m := newREPLModel(newTestSession(t))
	m.textInput.SetValue("me.max_h")
	m = m.handleAutocomplete()
	if got := m.textInput.Value(); got != "me.max_hitpoints" {
		t.Fatalf("completed to %q", got)
	}

	m.textInput.SetValue("un")
	m = m.handleAutocomplete()
	entry := lastOutput(m)
	if entry.output != "Completions: units, unit_types" {
		t.Fatalf("unexpected completions: %#v", entry)
	}
}

func TestResetDropsLocals(t *testing.T) {
	rm, _ := enter(t, newREPLModel(newTestSession(t)), "x = 1")
	rm, _ = enter(t, rm, ":reset")
	if _, err := rm.session.locals.Get("x"); !errors.Is(err, wfl.ErrAttributeNotFound) {
		t.Fatalf("locals not reset: %v", err)
	}
}

func TestViewRendersHistory(t *testing.T) {
	m := newREPLModel(newTestSession(t))
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	rm := model.(replModel)
	rm, _ = enter(t, rm, "config.turns")
	view := rm.View()
	if !strings.Contains(view, "Crossroads Skirmish") || !strings.Contains(view, "→ 12") {
		t.Fatalf("view missing content:\n%s", view)
	}
}

func TestHistoryNavigation(t *testing.T) {
	rm, _ := enter(t, newREPLModel(newTestSession(t)), "me.x")
	rm, _ = enter(t, rm, "me.y")

	up := func(m replModel) replModel {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		return model.(replModel)
	}
	down := func(m replModel) replModel {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		return model.(replModel)
	}

	rm = up(rm)
	if rm.textInput.Value() != "me.y" {
		t.Fatalf("first up = %q", rm.textInput.Value())
	}
	rm = up(up(rm))
	if rm.textInput.Value() != "me.x" {
		t.Fatalf("up past the oldest = %q", rm.textInput.Value())
	}
	rm = down(rm)
	if rm.textInput.Value() != "me.y" {
		t.Fatalf("down = %q", rm.textInput.Value())
	}
	rm = down(rm)
	if rm.textInput.Value() != "" || rm.historyIdx != -1 {
		t.Fatalf("down past the newest should clear, got %q", rm.textInput.Value())
	}
}
