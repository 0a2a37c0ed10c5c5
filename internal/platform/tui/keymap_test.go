package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", keyType(tea.KeyLeft), core.ActionLeft, false},
		{"a", keyRune('a'), core.ActionLeft, false},
		{"h", keyRune('h'), core.ActionLeft, false},
		{"right arrow", keyType(tea.KeyRight), core.ActionRight, false},
		{"d", keyRune('d'), core.ActionRight, false},
		{"down arrow", keyType(tea.KeyDown), core.ActionSoftDrop, false},
		{"j", keyRune('j'), core.ActionSoftDrop, false},
		{"up arrow", keyType(tea.KeyUp), core.ActionRotateCW, false},
		{"x", keyRune('x'), core.ActionRotateCW, false},
		{"z", keyRune('z'), core.ActionRotateCCW, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop, false},
		{"p", keyRune('p'), core.ActionPause, false},
		{"esc", keyType(tea.KeyEsc), core.ActionPause, false},
		{"r", keyRune('r'), core.ActionRestart, false},
		{"b", keyRune('b'), core.ActionBack, false},
		{"enter", keyType(tea.KeyEnter), core.ActionConfirm, false},
		{"q", keyRune('q'), core.ActionQuit, true},
		{"ctrl+c", keyType(tea.KeyCtrlC), core.ActionQuit, true},
		{"unbound", keyRune('?'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action {
				t.Errorf("action = %v, want %v", action, tc.action)
			}
			if quit != tc.quit {
				t.Errorf("quit = %v, want %v", quit, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(keyRune('a'), &frame) {
		t.Fatal("a must not quit")
	}
	km.MapKeyToFrame(keyRune('z'), &frame)
	km.MapKeyToFrame(keyRune('?'), &frame)

	if !frame.Has(core.ActionLeft) || !frame.Has(core.ActionRotateCCW) {
		t.Errorf("frame missing actions: %v", frame.Actions)
	}
	if frame.Has(core.ActionNone) {
		t.Error("unbound keys must not be recorded")
	}

	if !km.MapKeyToFrame(keyRune('q'), &frame) {
		t.Error("q must quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{keyType(tea.KeyUp), MenuActionUp},
		{keyRune('k'), MenuActionUp},
		{keyType(tea.KeyDown), MenuActionDown},
		{keyRune('j'), MenuActionDown},
		{keyType(tea.KeyEnter), MenuActionSelect},
		{keyType(tea.KeyEsc), MenuActionBack},
		{keyRune('b'), MenuActionBack},
		{keyType(tea.KeyTab), MenuActionScoreboard},
		{keyRune('q'), MenuActionQuit},
		{keyRune('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestCustomKeyMap(t *testing.T) {
	keys := DefaultGameKeyMap()
	keys.HardDrop.SetKeys("enter")
	keys.Confirm.SetEnabled(false)
	km := NewKeyMapperWith(keys)

	if action, _ := km.MapKey(keyType(tea.KeyEnter)); action != core.ActionHardDrop {
		t.Errorf("enter = %v, want HardDrop", action)
	}
	if action, _ := km.MapKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}); action != core.ActionNone {
		t.Errorf("space = %v, want None", action)
	}
}
