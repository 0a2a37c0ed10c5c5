package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionRotateCW)
	if !f.Has(ActionLeft) || !f.Has(ActionRotateCW) {
		t.Error("frame should contain the set actions")
	}
	if f.Has(ActionHardDrop) {
		t.Error("frame should not contain unset actions")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
	if !clone.Has(ActionLeft) {
		t.Error("clone should be independent of the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on a zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionLeft, "Left"},
		{ActionRotateCCW, "RotateCCW"},
		{ActionHardDrop, "HardDrop"},
		{ActionPause, "Pause"},
		{Action(100), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestPieceColor(t *testing.T) {
	tests := []struct {
		cell     int
		expected Color
	}{
		{0, ColorDefault},
		{1, ColorMagenta},
		{5, ColorCyan},
		{7, ColorRed},
		{8, ColorDefault},
		{-1, ColorDefault},
	}

	for _, tc := range tests {
		if got := PieceColor(tc.cell); got != tc.expected {
			t.Errorf("PieceColor(%d) = %s, expected %s", tc.cell, got, tc.expected)
		}
	}
}
