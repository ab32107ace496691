package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"Use_Item", ActionUseItem},
		{"STAIRS", ActionStairs},
		{"ATTACK", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		if result := ParseAction(tt.input); result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionPickup, "PICKUP"},
		{ActionUnequip, "UNEQUIP"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestParseEvent(t *testing.T) {
	if got := ParseEvent("level_up"); got != EventLevelUp {
		t.Errorf("ParseEvent(level_up) = %v", got)
	}
	if got := EventPlayerDied.String(); got != "PLAYER_DIED" {
		t.Errorf("EventPlayerDied.String() = %q", got)
	}
}
