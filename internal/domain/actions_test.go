package domain

import "testing"

func TestParseIntentKind(t *testing.T) {
	tests := []struct {
		input    string
		expected IntentKind
	}{
		{"MOVE", IntentMove},
		{"move", IntentMove},
		{"Pickup", IntentPickUp},
		{"open_inventory", IntentOpenInventory},
		{"CONFIRM", IntentConfirm},
		{"TOGGLE_FULLSCREEN", IntentToggleFullscreen},
		{"UNKNOWN_ACTION", IntentUnknown},
		{"", IntentUnknown},
	}

	for _, tt := range tests {
		result := ParseIntentKind(tt.input)
		if result != tt.expected {
			t.Errorf("ParseIntentKind(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestIntentKind_String(t *testing.T) {
	tests := []struct {
		kind     IntentKind
		expected string
	}{
		{IntentMove, "MOVE"},
		{IntentExit, "EXIT"},
		{IntentUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("IntentKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}
