package styles

import "testing"

func TestSetEmoji(t *testing.T) {
	SetEmoji(false)
	if EmojiEnabled() {
		t.Error("expected emoji to be disabled")
	}
	if got := CurrentSymbols().OK; got != "✓" {
		t.Errorf("expected default ok symbol, got %q", got)
	}

	SetEmoji(true)
	if !EmojiEnabled() {
		t.Error("expected emoji to be enabled")
	}
	if got := CurrentSymbols().Suggest; got != "💡" {
		t.Errorf("expected emoji suggest symbol, got %q", got)
	}

	// Reset
	SetEmoji(false)
}

func TestSymbolSets(t *testing.T) {
	tests := []struct {
		name string
		set  Symbols
		want [3]string
	}{
		{"default", defaultSymbols, [3]string{"✓", "✗", "→"}},
		{"emoji", emojiSymbols, [3]string{"🆗", "🚫", "💡"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := [3]string{tt.set.OK, tt.set.Warn, tt.set.Suggest}
			if got != tt.want {
				t.Errorf("symbols = %q, want %q", got, tt.want)
			}
			if tt.set.OK == tt.set.Warn || tt.set.Warn == tt.set.Suggest || tt.set.OK == tt.set.Suggest {
				t.Errorf("symbols must be distinct: %q", got)
			}
		})
	}
}

func TestDefaultSymbols_IgnoresEmoji(t *testing.T) {
	SetEmoji(true)
	defer SetEmoji(false)

	if got := DefaultSymbols().Warn; got != "✗" {
		t.Errorf("DefaultSymbols().Warn = %q, want ✗", got)
	}
}
