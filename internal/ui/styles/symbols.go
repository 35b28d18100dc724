package styles

// Symbols holds the glyphs printed in front of report lines
type Symbols struct {
	OK      string
	Warn    string
	Suggest string
}

// Default symbols
var defaultSymbols = Symbols{
	OK:      "✓",
	Warn:    "✗",
	Suggest: "→",
}

// Emoji symbols
var emojiSymbols = Symbols{
	OK:      "🆗",
	Warn:    "🚫",
	Suggest: "💡",
}

// useEmoji tracks whether emoji symbols are enabled
var useEmoji bool

// currentSymbols holds the active symbol set
var currentSymbols = defaultSymbols

// SetEmoji enables or disables emoji symbols
func SetEmoji(enabled bool) {
	useEmoji = enabled
	if enabled {
		currentSymbols = emojiSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// EmojiEnabled returns whether emoji symbols are enabled
func EmojiEnabled() bool {
	return useEmoji
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// DefaultSymbols returns the plain symbol set regardless of config
func DefaultSymbols() Symbols {
	return defaultSymbols
}
