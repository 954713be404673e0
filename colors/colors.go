package colors

// COLOR is an ANSI escape prefix. Every print helper resets after writing.
type COLOR string

const (
	RESET COLOR = "\033[0m"

	RED    COLOR = "\033[31m"
	GREEN  COLOR = "\033[32m"
	YELLOW COLOR = "\033[33m"
	BLUE   COLOR = "\033[34m"
	PURPLE COLOR = "\033[35m"
	CYAN   COLOR = "\033[36m"
	WHITE  COLOR = "\033[37m"
	GREY   COLOR = "\033[90m"

	BOLD_RED    COLOR = "\033[1;31m"
	BOLD_YELLOW COLOR = "\033[1;33m"
	BOLD_CYAN   COLOR = "\033[1;36m"

	ORANGE       COLOR = "\033[38;5;208m"
	LIGHT_ORANGE COLOR = "\033[38;5;215m"
)

// Escape sequences used by the clear() builtin: wipe the screen, home the cursor.
const (
	ClearScreen = "\033[2J"
	CursorHome  = "\033[H"
)

// enabled is flipped off by Disable for non-terminal output (tests, pipes).
var enabled = true

// Disable turns every COLOR into a no-op prefix.
func Disable() { enabled = false }

// Enable restores coloured output.
func Enable() { enabled = true }

func (c COLOR) prefix() string {
	if !enabled {
		return ""
	}
	return string(c)
}

func (c COLOR) suffix() string {
	if !enabled {
		return ""
	}
	return string(RESET)
}
