package session

import "strings"

// Command is one of the discrete key-driven transitions of a session.
type Command int

const (
	CommandNone Command = iota
	CommandIncreaseRadius
	CommandDecreaseRadius
	CommandIncreaseBlur
	CommandDecreaseBlur
	CommandUndo
	CommandSaveAndQuit
	CommandDiscard
)

// KeyEscape is the raw code of the Esc key.
const KeyEscape = 27

var commandNames = map[Command]string{
	CommandNone:           "none",
	CommandIncreaseRadius: "increase_radius",
	CommandDecreaseRadius: "decrease_radius",
	CommandIncreaseBlur:   "increase_blur",
	CommandDecreaseBlur:   "decrease_blur",
	CommandUndo:           "undo",
	CommandSaveAndQuit:    "save_and_quit",
	CommandDiscard:        "discard",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// CommandForKey maps a raw key code to its command.
//
// Key bindings:
//
//	+ or =   increase radius
//	-        decrease radius
//	]        increase blur
//	[        decrease blur
//	u        undo
//	q        save and quit
//	Esc (27) quit without saving
//
// Any other key returns (CommandNone, false).
func CommandForKey(key rune) (Command, bool) {
	switch key {
	case '+', '=':
		return CommandIncreaseRadius, true
	case '-':
		return CommandDecreaseRadius, true
	case ']':
		return CommandIncreaseBlur, true
	case '[':
		return CommandDecreaseBlur, true
	case 'u':
		return CommandUndo, true
	case 'q':
		return CommandSaveAndQuit, true
	case KeyEscape:
		return CommandDiscard, true
	}
	return CommandNone, false
}

// ParseKey maps a key name sent by a client to a command. A single character
// is looked up with CommandForKey; "esc" and "escape" (any case) mean Esc.
func ParseKey(name string) (Command, bool) {
	switch strings.ToLower(name) {
	case "esc", "escape":
		return CommandDiscard, true
	}
	r := []rune(name)
	if len(r) != 1 {
		return CommandNone, false
	}
	return CommandForKey(r[0])
}
