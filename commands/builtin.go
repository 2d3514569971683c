package commands

import "fmt"

// Builtin identifies one of the commands implemented by the shell itself.
type Builtin int

const (
	BuiltinExit Builtin = iota + 1
	BuiltinEcho
	BuiltinType
)

// LookupBuiltin reports which builtin name refers to, if any.
func LookupBuiltin(name string) (Builtin, bool) {
	switch name {
	case "exit":
		return BuiltinExit, true
	case "echo":
		return BuiltinEcho, true
	case "type":
		return BuiltinType, true
	default:
		return 0, false
	}
}

// Builtins lists every builtin.
func Builtins() []Builtin {
	return []Builtin{BuiltinExit, BuiltinEcho, BuiltinType}
}

// String returns the name the builtin is invoked by.
func (b Builtin) String() string {
	switch b {
	case BuiltinExit:
		return "exit"
	case BuiltinEcho:
		return "echo"
	case BuiltinType:
		return "type"
	default:
		return fmt.Sprintf("Builtin(%d)", int(b))
	}
}

// Short returns a one line description of the builtin.
func (b Builtin) Short() string {
	switch b {
	case BuiltinExit:
		return "Exit the shell."
	case BuiltinEcho:
		return "Write arguments to the standard output."
	case BuiltinType:
		return "Display information about command type."
	default:
		return ""
	}
}
