package walker

import "strings"

// Level is the position of a source folder in the export hierarchy.
type Level int

const (
	// Root is the archive root. Its children share its output folders.
	Root Level = iota
	// Section is the top folder of the export. Its children get their own
	// output folders directly under the content root.
	Section
	// Module is a prefixed folder directly below a Section.
	Module
	// Interior is any other folder.
	Interior
)

func (l Level) String() string {
	switch l {
	case Root:
		return "root"
	case Section:
		return "section"
	case Module:
		return "module"
	default:
		return "interior"
	}
}

// Child returns the level of a child whose output folder is named folder.
func (l Level) Child(folder, modulePrefix string) Level {
	switch l {
	case Root:
		return Section
	case Section:
		if modulePrefix != "" && strings.HasPrefix(folder, modulePrefix) {
			return Module
		}
		return Interior
	default:
		return Interior
	}
}
