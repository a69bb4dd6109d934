package output

import (
	"io"
	"os"
)

// ResolveColorMode determines whether styled output is used, given the
// --color flag ("never", "always", "auto") and the detected TTY state.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
