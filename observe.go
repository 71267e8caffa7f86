package funpipe

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// Observer receives the printed form of each tapped intermediate value
// during a debug run.
type Observer func(value string)

const (
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// defaultObserver writes tapped values to stderr, colored when stderr
// is a terminal.
func defaultObserver(value string) {
	if isTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "%spipe%s %s\n", colorCyan, colorReset, value)
		return
	}
	fmt.Fprintf(os.Stderr, "pipe %s\n", value)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
