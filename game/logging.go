package game

import (
	"fmt"
	"io"
	"time"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logFieldState logs a one-line summary of the visuals.
func (g *Game) logFieldState() {
	counts := g.icons.Counts()
	Logf("=== Tick %d (%s) ===", g.tick, g.elapsed().Round(time.Second))
	Logf("Field: %d particles, %d links | Icons: %d shields, %d locks, %d codes, %d emblems | Rain: %d columns",
		g.field.Count(), len(g.field.Connections()),
		counts.Shields, counts.Locks, counts.Codes, counts.Emblems,
		g.rain.Columns())
	if g.typing != nil {
		Logf("Typing: %q (phrase %d, cycles %d)", g.typing.Text(), g.typing.Phrase(), g.typing.Cycles())
	}
}
