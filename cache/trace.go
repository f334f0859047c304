package cache

import (
	"fmt"
	"strings"
	"time"
)

// recordTrace appends a debug trace line of the form
// "<day-of-year> <HH:MM>  <here ids> --- <elsewhere ids> / <score>", ids
// comma-joined in the same (-priority, end_time asc, insertion asc) order
// GetActiveMessages returns them in. Consecutive lines sharing the same
// ptime prefix collapse into one, so sub-minute tick resolution does not
// multiply lines for changes landing within the same displayed minute.
func (c *MessageCache) recordTrace(now int64, here, elsewhere []string, score int) {
	ptime := ptimeString(now)
	line := ptime + "  " + strings.Join(here, ",") + " --- " + strings.Join(elsewhere, ",") + " / " + fmt.Sprintf("%d", score)

	if len(c.trace) > 0 && strings.HasPrefix(c.trace[len(c.trace)-1], ptime+"  ") {
		c.trace[len(c.trace)-1] = line
		return
	}
	c.trace = append(c.trace, line)
}

func ptimeString(sec int64) string {
	t := time.Unix(sec, 0).UTC()
	return fmt.Sprintf("%03d %02d:%02d", t.YearDay(), t.Hour(), t.Minute())
}

// DebugTrace returns the accumulated re-evaluation trace, one line per
// distinct (ptime, here-set, elsewhere-set, score) change, oldest first.
// Test tooling only; no scoring or cache logic reads it.
func (c *MessageCache) DebugTrace() []string {
	out := make([]string, len(c.trace))
	copy(out, c.trace)
	return out
}
