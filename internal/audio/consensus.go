package audio

import "strconv"

// Conflict sentinels.
const (
	// VariableBitrate marks disagreeing MP3 frame bitrates.
	VariableBitrate = "VBR"

	// Unknown marks any other disagreement: mixed formats, mixed genres or
	// unreadable tags.
	Unknown = "?"
)

// Consensus folds a sequence of observed values into a single one.
//
// The zero value holds no data. Observing equal values keeps the value;
// the first unequal value turns the consensus into a conflict, which is
// sticky: later observations never bring back a concrete value.
type Consensus struct {
	value    string
	conflict bool
}

// Value returns the agreed value, the conflict sentinel, or "" when nothing
// has been observed.
func (c Consensus) Value() string {
	return c.value
}

// Observe folds v into the consensus. On a mismatch the consensus becomes
// sentinel. It returns false when the consensus is in conflict after the
// observation, which tells the caller to stop scanning.
func (c *Consensus) Observe(v, sentinel string) bool {
	switch {
	case c.conflict:
		return false
	case c.value == "":
		c.value = v
		return true
	case c.value == v:
		return true
	default:
		c.value = sentinel
		c.conflict = true
		return false
	}
}

// Fail turns the consensus into a conflict regardless of its value.
func (c *Consensus) Fail(sentinel string) {
	if c.conflict {
		return
	}
	c.value = sentinel
	c.conflict = true
}

// ObserveBitrate folds a bitrate token. Two different numeric MP3 bitrates
// give VariableBitrate; any other mismatch, such as "320" against "FLAC",
// gives Unknown.
func (c *Consensus) ObserveBitrate(token string) bool {
	sentinel := Unknown
	if isKbps(c.value) && isKbps(token) {
		sentinel = VariableBitrate
	}
	return c.Observe(token, sentinel)
}

// merge folds the result of another fold into c. A conflicted result
// carries its own sentinel and an empty one contributes nothing; a
// concrete value is observed with observe.
func (c *Consensus) merge(other Consensus, observe func(*Consensus, string) bool) {
	switch {
	case other.conflict:
		c.Fail(other.value)
	case other.value == "":
	default:
		observe(c, other.value)
	}
}

func isKbps(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}
