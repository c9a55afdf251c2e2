package sim

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded match event.
type SimLogEntry struct {
	Frame    int
	Agent    string  // label e.g. "A0", "EK", or "--" for match events
	Team     string  // "ally", "enemy" or "--"
	Category string  // play, state, input, safety, move, keeper
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[F=0042] A2   play      pass             to (10.0,4.0)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-4s %-9s %-16s %s",
		e.Frame, e.Agent, e.Category, e.Key, e.Value)
}

// SimLog collects structured events from a match. It is unbounded and
// machine-readable; frontends tail it with Since for their commentary feed.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-frame position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(frame int, agent, team, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Frame:    frame,
		Agent:    agent,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(frame int, agent, team, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(frame, agent, team, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len is the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Since returns the entries recorded after the first n.
func (sl *SimLog) Since(n int) []SimLogEntry {
	if n < 0 {
		n = 0
	}
	if n >= len(sl.entries) {
		return nil
	}
	return sl.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAgent returns entries for a specific agent label.
func (sl *SimLog) FilterAgent(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Agent == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the match.
func (sl *SimLog) Summary(m *Match) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at F=%04d (t=%.2fs) ---\n", m.Frame, m.Now)
	fmt.Fprintf(&sb, "State: %s  Score: %d  Ball: %s\n", m.State, m.Score, m.Ball.Phase())
	for _, key := range []string{"pass", "shot", "goal", "save", "intercept", "reception", "out"} {
		if n := sl.CountCategory("play", key); n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", key, n)
		}
	}
	sb.WriteByte('\n')

	moving := 0
	for _, a := range m.Agents {
		if a.Moving() {
			moving++
		}
	}
	fmt.Fprintf(&sb, "Agents moving: %d/%d  heals: %d\n", moving, len(m.Agents), sl.CountCategory("safety", "heal"))
	return sb.String()
}
