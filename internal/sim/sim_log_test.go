package sim

import (
	"strings"
	"testing"
)

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.AddVerbose(1, "A0", "ally", "move", "position", "(0,0)", 0)
	if quiet.Len() != 0 {
		t.Fatalf("verbose entry recorded with verbose off")
	}
	loud := NewSimLog(true)
	loud.AddVerbose(1, "A0", "ally", "move", "position", "(0,0)", 0)
	if loud.Len() != 1 {
		t.Fatalf("verbose entry dropped with verbose on")
	}
}

func TestSimLog_FilterAndLastOf(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "A2", "ally", "play", "pass", "to (1,1)", 0)
	sl.Add(5, "--", "--", "play", "post", "post", 0)
	sl.Add(9, "A2", "ally", "play", "pass", "to (2,2)", 0)

	if n := sl.CountCategory("play", "pass"); n != 2 {
		t.Fatalf("pass count = %d, want 2", n)
	}
	last, ok := sl.LastOf("play", "pass")
	if !ok || last.Frame != 9 {
		t.Fatalf("LastOf = %+v, want frame 9", last)
	}
	if got := len(sl.FilterAgent("A2")); got != 2 {
		t.Fatalf("FilterAgent = %d entries, want 2", got)
	}
	if !sl.HasEntry("play", "", "(2,2)") || sl.HasEntry("state", "", "") {
		t.Fatalf("HasEntry mismatched")
	}
}

func TestSimLog_Since(t *testing.T) {
	sl := NewSimLog(false)
	for i := 0; i < 4; i++ {
		sl.Add(i, "--", "--", "play", "net", "", 0)
	}
	if got := len(sl.Since(1)); got != 3 {
		t.Fatalf("Since(1) = %d entries, want 3", got)
	}
	if sl.Since(4) != nil || sl.Since(10) != nil {
		t.Fatalf("Since past the end should be empty")
	}
}

func TestSimLog_FormatLine(t *testing.T) {
	e := SimLogEntry{Frame: 42, Agent: "A2", Category: "play", Key: "pass", Value: "to (10.0,4.0)"}
	got := e.String()
	if !strings.HasPrefix(got, "[F=0042] A2") || !strings.Contains(got, "to (10.0,4.0)") {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestSimLog_SummaryMentionsScore(t *testing.T) {
	ts := NewTestSim()
	s := ts.SimLog.Summary(ts.Match)
	if !strings.Contains(s, "Score: 0") || !strings.Contains(s, "PAUSED") {
		t.Fatalf("summary missing state:\n%s", s)
	}
}
