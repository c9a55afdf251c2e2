package game

import (
	"fmt"
	"testing"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

func TestFeed_RingKeepsNewest(t *testing.T) {
	f := NewFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(FeedEntry{Frame: i, Message: fmt.Sprint(i)})
	}
	got := f.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("len = %d, want %d", len(got), feedMaxEntries)
	}
	if got[0].Frame != 5 || got[len(got)-1].Frame != feedMaxEntries+4 {
		t.Fatalf("window = %d..%d", got[0].Frame, got[len(got)-1].Frame)
	}
}

func TestFeed_TailSkipsMovesAndResumes(t *testing.T) {
	log := sim.NewSimLog(true)
	log.Add(1, "A0", "ally", "play", "pass", "to A1", 0)
	log.AddVerbose(1, "A1", "ally", "move", "position", "(0,0)", 0)
	f := NewFeed()

	if n := f.Tail(log); n != 1 {
		t.Fatalf("first tail added %d, want 1", n)
	}
	if n := f.Tail(log); n != 0 {
		t.Fatalf("second tail re-read %d entries", n)
	}

	log.Add(9, "--", "--", "play", "goal", "score 1", 1)
	if n := f.Tail(log); n != 1 {
		t.Fatalf("third tail added %d, want 1", n)
	}
	got := f.Recent()
	if got[1].Message != "goal score 1" || got[1].Frame != 9 {
		t.Fatalf("entry = %+v", got[1])
	}
}

func TestFeed_TailFollowsLiveMatch(t *testing.T) {
	m := sim.NewMatch(5)
	f := NewFeed()
	f.Tail(m.Log)
	before := len(f.Recent())

	m.Reset()
	f.Tail(m.Log)
	if len(f.Recent()) != before+1 {
		t.Fatalf("reset should add one feed line, have %d -> %d", before, len(f.Recent()))
	}
	if last := f.Recent()[len(f.Recent())-1]; last.Category != "state" {
		t.Fatalf("last category = %q, want state", last.Category)
	}
}
