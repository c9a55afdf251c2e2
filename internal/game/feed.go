package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 11
	feedHighlight  = 3 // newest entries drawn on a lit row
)

// FeedEntry is one line of match commentary.
type FeedEntry struct {
	Frame    int
	Label    string // "A0", "EK", "--"
	Team     string
	Category string
	Message  string
}

// Feed is a ring buffer of commentary lines tailed from a SimLog.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
	cursor  int // SimLog entries already consumed
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (f *Feed) Add(e FeedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *Feed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+feedMaxEntries)%feedMaxEntries]
	}
	return out
}

// Tail pulls log entries recorded since the last call. Per-frame position
// entries are skipped. It returns the number of lines added.
func (f *Feed) Tail(log *sim.SimLog) int {
	if log == nil {
		return 0
	}
	if log.Len() < f.cursor {
		f.cursor = 0
	}
	added := 0
	for _, e := range log.Since(f.cursor) {
		f.cursor++
		if e.Category == "move" {
			continue
		}
		f.Add(FeedEntry{
			Frame:    e.Frame,
			Label:    e.Agent,
			Team:     e.Team,
			Category: e.Category,
			Message:  feedMessage(e),
		})
		added++
	}
	return added
}

func feedMessage(e sim.SimLogEntry) string {
	if e.Value == "" || e.Value == e.Key {
		return e.Key
	}
	return e.Key + " " + e.Value
}

func feedDotColor(team string) color.RGBA {
	switch team {
	case sim.TeamAlly.String():
		return color.RGBA{R: 70, G: 130, B: 230, A: 255}
	case sim.TeamEnemy.String():
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	}
	return color.RGBA{R: 150, G: 150, B: 150, A: 255}
}

// Draw renders the feed panel on the right of the screen, newest at the
// bottom.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, px, 0, feedPanelWidth, 16, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "MATCH FEED", panelX+8, 2)
	vector.StrokeLine(screen, px, 16, px+feedPanelWidth, 16, 1.0, color.RGBA{R: 50, G: 70, B: 100, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 38, B: 52, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+3), 3, 5, feedDotColor(e.Team), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d [%s] %s", e.Frame, e.Label, e.Message), panelX+12, y)
		y += feedLineHeight
	}
}
