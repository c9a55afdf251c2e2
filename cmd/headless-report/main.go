package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Garsondee/Curve-Pass/internal/logger"
	"github.com/Garsondee/Curve-Pass/internal/sim"
)

// outcomeKeys are the play keys that end a round, in report order.
var outcomeKeys = []string{"goal", "save", "intercept", "out"}

// playKeys are the play keys counted per run, in report order.
var playKeys = []string{"pass", "shot", "reception", "post", "crossbar", "net", "goal", "save", "intercept", "out"}

type runStats struct {
	runIndex int
	runID    string
	seed     int64
	frames   int

	firstShotFrame int
	firstGoalFrame int

	counts   map[string]int
	rounds   int
	rejected int
	score    int
	// outcomes is the terminal play key of each finished round, in order.
	outcomes []string
	scorers  map[string]int

	lastGoal string
	healed   bool
	log      *sim.SimLog
}

// traceOptions selects the per-run log lines printed after a run.
type traceOptions struct {
	dump  bool
	agent string
}

func main() {
	var runs int
	var frames int
	var seedBase int64
	var seedStep int64
	var curve float64
	var logLevel string
	var trace traceOptions

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&frames, "frames", 3600, "frames per match (60 per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&curve, "curve-chance", -1, "autopilot curl probability (negative keeps the default)")
	flag.StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	flag.BoolVar(&trace.dump, "dump", false, "print every match log line of each run")
	flag.StringVar(&trace.agent, "agent", "", "print the match log lines of one agent label, e.g. A2")
	flag.Parse()

	l := logger.New("report", logLevel)
	if runs <= 0 {
		l.Error("-runs must be > 0")
		os.Exit(2)
	}
	if frames <= 0 {
		l.Error("-frames must be > 0")
		os.Exit(2)
	}
	if curve > 1 {
		l.Error("-curve-chance must be at most 1", "curve_chance", curve)
		os.Exit(2)
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d frames=%d seed_base=%d seed_step=%d\n\n", runs, frames, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAutopilotMatch(i+1, seed, frames, curve)
		l.Debug("run finished", "run", stats.runID, "seed", seed, "rounds", stats.rounds, "score", stats.score)
		all = append(all, stats)
		printRun(stats)
		fmt.Print(runTrace(stats.log, trace))
	}

	printAggregate(all)
}

// runAutopilotMatch plays one seeded match with the autopilot on the user
// side and collects its statistics.
func runAutopilotMatch(runIndex int, seed int64, frames int, curve float64) runStats {
	ts := sim.NewTestSim(sim.WithSeed(seed))
	ap := sim.NewAutopilot(seed + 1)
	if curve >= 0 {
		ap.CurveChance = curve
	}
	for i := 0; i < frames; i++ {
		ts.Match.Step(sim.FrameDT)
		ap.Tick(ts.Match, sim.FrameDT)
	}

	rs := collectStats(ts.SimLog.Entries())
	rs.runIndex = runIndex
	rs.runID = uuid.NewString()
	rs.seed = seed
	rs.frames = frames
	rs.score = ts.Match.Score
	rs.healed = ts.SimLog.HasEntry("safety", "heal", "")
	if e, ok := ts.SimLog.LastOf("play", "goal"); ok {
		rs.lastGoal = e.String()
	}
	rs.log = ts.SimLog
	return rs
}

// collectStats derives a run's counters from its log.
func collectStats(entries []sim.SimLogEntry) runStats {
	rs := runStats{
		counts:         map[string]int{},
		scorers:        map[string]int{},
		firstShotFrame: firstFrame(entries, "play", "shot"),
		firstGoalFrame: firstFrame(entries, "play", "goal"),
	}
	lastShooter := ""
	for _, e := range entries {
		switch e.Category {
		case "play":
			rs.counts[e.Key]++
			if e.Key == "shot" {
				lastShooter = e.Agent
			}
			if isOutcome(e.Key) {
				rs.outcomes = append(rs.outcomes, e.Key)
			}
			if e.Key == "goal" && lastShooter != "" {
				rs.scorers[lastShooter]++
			}
		case "state":
			if e.Key == "reset" {
				rs.rounds++
			}
		case "input":
			if e.Key == "rejected" {
				rs.rejected++
			}
		}
	}
	return rs
}

// runTrace renders the requested log lines of one run; empty when neither
// option is set.
func runTrace(sl *sim.SimLog, opts traceOptions) string {
	if sl == nil {
		return ""
	}
	if opts.dump {
		return sl.Format() + "\n"
	}
	if opts.agent == "" {
		return ""
	}
	entries := sl.FilterAgent(opts.agent)
	if len(entries) == 0 {
		return fmt.Sprintf("no log lines for %s\n\n", opts.agent)
	}
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func isOutcome(key string) bool {
	for _, k := range outcomeKeys {
		if k == key {
			return true
		}
	}
	return false
}

func firstFrame(entries []sim.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Frame
		}
	}
	return -1
}

// conversion is goals per shot, or -1 when nothing was shot.
func conversion(goals, shots int) float64 {
	if shots <= 0 {
		return -1
	}
	return float64(goals) / float64(shots)
}

// longestDrought is the longest run of consecutive rounds without a goal.
func longestDrought(outcomes []string) int {
	best, cur := 0, 0
	for _, o := range outcomes {
		if o == "goal" {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.runID)
	fmt.Printf("markers: first_shot=%d first_goal=%d frames=%d\n", rs.firstShotFrame, rs.firstGoalFrame, rs.frames)
	fmt.Printf("play_totals: %s\n", formatCounts(rs.counts, playKeys))
	fmt.Printf("rounds=%d finished=%d score=%d rejected_inputs=%d\n", rs.rounds, len(rs.outcomes), rs.score, rs.rejected)
	fmt.Printf("conversion=%s longest_drought=%d scorers=%s\n",
		conversionString(rs.counts["goal"], rs.counts["shot"]), longestDrought(rs.outcomes), joinCounts(rs.scorers))
	fmt.Printf("safety_heals=%v\n", rs.healed)
	if rs.lastGoal != "" {
		fmt.Printf("last_goal: %s\n", rs.lastGoal)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totals := map[string]int{}
	scorers := map[string]int{}
	totalRounds := 0
	totalRejected := 0
	goalFrames := make([]int, 0, len(all))
	shotFrames := make([]int, 0, len(all))
	worstDrought := 0

	for _, rs := range all {
		for k, v := range rs.counts {
			totals[k] += v
		}
		for k, v := range rs.scorers {
			scorers[k] += v
		}
		totalRounds += rs.rounds
		totalRejected += rs.rejected
		if rs.firstGoalFrame >= 0 {
			goalFrames = append(goalFrames, rs.firstGoalFrame)
		}
		if rs.firstShotFrame >= 0 {
			shotFrames = append(shotFrames, rs.firstShotFrame)
		}
		if d := longestDrought(rs.outcomes); d > worstDrought {
			worstDrought = d
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	var parts []string
	for _, k := range playKeys {
		parts = append(parts, fmt.Sprintf("%s=%.1f", k, avg(totals[k], len(all))))
	}
	fmt.Printf("avg_per_run: %s\n", strings.Join(parts, " "))
	fmt.Printf("avg_rounds=%.1f avg_rejected=%.1f\n", avg(totalRounds, len(all)), avg(totalRejected, len(all)))
	fmt.Printf("marker_avg_frames: first_shot=%s first_goal=%s\n", avgFrameString(shotFrames), avgFrameString(goalFrames))
	fmt.Printf("conversion=%s worst_drought=%d\n", conversionString(totals["goal"], totals["shot"]), worstDrought)

	outcomes := 0
	for _, k := range outcomeKeys {
		outcomes += totals[k]
	}
	fmt.Println("\n--- Round Outcomes ---")
	for _, k := range outcomeKeys {
		share := 0.0
		if outcomes > 0 {
			share = float64(totals[k]) / float64(outcomes) * 100
		}
		fmt.Printf("  %-9s %4d  %5.1f%%\n", k, totals[k], share)
	}
	fmt.Printf("top_scorers: %s\n", joinCounts(scorers))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgFrameString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func conversionString(goals, shots int) string {
	c := conversion(goals, shots)
	if c < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", c*100)
}

func formatCounts(counts map[string]int, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

// joinCounts lists label(n) pairs, highest count first.
func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	parts := make([]string, len(labels))
	for i, k := range labels {
		parts[i] = fmt.Sprintf("%s(%d)", k, counts[k])
	}
	return strings.Join(parts, ",")
}
