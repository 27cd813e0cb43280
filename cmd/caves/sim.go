package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/cave/levels"
	"github.com/vovakirdan/tui-caves/internal/games/caves"
)

var (
	flagMoves  string
	flagSettle int
	flagJSON   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Run a move script against a level without a screen",
	Long: `Plays a script of moves one tick at a time and prints where the level ended up.

Each script character is one tick: R, D, L, U (or r, d, l, u) try a move,
'.' waits. Whitespace is ignored. After the script, --settle extra ticks let
rocks finish falling. Runs are deterministic, so the printed hash identifies
the final state.

Examples:
  caves sim 01-open-cavern --moves RRDD..L
  caves sim 01-open-cavern --moves "$(cat route.txt)" --json`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagMoves, "moves", "", "Move script")
	simCmd.Flags().IntVar(&flagSettle, "settle", 40, "Extra ticks after the script")
	simCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
}

type simOutput struct {
	Level    string         `json:"level"`
	State    string         `json:"state"`
	Reason   string         `json:"reason,omitempty"`
	Score    int            `json:"score"`
	Gems     int            `json:"gems"`
	Required int            `json:"gems_required"`
	Ticks    uint64         `json:"ticks"`
	Commands int            `json:"commands"`
	Hash     string         `json:"hash"`
	Events   map[string]int `json:"events"`
	Faults   []string       `json:"faults,omitempty"`
	Rows     []string       `json:"rows"`
}

func runSim(_ *cobra.Command, args []string) {
	lvls := loadLevels()
	i := levels.Index(lvls, args[0])
	if i < 0 {
		fail("unknown level %q (run 'caves levels' to list them)", args[0])
	}

	rules := loadCavesConfig().CaveRules()
	res, err := caves.RunScript(lvls[i], rules, flagMoves, flagSettle)
	if err != nil && len(res.Faults) == 0 {
		fail("%v", err)
	}

	out := simOutput{
		Level:    res.Snapshot.Level,
		State:    res.Snapshot.State.String(),
		Score:    res.Snapshot.Counters.Score,
		Gems:     res.Snapshot.Counters.Collected,
		Required: res.Snapshot.Counters.GemsRequired,
		Ticks:    res.Snapshot.Tick,
		Commands: res.Commands,
		Hash:     fmt.Sprintf("%016x", res.Snapshot.Hash),
		Events:   make(map[string]int, len(res.Events)),
		Rows:     res.Rows,
	}
	if res.Snapshot.State == cave.StateDead {
		out.Reason = string(res.Snapshot.Reason)
	}
	for t, n := range res.Events {
		out.Events[string(t)] = n
	}
	for _, f := range res.Faults {
		out.Faults = append(out.Faults, f.Error())
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fail("%v", err)
		}
		return
	}

	printSim(out)
}

func printSim(out simOutput) {
	for _, row := range out.Rows {
		fmt.Println(row)
	}
	fmt.Println()

	state := out.State
	if out.Reason != "" {
		state += " (" + out.Reason + ")"
	}
	fmt.Printf("Level    %s\n", out.Level)
	fmt.Printf("State    %s\n", state)
	fmt.Printf("Score    %d\n", out.Score)
	fmt.Printf("Gems     %d/%d\n", out.Gems, out.Required)
	fmt.Printf("Ticks    %d (%d commands)\n", out.Ticks, out.Commands)
	fmt.Printf("Hash     %s\n", out.Hash)

	names := make([]string, 0, len(out.Events))
	for name := range out.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		fmt.Println("Events")
		for _, name := range names {
			fmt.Printf("  %-10s %d\n", name, out.Events[name])
		}
	}

	for _, f := range out.Faults {
		fmt.Fprintf(os.Stderr, "Fault: %s\n", f)
	}
}
