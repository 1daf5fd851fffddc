// Command tracecat prints a host call trace written by simulate, or pages
// through it tick by tick with -tui.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/brensch/snekarena/trace"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	tui := flag.Bool("tui", false, "Open an interactive tick pager")
	calls := flag.Bool("calls", false, "Print every call instead of per-tick summaries")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tracecat [-tui] [-calls] <trace.parquet>")
		os.Exit(2)
	}

	events, err := trace.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read trace: %v", err)
	}
	ticks := trace.GroupByTick(events)

	if *tui {
		if _, err := tea.NewProgram(newModel(ticks)).Run(); err != nil {
			log.Fatalf("TUI error: %v", err)
		}
		return
	}

	for _, t := range ticks {
		if *calls {
			fmt.Print(renderCalls(t))
			continue
		}
		fmt.Println(summarize(t))
	}
}

// summarize renders one line per tick, e.g.
//
//	tick   4 | snake 1 | move x1 leap x1 observe x6 | speak "INFO status"
func summarize(t trace.Tick) string {
	counts := make(map[string]int)
	var notes []string
	var snake int64
	for _, e := range t.Events {
		snake = e.SnakeID
		counts[e.Call]++
		if e.Note != "" {
			notes = append(notes, fmt.Sprintf("%s %q", e.Call, e.Note))
		}
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "tick %3d | snake %d |", t.Tick, snake)
	for _, name := range names {
		fmt.Fprintf(&b, " %s x%d", name, counts[name])
	}
	if len(notes) > 0 {
		b.WriteString(" | ")
		b.WriteString(strings.Join(notes, "; "))
	}
	return b.String()
}

func renderCalls(t trace.Tick) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== tick %d ===\n", t.Tick)
	for _, e := range t.Events {
		fmt.Fprintf(&b, "  %5d %-30s args=%v result=%d", e.Cycle, e.Call, e.Args, e.Result)
		if e.Note != "" {
			fmt.Fprintf(&b, " note=%q", e.Note)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

type model struct {
	ticks []trace.Tick
	pos   int
}

func newModel(ticks []trace.Tick) model {
	return model{ticks: ticks}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "n":
			if m.pos < len(m.ticks)-1 {
				m.pos++
			}
		case "left", "h", "p":
			if m.pos > 0 {
				m.pos--
			}
		case "home", "g":
			m.pos = 0
		case "end", "G":
			if len(m.ticks) > 0 {
				m.pos = len(m.ticks) - 1
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	if len(m.ticks) == 0 {
		return "Empty trace.\n\nPress q to quit.\n"
	}
	t := m.ticks[m.pos]
	s := fmt.Sprintf("Tick %d (%d/%d)\n\n", t.Tick, m.pos+1, len(m.ticks))
	s += summarize(t) + "\n\n"
	s += renderCalls(t)
	s += "\n←/→ step ticks, g/G first/last, q to quit.\n"
	return s
}
