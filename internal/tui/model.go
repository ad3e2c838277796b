// Package tui is the terminal control surface for live playback.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-kick/engine"
)

const (
	refreshInterval = 50 * time.Millisecond
	bpmStep         = 1.0
	minBPM          = 40.0
	maxBPM          = 300.0
	barWidth        = 20
)

// Host runs fn with exclusive access to the engine, between render blocks.
type Host interface {
	Do(fn func(e *engine.Engine))
}

// Names labels the loaded material.
type Names struct {
	Kicks  []string
	Noises []string
	IRs    []string
}

type tickMsg time.Time

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	playStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	stopStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle    = lipgloss.NewStyle().Width(16)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	beatStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Model is the bubbletea model driving an engine through a Host.
type Model struct {
	host  Host
	names Names

	state    engine.State
	params   engine.Params
	selected int
	cueing   bool
	quitting bool
}

// NewModel returns a model reading its initial state from host.
func NewModel(host Host, names Names) Model {
	m := Model{host: host, names: names}
	m.refresh()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the refresh timer.
func (m Model) Init() tea.Cmd { return tick() }

// Update handles key presses and refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}

	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.do(func(e *engine.Engine) { e.SetLooping(false) })
		return m, tea.Quit

	case " ":
		looping := !m.state.Looping
		m.do(func(e *engine.Engine) { e.SetLooping(looping) })

	case "c":
		cueing := m.cueing
		m.do(func(e *engine.Engine) {
			if cueing {
				e.CueRelease()
			} else {
				e.Cue()
			}
		})
		m.cueing = !m.cueing

	case "]", "[":
		next := step(m.state.NoiseSample, key == "]", len(m.names.Noises), false)
		m.do(func(e *engine.Engine) { e.SelectNoiseSample(next) })

	case "}", "{":
		next := step(m.state.KickSample, key == "}", len(m.names.Kicks), false)
		m.do(func(e *engine.Engine) { e.SelectKickSample(next) })

	case "i", "I":
		next := step(m.state.ActiveIR, key == "i", m.state.NumIRs, true)
		m.do(func(e *engine.Engine) { e.SelectIR(next) })

	case "+", "=", "-", "_":
		dir := bpmStep
		if key == "-" || key == "_" {
			dir = -bpmStep
		}
		bpm := max(minBPM, min(maxBPM, m.state.BPM+dir))
		m.do(func(e *engine.Engine) { e.SetBPM(bpm) })

	case "up", "k":
		m.selected = (m.selected + len(knobs) - 1) % len(knobs)

	case "down", "j":
		m.selected = (m.selected + 1) % len(knobs)

	case "left", "h", "right", "l":
		dir := 1.0
		if key == "left" || key == "h" {
			dir = -1
		}
		k := knobs[m.selected]
		m.do(func(e *engine.Engine) {
			p := e.Params()
			k.nudge(&p, dir)
			e.ApplyParams(p)
		})
	}

	return m, nil
}

// step cycles index through [0,n) or, with bypass, through [-1,n).
func step(index int, forward bool, n int, bypass bool) int {
	lo := 0
	if bypass {
		lo = -1
	}
	span := n - lo
	if span <= 0 {
		return index
	}

	d := 1
	if !forward {
		d = -1
	}
	return lo + ((index-lo+d)%span+span)%span
}

func (m *Model) do(fn func(e *engine.Engine)) {
	m.host.Do(fn)
	m.refresh()
}

func (m *Model) refresh() {
	m.host.Do(func(e *engine.Engine) {
		m.state = e.Snapshot()
		m.params = e.Params()
	})
}

// View renders the transport, sources and knobs.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	transport := stopStyle.Render("STOP")
	if m.state.Looping {
		transport = playStyle.Render("LOOP")
	}
	if m.cueing {
		transport += " " + beatStyle.Render("CUE")
	}

	fmt.Fprintf(&b, "%s  %s  %.0f bpm  beat %d  %s\n\n",
		titleStyle.Render("kickgen"), transport, m.state.BPM, m.state.Beats, m.beatMeter())

	fmt.Fprintf(&b, "%s %s (%s)\n", labelStyle.Render("kick"), label(m.names.Kicks, m.state.KickSample), m.state.KickState)
	fmt.Fprintf(&b, "%s %s (%s)\n", labelStyle.Render("noise"), label(m.names.Noises, m.state.NoiseSample), m.state.NoiseState)
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("reverb"), label(m.names.IRs, m.state.ActiveIR))

	for i, k := range knobs {
		p := m.params
		v := *k.field(&p)

		line := fmt.Sprintf("%s %s %s", labelStyle.Render(k.name), bar((v-k.min)/(k.max-k.min)), k.format(v))
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space:loop  c:cue  [/]:noise  {/}:kick  i/I:reverb  +/-:bpm  j/k:select  h/l:adjust  q:quit"))

	return b.String()
}

func (m Model) beatMeter() string {
	pos := m.state.NoiseBeatCount % engine.NoiseEveryBeats
	var b strings.Builder
	for i := range engine.NoiseEveryBeats {
		if i == pos && m.state.Looping {
			b.WriteString(beatStyle.Render("●"))
		} else {
			b.WriteString(dimStyle.Render("·"))
		}
	}
	return b.String()
}

func label(names []string, index int) string {
	switch {
	case index < 0:
		return "off"
	case index < len(names):
		return fmt.Sprintf("%d: %s", index, names[index])
	default:
		return fmt.Sprintf("%d", index)
	}
}

func bar(frac float64) string {
	frac = max(0, min(1, frac))
	n := int(frac*barWidth + 0.5)
	return "[" + strings.Repeat("=", n) + strings.Repeat(" ", barWidth-n) + "]"
}
