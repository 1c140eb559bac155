package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wavelab/internal/field"
	"github.com/san-kum/wavelab/internal/scene"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var columns = []string{"x", "y", "amp", "freq", "phase"}

// viewSpan is the half-width of the world window the ASCII canvas samples.
const viewSpan = 400.0

type model struct {
	sc *scene.Scene

	cursor  int
	col     int
	editing bool
	editBuf string

	history   []float64
	lastFrame time.Time
	fps       float64

	width  int
	height int
}

// NewEditor wraps a scene in the terminal editor.
func NewEditor(sc *scene.Scene) *model {
	return &model{
		sc:      sc,
		history: make([]float64, 0, 60),
		width:   80,
		height:  24,
	}
}

// Run drives the editor until the user quits.
func Run(sc *scene.Scene) error {
	p := tea.NewProgram(NewEditor(sc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		now := time.Now()
		if !m.lastFrame.IsZero() {
			dt := now.Sub(m.lastFrame).Seconds()
			if dt > 0 {
				m.fps = 1.0 / dt
			}
			m.sc.Advance(dt)
		}
		m.lastFrame = now

		probe := field.Eval(0, 0, m.sc.Time, m.sc.Sources(), m.sc.Speed, m.sc.Mode, false)
		m.history = append(m.history, probe.Value)
		if len(m.history) > 60 {
			m.history = m.history[1:]
		}
		return m, tick()
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%f", &val)
			if src, ok := m.selected(); ok {
				setColumn(src, m.col, val)
			}
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		m.sc.Playing = !m.sc.Playing
	case "r":
		m.sc.Reset()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.sc.Count()-1 {
			m.cursor++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < len(columns)-1 {
			m.col++
		}
	case "enter":
		if src, ok := m.selected(); ok {
			m.editing = true
			m.editBuf = fmt.Sprintf("%.2f", column(src, m.col))
		}
	case "[":
		if src, ok := m.selected(); ok {
			setColumn(src, m.col, column(src, m.col)-columnStep(m.col))
		}
	case "]":
		if src, ok := m.selected(); ok {
			setColumn(src, m.col, column(src, m.col)+columnStep(m.col))
		}
	case "n":
		m.sc.Add()
	case "x":
		if src, ok := m.selected(); ok {
			m.sc.Remove(src.ID)
			if m.cursor >= m.sc.Count() && m.cursor > 0 {
				m.cursor--
			}
		}
	case "v":
		if src, ok := m.selected(); ok {
			src.Visible = !src.Visible
		}
	case "m":
		m.sc.Mode = (m.sc.Mode + 1) % (field.ModePhase + 1)
	case "+", "=":
		m.sc.SetSpeed(m.sc.Speed*1.25, time.Now())
	case "-", "_":
		m.sc.SetSpeed(m.sc.Speed/1.25, time.Now())
	}
	return m, nil
}

// selected resolves the cursor to an arena pointer so edits land in place.
func (m *model) selected() (*field.Source, bool) {
	srcs := m.sc.Sources()
	if m.cursor < 0 || m.cursor >= len(srcs) {
		return nil, false
	}
	return m.sc.Get(srcs[m.cursor].ID)
}

func column(src *field.Source, col int) float64 {
	switch col {
	case 0:
		return src.X
	case 1:
		return src.Y
	case 2:
		return src.Amplitude
	case 3:
		return src.Frequency
	default:
		return src.Phase
	}
}

func setColumn(src *field.Source, col int, v float64) {
	switch col {
	case 0:
		src.X = v
	case 1:
		src.Y = v
	case 2:
		src.Amplitude = math.Max(v, 0)
	case 3:
		src.Frequency = v
	default:
		src.Phase = v
	}
}

func columnStep(col int) float64 {
	switch col {
	case 0, 1:
		return 10
	case 2:
		return 0.1
	case 3:
		return 0.25
	default:
		return math.Pi / 12
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("w a v e l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	statusIcon := green.Render("●")
	statusText := green.Render("playing")
	if !m.sc.Playing {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("   %s %s  %s  %s  %s\n\n",
		statusIcon, statusText,
		cyan.Render(m.sc.Mode.String()),
		dim.Render(fmt.Sprintf("c=%.0f", m.sc.Speed)),
		dim.Render(fmt.Sprintf("t=%.1fs  %.0ffps", m.sc.Time, m.fps))))

	m.viewCanvas(&b)
	m.viewSources(&b)

	if len(m.history) > 1 {
		b.WriteString(fmt.Sprintf("\n   %s %s\n",
			dim.Render("origin"), cyan.Render(sparkline(m.history, 32))))
	}

	b.WriteString("\n" + dim.Render("   ↑↓ source  ←→ field  [] adjust  enter edit  n/x add/del") + "\n")
	b.WriteString(dim.Render("   v hide  m mode  ± speed  space pause  r reset  q quit") + "\n")

	return b.String()
}

// viewCanvas samples the field over a coarse top-down window and maps values
// onto a character ramp, sources drawn on top.
func (m *model) viewCanvas(b *strings.Builder) {
	cw := m.width - 8
	ch := m.height - 16
	if cw < 40 {
		cw = 40
	}
	if ch < 8 {
		ch = 8
	}
	if ch > 16 {
		ch = 16
	}

	ramp := []rune(" .:-=+*#%@")
	srcs := m.sc.Sources()

	maxAmp := 0.0
	for _, src := range srcs {
		if src.Visible {
			maxAmp += src.Amplitude
		}
	}
	if maxAmp == 0 {
		maxAmp = 1
	}

	for row := 0; row < ch; row++ {
		wy := (float64(row)/float64(ch-1)*2 - 1) * viewSpan
		b.WriteString("   ")
		for colIdx := 0; colIdx < cw; colIdx++ {
			wx := (float64(colIdx)/float64(cw-1)*2 - 1) * viewSpan
			s := field.Eval(wx, wy, m.sc.Time, srcs, m.sc.Speed, m.sc.Mode, false)
			n := math.Abs(s.Value) / maxAmp
			i := int(n * float64(len(ramp)-1))
			if i >= len(ramp) {
				i = len(ramp) - 1
			}
			b.WriteRune(ramp[i])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *model) viewSources(b *strings.Builder) {
	srcs := m.sc.Sources()
	if len(srcs) == 0 {
		b.WriteString("   " + dimmer.Render("no sources: n to add") + "\n")
		return
	}

	for i, src := range srcs {
		vals := []float64{src.X, src.Y, src.Amplitude, src.Frequency, src.Phase}
		var row strings.Builder
		for c, name := range columns {
			cell := fmt.Sprintf("%s=%-8.2f", name, vals[c])
			if m.editing && i == m.cursor && c == m.col {
				cell = fmt.Sprintf("%s=%-8s", name, m.editBuf+"▋")
			}
			switch {
			case i == m.cursor && c == m.col:
				row.WriteString(magenta.Render(cell))
			case i == m.cursor:
				row.WriteString(white.Render(cell))
			default:
				row.WriteString(dim.Render(cell))
			}
			row.WriteString(" ")
		}

		marker := "  "
		if i == m.cursor {
			marker = cyan.Render("▸ ")
		}
		vis := ""
		if !src.Visible {
			vis = yellow.Render(" hidden")
		}
		b.WriteString(fmt.Sprintf("   %s%s %s%s\n",
			marker, dim.Render(fmt.Sprintf("%-4s", src.ID)), row.String(), vis))
	}
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	start := 0
	if len(data) > width {
		start = len(data) - width
	}
	var b strings.Builder
	for _, v := range data[start:] {
		i := int((v - minVal) / span * float64(len(chars)-1))
		b.WriteRune(chars[i])
	}
	return b.String()
}
