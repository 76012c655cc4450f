package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/roboarm/pkg/client"
)

type WatchCommand struct {
	Addr string `long:"addr" default:"http://127.0.0.1:8080" description:"Controller address"`
	Hz   int    `long:"hz" default:"10" description:"Status poll frequency"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Distinct chart colors, one per joint slot.
var jointColors = []string{
	"196", // red
	"208", // orange
	"226", // yellow
	"46",  // green
	"51",  // cyan
	"201", // magenta
}

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type watchModel struct {
	cl       *client.Client
	poller   *client.Poller
	chart    *streamlinechart.Model
	width    int
	height   int
	logs     []string
	last     *client.Status
	quitting bool
}

func (m *watchModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the poller
type sampleMsg client.Sample
type watchLogMsg string
type cmdDoneMsg string

func waitForSample(p *client.Poller) tea.Cmd {
	return func() tea.Msg {
		return sampleMsg(<-p.Samples())
	}
}

func waitForLog(p *client.Poller) tea.Cmd {
	return func() tea.Msg {
		return watchLogMsg(<-p.Logs())
	}
}

func sendCommand(cl *client.Client, line string) tea.Cmd {
	return func() tea.Msg {
		res, err := cl.Command(context.Background(), line)
		if err != nil {
			return cmdDoneMsg(fmt.Sprintf("%s: %v", line, err))
		}
		return cmdDoneMsg(fmt.Sprintf("%s: %s", line, res.Message))
	}
}

func (m *watchModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *watchModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialWatchModel(cl *client.Client, poller *client.Poller) watchModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-100000, 100000),
	)

	for i := range jointColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[i]))
		chart.SetDataSetStyles(fmt.Sprintf("j%d", i+1), runes.ThinLineStyle, style)
	}

	return watchModel{
		cl:     cl,
		poller: poller,
		chart:  &chart,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		waitForSample(m.poller),
		waitForLog(m.poller),
	)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "e":
			return m, sendCommand(m.cl, "M17")
		case "d":
			return m, sendCommand(m.cl, "M18")
		case "x":
			return m, sendCommand(m.cl, "M112")
		}

	case sampleMsg:
		s := client.Sample(msg)
		if s.Status != nil {
			keys := make([]string, 0, len(s.Status.Positions))
			for key := range s.Status.Positions {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				m.chart.PushDataSet(key, float64(s.Status.Positions[key]))
			}
			m.chart.DrawAll()
			m.last = s.Status
		}
		return m, waitForSample(m.poller)

	case watchLogMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.poller)

	case cmdDoneMsg:
		m.addLog(string(msg))
		return m, nil
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return "Watch stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(watchTitleStyle.Render("Roboarm Watch"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.poller.Hz()))
	if m.last != nil {
		state := "disabled"
		if m.last.Enabled {
			state = "enabled"
		}
		motion := "idle"
		if m.last.Moving {
			motion = "moving"
		}
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%s, %s]", state, motion)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4)

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("e: enable  d: disable  x: e-stop  q: quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for i, color := range jointColors {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		items = append(items, colorStyle.Render("━━")+fmt.Sprintf(" J%d", i+1))
	}
	return strings.Join(items, "  ")
}

func (c *WatchCommand) Execute(args []string) error {
	cl := client.New(c.Addr)
	poller := client.NewPoller(cl, c.Hz)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := poller.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Poller error: %v", err)
		}
	}()

	p := tea.NewProgram(initialWatchModel(cl, poller), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
