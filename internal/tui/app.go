// Package tui provides the interactive Bubble Tea estimate form.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/tui/components"
	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Loader reads datasets and prepares the model. It reports each finished
// stage through stage before returning.
type Loader func(stage func(name string)) (*Dataset, error)

// LoadStages is the number of stages a Loader reports.
const LoadStages = 3

// StageMsg reports that a loading stage finished.
type StageMsg struct {
	Name string
}

// DataLoadedMsg is sent when the loader returns.
type DataLoadedMsg struct {
	Data     *Dataset
	Err      error
	LoadTime time.Duration
}

type phase int

const (
	phaseLoading phase = iota
	phaseForm
	phaseResult
	phaseFailed
)

const maxContentWidth = 90

// App is the root Bubble Tea model.
type App struct {
	load    Loader
	loadSub chan tea.Msg

	spinner    spinner.Model
	stagesDone int
	stage      string

	data     *Dataset
	loadTime time.Duration
	err      error

	form   *huh.Form
	vals   *FormValues // shared across App copies; the form writes through it
	result Result

	phase  phase
	width  int
	height int
}

// NewApp creates the form application around load.
func NewApp(load Loader) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		load:    load,
		loadSub: make(chan tea.Msg, LoadStages+1),
		spinner: sp,
		vals:    &FormValues{},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.load, a.loadSub),
		waitForLoadMsg(a.loadSub),
		a.spinner.Tick,
	)
}

// Result returns the last computed estimate and whether one exists.
func (a App) Result() (Result, bool) {
	return a.result, a.phase == phaseResult
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.contentWidth())
		}
		return a, nil

	case StageMsg:
		a.stagesDone++
		a.stage = msg.Name
		return a, waitForLoadMsg(a.loadSub)

	case DataLoadedMsg:
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.err = msg.Err
			a.phase = phaseFailed
			return a, nil
		}
		a.data = msg.Data
		cmd := a.startForm()
		return a, cmd

	case spinner.TickMsg:
		if a.phase != phaseLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.phase {
		case phaseForm:
			return a.updateForm(msg)
		case phaseResult:
			switch msg.String() {
			case "enter", "n":
				cmd := a.startForm()
				return a, cmd
			case "q", "esc":
				return a, tea.Quit
			}
			return a, nil
		case phaseFailed:
			return a, tea.Quit
		}
		return a, nil
	}

	if a.phase == phaseForm && a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

// startForm opens a fresh form, keeping the previous answers as defaults.
func (a *App) startForm() tea.Cmd {
	a.form = newEstimateForm(a.data, a.vals)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.contentWidth())
	}
	a.phase = phaseForm
	a.err = nil
	return a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		res, err := Estimate(*a.vals, a.data)
		a.form = nil
		if err != nil {
			a.err = err
			cmd := a.startForm()
			return a, cmd
		}
		a.result = res
		a.phase = phaseResult
		return a, nil
	}

	if a.form.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a App) contentWidth() int {
	w := a.width
	if w <= 0 || w > maxContentWidth {
		w = maxContentWidth
	}
	return w
}

// View implements tea.Model.
func (a App) View() string {
	switch a.phase {
	case phaseLoading:
		return a.viewLoading()
	case phaseFailed:
		return a.viewFailed()
	case phaseResult:
		return a.viewResult()
	}

	var b strings.Builder
	b.WriteString(a.header())
	if a.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Active.Red).Render("  " + a.err.Error()))
		b.WriteString("\n\n")
	}
	if a.form != nil {
		b.WriteString(a.form.View())
	}
	return b.String()
}

func (a App) header() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("  Predicting College Tuition")
	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Render("  regression on state, type, length and year")
	return "\n" + title + "\n" + sub + "\n\n"
}

func (a App) viewLoading() string {
	t := theme.Active

	label := "Loading datasets..."
	if a.stage != "" {
		label = a.stage
	}

	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("  ")
	b.WriteString(a.spinner.View())
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Render(label))
	b.WriteString("\n\n  ")
	b.WriteString(components.StageBar(a.stagesDone, LoadStages, 30))
	b.WriteString("\n")
	return b.String()
}

func (a App) viewFailed() string {
	t := theme.Active
	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(fmt.Sprintf("  Could not load data: %v", a.err)))
	b.WriteString("\n\n")
	b.WriteString(components.KeyHints(a.contentWidth(), "", "press any key to exit"))
	b.WriteString("\n")
	return b.String()
}

func (a App) viewResult() string {
	r := a.result
	w := a.contentWidth()

	var b strings.Builder
	b.WriteString(a.header())

	metrics := []components.Metric{{
		Label: fmt.Sprintf("Predicted cost in %d", r.Year),
		Value: cli.FormatUSD(r.Cost),
		Note:  "tuition plus room and board",
	}}
	if r.HighSchool {
		metrics[0].Note = "no college tuition"
	}
	if r.HasTrend {
		metrics = append(metrics, components.Metric{
			Label: "Average trend",
			Value: cli.FormatUSD(r.TrendCost),
			Note:  r.Values.Type,
		})
	}
	b.WriteString(components.MetricRow(metrics, w))
	b.WriteString("\n")

	rows := [][2]string{
		{"Childcare", r.Values.Childcare},
		{"State", r.Values.State},
		{"Graduation", r.Values.GradYear},
		{"Education", r.Values.Education},
	}
	if !r.HighSchool {
		rows = append(rows,
			[2]string{"College type", r.Values.Type},
			[2]string{"Length", r.Values.Length})
	}
	if a.data != nil && a.data.Model.Name != "" {
		note := fmt.Sprintf("%.3f", a.data.Model.R2)
		if a.data.Trained {
			note += " (trained now)"
		}
		rows = append(rows, [2]string{"Model R²", note})
	}
	b.WriteString(components.DetailCard("Your answers", rows, w))
	b.WriteString("\n")

	right := ""
	if a.loadTime > 0 {
		right = "loaded in " + a.loadTime.Round(time.Millisecond).String()
	}
	b.WriteString(components.KeyHints(w, right, "[enter] new estimate", "[q]uit"))
	b.WriteString("\n")
	return b.String()
}

// loadDataCmd runs load in a background goroutine, streaming StageMsg
// updates and a final DataLoadedMsg through sub.
func loadDataCmd(load Loader, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()
			stage := func(name string) {
				// Non-blocking: a dropped stage only delays the bar.
				select {
				case sub <- StageMsg{Name: name}:
				default:
				}
			}
			data, err := load(stage)
			sub <- DataLoadedMsg{Data: data, Err: err, LoadTime: time.Since(start)}
		}()
		return nil
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}
