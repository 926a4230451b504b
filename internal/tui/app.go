package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/balancelab/internal/model"
)

const historyCapacity = 240

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	balancedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	tiltedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	graphStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

// App is the interactive bubbletea front end over a balance model.
type App struct {
	bm       *model.BalanceModel
	renderer *Renderer
	dt       float64
	fps      int
	paused   bool
	elapsed  float64
	history  []float64
}

func NewApp(bm *model.BalanceModel, dt float64, fps int) App {
	if fps <= 0 {
		fps = 60
	}
	return App{
		bm:       bm,
		renderer: NewRenderer(bm, fps),
		dt:       dt,
		fps:      fps,
		history:  make([]float64, 0, historyCapacity),
	}
}

func (a App) Init() tea.Cmd { return a.tick() }

func (a App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case " ":
			a.paused = !a.paused
		case "r":
			a.bm.Reset()
			a.elapsed = 0
			a.history = a.history[:0]
		case "c":
			a.cycleColumns()
		}
	case tickMsg:
		if !a.paused {
			a.bm.Step(a.dt)
			a.elapsed += a.dt
			a.history = append(a.history, a.bm.Plank.TiltAngle.Get())
			if len(a.history) > historyCapacity {
				a.history = a.history[1:]
			}
		}
		return a, a.tick()
	}
	return a, nil
}

// cycleColumns walks double -> single -> none -> double.
func (a App) cycleColumns() {
	switch a.bm.ColumnState.Get() {
	case model.DoubleColumns:
		a.bm.ColumnState.Set(model.SingleColumn)
	case model.SingleColumn:
		a.bm.ColumnState.Set(model.NoColumns)
	default:
		a.bm.ColumnState.Set(model.DoubleColumns)
	}
}

func (a App) View() string {
	var b strings.Builder

	status := "RUNNING"
	style := headerStyle
	if a.paused {
		status = "PAUSED"
		style = pausedStyle
	}
	b.WriteString(headerStyle.Render("BALANCELAB") + "  " + style.Render(status) + "\n\n")

	b.WriteString(a.renderer.Scene())

	plank := a.bm.Plank
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  time    ") + valueStyle.Render(fmt.Sprintf("%.2fs", a.elapsed)) + "\n")
	b.WriteString(labelStyle.Render("  tilt    ") + valueStyle.Render(fmt.Sprintf("%+.4f rad", plank.TiltAngle.Get())) + "\n")
	b.WriteString(labelStyle.Render("  omega   ") + valueStyle.Render(fmt.Sprintf("%+.4f rad/s", plank.AngularVelocity())) + "\n")
	b.WriteString(labelStyle.Render("  torque  ") + valueStyle.Render(fmt.Sprintf("%+.2f N·m", plank.NetTorque())) + "\n")
	b.WriteString(labelStyle.Render("  columns ") + valueStyle.Render(a.bm.ColumnState.Get().String()) + "\n")
	if plank.IsBalanced() {
		b.WriteString("  " + balancedStyle.Render("BALANCED") + "\n")
	} else {
		b.WriteString("  " + tiltedStyle.Render("TILTED") + "\n")
	}

	if len(a.history) > 1 {
		chart := asciigraph.Plot(a.history,
			asciigraph.Height(5),
			asciigraph.Width(60),
			asciigraph.Caption("tilt (rad)"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	b.WriteString(helpStyle.Render("  space:pause  r:reset  c:columns  q:quit") + "\n")
	return b.String()
}

// Run starts the interactive app and blocks until the user quits.
func Run(bm *model.BalanceModel, dt float64, fps int) error {
	_, err := tea.NewProgram(NewApp(bm, dt, fps), tea.WithAltScreen()).Run()
	return err
}
