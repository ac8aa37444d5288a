package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/app"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/config"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/render"
	"github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/world"
)

type sessionState int

const (
	statePickSave sessionState = iota
	stateLoading
	stateBrowsing
	stateSearching
	stateError
)

type model struct {
	state sessionState
	cfg   *config.Config
	log   *slog.Logger

	saves     []string
	app       *app.App
	mode      render.Mode
	borders   bool
	exact     bool
	results   []*world.Province
	textInput textinput.Model
	viewport  viewport.Model

	renderPath string
	status     string
	err        error
	width      int
	height     int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFCC00"))
)

func NewModel(cfg *config.Config, log *slog.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "Enter a savefile number or name..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	saves, err := app.ListSaves(cfg)
	m := model{
		state:     statePickSave,
		cfg:       cfg,
		log:       log,
		saves:     saves,
		mode:      render.ModePolitical,
		borders:   true,
		textInput: ti,
	}
	if err != nil {
		m.state = stateError
		m.err = err
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type worldLoadedMsg struct {
	app *app.App
}

type renderedMsg struct {
	mode render.Mode
	path string
}

type errMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			if m.state == stateSearching {
				m.state = stateBrowsing
				m.textInput.Blur()
				return m, nil
			}
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == statePickSave {
				name := m.pickedSave()
				if name == "" {
					return m, nil
				}
				m.state = stateLoading
				m.status = "Loading " + name + "..."
				return m, m.loadWorld(name)
			}
			if m.state == stateSearching {
				query := m.textInput.Value()
				m.textInput.Blur()
				m.state = stateBrowsing
				m.runSearch(query)
				return m, nil
			}

		default:
			if m.state == stateBrowsing {
				return m.handleBrowseKey(msg.String())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.6)
		m.viewport.Height = msg.Height - 8

	case worldLoadedMsg:
		m.app = msg.app
		m.state = stateBrowsing
		m.textInput.Blur()
		m.status = "Rendering " + string(m.mode) + " map..."
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(int(float64(m.width)*0.6), m.height-8)
		}
		m.viewport.SetContent(m.welcomeText())
		return m, m.renderMap(m.mode)

	case renderedMsg:
		m.mode = msg.mode
		m.renderPath = msg.path
		m.status = fmt.Sprintf("%s map written to %s", msg.mode, msg.path)
		return m, nil

	case errMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil
	}

	if m.state == statePickSave || m.state == stateSearching {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleBrowseKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1", "2", "3", "4", "5":
		idx, _ := strconv.Atoi(key)
		mode := render.Modes()[idx-1]
		m.status = "Rendering " + string(mode) + " map..."
		return m, m.renderMap(mode)

	case "/":
		m.state = stateSearching
		m.textInput.Placeholder = "Search provinces..."
		m.textInput.Reset()
		m.textInput.Focus()
		return m, textinput.Blink

	case "b":
		m.borders = !m.borders
		m.status = "Rendering " + string(m.mode) + " map..."
		return m, m.renderMap(m.mode)

	case "x":
		m.exact = !m.exact
		return m, nil

	case "w":
		m.viewport.SetContent(m.warningsText())
		m.viewport.GotoTop()
		return m, nil

	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) pickedSave() string {
	value := strings.TrimSpace(m.textInput.Value())
	if value == "" {
		return ""
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(m.saves) {
		return m.saves[n-1]
	}
	return value
}

func (m *model) runSearch(query string) {
	m.results = m.app.World.SearchByName(query, m.exact)

	matchKind := "matches"
	if m.exact {
		matchKind = "exact matches"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s for %q\n\n", len(m.results), matchKind, query)
	for i, p := range m.results {
		if i >= 20 {
			fmt.Fprintf(&sb, "... and %d more\n", len(m.results)-i)
			break
		}
		fmt.Fprintf(&sb, "%d. %s (#%d)\n", i+1, p.Name, p.ID)
	}
	if len(m.results) > 0 {
		sb.WriteString("\n" + m.app.ProvinceSummary(m.results[0]))
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoTop()
}

func (m model) welcomeText() string {
	w := m.app.World
	var sb strings.Builder
	fmt.Fprintf(&sb, "Loaded %s\n\n", m.app.SaveName)
	fmt.Fprintf(&sb, "Provinces:    %d\n", len(w.Provinces))
	fmt.Fprintf(&sb, "Countries:    %d\n", len(w.Countries))
	fmt.Fprintf(&sb, "Areas:        %d\n", len(w.Areas))
	fmt.Fprintf(&sb, "Regions:      %d\n", len(w.Regions))
	fmt.Fprintf(&sb, "Superregions: %d\n", len(w.Superregions))
	if n := len(m.app.Warnings()); n > 0 {
		sb.WriteString("\n" + warnStyle.Render(fmt.Sprintf("%d warnings recorded, press w to view.", n)))
	}
	return sb.String()
}

func (m model) warningsText() string {
	warnings := m.app.Warnings()
	if len(warnings) == 0 {
		return "No warnings. The save loaded cleanly."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d warnings\n\n", len(warnings))
	for _, d := range warnings {
		sb.WriteString(d.String() + "\n")
	}
	return sb.String()
}

func (m model) View() string {
	var s string

	switch m.state {
	case statePickSave:
		var sb strings.Builder
		sb.WriteString(titleStyle.Render("EU4 SAVEGAME VIEWER") + "\n\n")
		if len(m.saves) == 0 {
			fmt.Fprintf(&sb, "No savefiles found in %s.\n", m.cfg.SavesFolder)
		} else {
			sb.WriteString("Pick a savefile:\n\n")
			for i, save := range m.saves {
				fmt.Fprintf(&sb, "%d. %s\n", i+1, save)
			}
		}
		sb.WriteString("\n" + m.textInput.View())
		s = sb.String()

	case stateLoading:
		s = "\n  " + m.status + "\n"

	case stateBrowsing, stateSearching:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderSidePanel(),
		)

		bottom := "\n" + m.status
		if m.state == stateSearching {
			bottom = "\n" + m.textInput.View()
		}
		help := helpStyle.Render("1-5: map mode | b: borders | /: search | x: exact match | w: warnings | q: quit")

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			bottom,
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderSidePanel() string {
	if m.app == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("MAP MODE") + "\n")
	for i, mode := range render.Modes() {
		line := fmt.Sprintf("%d. %s", i+1, mode)
		if mode == m.mode {
			line = activeStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	borders := "off"
	if m.borders {
		borders = "on"
	}
	fmt.Fprintf(&sb, "Borders: %s\n", borders)

	sb.WriteString("\n" + titleStyle.Render("SEARCH") + "\n")
	exact := "off"
	if m.exact {
		exact = "on"
	}
	fmt.Fprintf(&sb, "Exact match: %s\n", exact)

	if m.renderPath != "" {
		sb.WriteString("\n" + titleStyle.Render("OUTPUT") + "\n")
		sb.WriteString(m.renderPath + "\n")
	}

	panelWidth := int(float64(m.width) * 0.35)
	return panelStyle.Width(panelWidth).Height(m.viewport.Height).Render(sb.String())
}

func (m model) loadWorld(name string) tea.Cmd {
	return func() tea.Msg {
		a, err := app.Load(m.cfg, name, m.log)
		if err != nil {
			return errMsg{err}
		}
		return worldLoadedMsg{app: a}
	}
}

func (m model) renderMap(mode render.Mode) tea.Cmd {
	borders := m.borders
	return func() tea.Msg {
		path, err := m.app.RenderToFile(mode, borders)
		if err != nil {
			return errMsg{err}
		}
		return renderedMsg{mode: mode, path: path}
	}
}

// Run starts the interactive viewer.
func Run(cfg *config.Config, log *slog.Logger) error {
	p := tea.NewProgram(NewModel(cfg, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
