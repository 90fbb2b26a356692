package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// scoreOrder is the ranking used by the games table.
type scoreOrder int

const (
	byScore scoreOrder = iota
	byLines
	byPace // points per cleared line
	byRecent
)

func (o scoreOrder) String() string {
	switch o {
	case byLines:
		return "lines"
	case byPace:
		return "points per line"
	case byRecent:
		return "most recent"
	default:
		return "score"
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Variant key.Binding
	Order   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Variant, k.Order, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Variant, k.Order},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Variant: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "variant"),
		),
		Order: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// variantSummary is one row of the comparison table.
type variantSummary struct {
	info  registry.GameInfo
	stats storage.GameStats
}

// ScoreboardModel compares the variants side by side and lists every
// recorded game of the selected one.
type ScoreboardModel struct {
	store    *storage.Store
	variants []variantSummary
	cursor   int
	order    scoreOrder
	games    []storage.ScoreEntry

	summary table.Model
	ranked  table.Model
	help    help.Model
	keys    ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for _, info := range registry.List() {
		v := variantSummary{info: info, stats: storage.GameStats{GameID: info.ID}}
		if store != nil {
			if stats, err := store.GetGameStats(info.ID); err == nil {
				v.stats = *stats
			}
		}
		m.variants = append(m.variants, v)
	}
	m.layout()
	m.load()
	return m
}

func tableStyles(focused bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if focused {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
	} else {
		s.Selected = s.Cell
	}
	return s
}

// layout sizes both tables for the current window.
func (m *ScoreboardModel) layout() {
	m.summary = table.New(
		table.WithColumns([]table.Column{
			{Title: "Variant", Width: 18},
			{Title: "Games", Width: 6},
			{Title: "Best", Width: 8},
			{Title: "Most lines", Width: 10},
			{Title: "Lines", Width: 7},
		}),
		table.WithHeight(len(m.variants)+1),
	)
	m.summary.SetStyles(tableStyles(false))

	// Title, summary, caption and help take the rest of the screen.
	h := m.height - len(m.variants) - 10
	m.ranked = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Score", Width: 9},
			{Title: "Lines", Width: 6},
			{Title: "Pts/line", Width: 9},
			{Title: "Date", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(h, 3)),
	)
	m.ranked.SetStyles(tableStyles(true))
	m.help.Width = m.width
	m.fillSummary()
	m.fillRanked()
}

func (m *ScoreboardModel) fillSummary() {
	rows := make([]table.Row, len(m.variants))
	for i, v := range m.variants {
		name := v.info.Title
		if i == m.cursor {
			name = "> " + name
		}
		rows[i] = table.Row{
			name,
			fmt.Sprint(v.stats.GamesCount),
			fmt.Sprint(v.stats.HighScore),
			fmt.Sprint(v.stats.MostLines),
			fmt.Sprint(v.stats.TotalLines),
		}
	}
	m.summary.SetRows(rows)
}

// load reads every game of the selected variant.
func (m *ScoreboardModel) load() {
	m.games = nil
	if m.store != nil && len(m.variants) > 0 {
		games, err := m.store.AllScores(m.variants[m.cursor].info.ID)
		if err == nil {
			m.games = games
		}
	}
	m.sortGames()
	m.fillSummary()
	m.fillRanked()
}

func pace(e storage.ScoreEntry) float64 {
	if e.Lines == 0 {
		return 0
	}
	return float64(e.Score) / float64(e.Lines)
}

// sortGames orders the loaded games; AllScores already returns them by score.
func (m *ScoreboardModel) sortGames() {
	cmp := func(a, b storage.ScoreEntry) int { return b.Score - a.Score }
	switch m.order {
	case byLines:
		cmp = func(a, b storage.ScoreEntry) int { return b.Lines - a.Lines }
	case byPace:
		cmp = func(a, b storage.ScoreEntry) int {
			pa, pb := pace(a), pace(b)
			switch {
			case pa > pb:
				return -1
			case pa < pb:
				return 1
			}
			return 0
		}
	case byRecent:
		cmp = func(a, b storage.ScoreEntry) int { return int(b.ID - a.ID) }
	}
	slices.SortStableFunc(m.games, cmp)
}

func (m *ScoreboardModel) fillRanked() {
	rows := make([]table.Row, len(m.games))
	for i, e := range m.games {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(e.Score),
			fmt.Sprint(e.Lines),
			fmt.Sprintf("%.1f", pace(e)),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.ranked.SetRows(rows)
	m.ranked.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Variant):
			if len(m.variants) > 0 {
				step := 1
				if msg.String() == "left" || msg.String() == "h" {
					step = len(m.variants) - 1
				}
				m.cursor = (m.cursor + step) % len(m.variants)
				m.load()
			}
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.order = (m.order + 1) % (byRecent + 1)
			m.sortGames()
			m.fillRanked()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.ranked, cmd = m.ranked.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	var b strings.Builder
	b.WriteString(center(titleStyle.Render("HIGH SCORES")))
	b.WriteString("\n\n")
	b.WriteString(center(boxStyle.Render(m.summary.View())))
	b.WriteString("\n")
	b.WriteString(center(m.caption()))
	b.WriteString("\n")

	if len(m.games) == 0 {
		empty := dim.Italic(true).Padding(1, 4).Render("No games recorded yet.\nClear some lines to set one!")
		b.WriteString(center(boxStyle.Render(empty)))
	} else {
		b.WriteString(center(boxStyle.Render(m.ranked.View())))
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

// caption names the selected variant and the current ordering.
func (m ScoreboardModel) caption() string {
	if len(m.variants) == 0 {
		return ""
	}
	v := m.variants[m.cursor]
	s := fmt.Sprintf("%s by %s", v.info.Title, m.order)
	if v.stats.GamesCount > 0 {
		s += fmt.Sprintf("  |  avg %.0f  last played %s", v.stats.AvgScore, v.stats.LastPlayed.Format("Jan 02"))
	}
	return s
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
