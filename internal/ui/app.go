package ui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/motostats/internal/api"
	"github.com/five82/motostats/internal/motogp"
	"github.com/five82/motostats/internal/prefs"
	"github.com/five82/motostats/internal/site"
	"github.com/five82/motostats/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewRiders
	ViewRaces
	ViewStandings
	ViewRiderDetail
)

var topLevelViews = []View{ViewHome, ViewRiders, ViewRaces, ViewStandings}

func (v View) String() string {
	switch v {
	case ViewRiders:
		return "riders"
	case ViewRaces:
		return "races"
	case ViewStandings:
		return "standings"
	case ViewRiderDetail:
		return "rider"
	default:
		return "home"
	}
}

// page returns the navigation entry the view belongs to.
func (v View) page() site.Page {
	switch v {
	case ViewRiders, ViewRiderDetail:
		return site.Riders
	case ViewRaces:
		return site.Races
	case ViewStandings:
		return site.Standings
	default:
		return site.Home
	}
}

func viewForPage(p site.Page) View {
	switch p {
	case site.Riders:
		return ViewRiders
	case site.Races:
		return ViewRaces
	case site.Standings:
		return ViewStandings
	default:
		return ViewHome
	}
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Fetcher   api.Fetcher
	Logger    *zap.Logger
	APIURL    string
	ThemeName string
	PrefsPath string
	StartView string

	// ShowErrorDetail appends the backend's detail text to failure messages.
	ShowErrorDetail bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	fetcher   api.Fetcher
	logger    *zap.Logger
	prefsPath string
	apiHost   string
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	spinner     spinner.Model

	// Data-bound pages
	riders pageSlot[[]motogp.Rider]
	races  pageSlot[[]motogp.RaceCircuit]
	rider  pageSlot[motogp.RiderWithResults]

	// Selection
	selectedRider int
	selectedRace  int
	riderID       int64
}

var errNoFetcher = errors.New("no api client configured")

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	var pageOpts []state.PageOption
	if opts.ShowErrorDetail {
		pageOpts = append(pageOpts, state.WithDetail(api.Detail))
	}

	theme := GetTheme(themeName)
	return Model{
		ctx:         ctx,
		fetcher:     opts.Fetcher,
		logger:      logger,
		prefsPath:   prefsPath,
		apiHost:     hostOf(opts.APIURL),
		keys:        DefaultKeyMap(),
		theme:       theme,
		currentView: viewForPage(site.ParsePage(opts.StartView)),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))),
		),
		riders: newSlot[[]motogp.Rider](state.RidersFailure, pageOpts...),
		races:  newSlot[[]motogp.RaceCircuit](state.RacesFailure, pageOpts...),
		rider:  newSlot[motogp.RiderWithResults](state.RiderFailure, pageOpts...),
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(raw)
	}
	return u.Host
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return activateCmd(m.currentView)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case activateMsg:
		cmd := m.activate(msg.view)
		return m, cmd

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg[[]motogp.Rider]:
		applied := m.riders.resolve(msg.ticket, msg.load)
		m.logLoad(msg.view, msg.ticket, msg.load.Err, applied, m.riders.logFields()...)
		m.selectedRider = clampIndex(m.selectedRider, len(m.riders.page.Data()))
		return m, nil

	case loadedMsg[[]motogp.RaceCircuit]:
		applied := m.races.resolve(msg.ticket, msg.load)
		m.logLoad(msg.view, msg.ticket, msg.load.Err, applied, m.races.logFields()...)
		m.selectedRace = clampIndex(m.selectedRace, len(m.races.page.Data()))
		return m, nil

	case loadedMsg[motogp.RiderWithResults]:
		applied := m.rider.resolve(msg.ticket, msg.load)
		m.logLoad(msg.view, msg.ticket, msg.load.Err, applied, m.rider.logFields()...)
		return m, nil
	}

	return m, nil
}

// logLoad records the outcome of a completion.
func (m Model) logLoad(view View, ticket state.Ticket, err error, applied bool, page ...zap.Field) {
	if !applied {
		fields := append([]zap.Field{
			zap.Stringer("view", view),
			zap.Uint64("ticket", uint64(ticket)),
		}, page...)
		m.logger.Debug("discarded stale result", fields...)
		return
	}
	if err != nil {
		fields := append([]zap.Field{
			zap.Stringer("view", view),
			zap.String("kind", api.Classify(err).String()),
			zap.Error(err),
		}, page...)
		m.logger.Info("page load failed", fields...)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			m.logger.Warn("save theme preference", zap.Error(err))
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.isDataBound(m.currentView) {
			cmd := m.activate(m.currentView)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewHome):
		cmd := m.activate(ViewHome)
		return m, cmd
	case key.Matches(msg, m.keys.ViewRiders):
		cmd := m.activate(ViewRiders)
		return m, cmd
	case key.Matches(msg, m.keys.ViewRaces):
		cmd := m.activate(ViewRaces)
		return m, cmd
	case key.Matches(msg, m.keys.ViewStandings):
		cmd := m.activate(ViewStandings)
		return m, cmd
	case key.Matches(msg, m.keys.NextView):
		cmd := m.activate(m.cycleView(1))
		return m, cmd
	case key.Matches(msg, m.keys.PrevView):
		cmd := m.activate(m.cycleView(-1))
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		switch m.currentView {
		case ViewRiderDetail:
			cmd := m.activate(ViewRiders)
			return m, cmd
		case ViewHome:
			return m, nil
		default:
			cmd := m.activate(ViewHome)
			return m, cmd
		}
	}

	switch m.currentView {
	case ViewRiders:
		return m.handleRidersKey(msg)
	case ViewRaces:
		return m.handleRacesKey(msg)
	}
	return m, nil
}

// cycleView returns the top-level view step positions away from the current one.
func (m Model) cycleView(step int) View {
	current := viewForPage(m.currentView.page())
	for i, v := range topLevelViews {
		if v == current {
			n := len(topLevelViews)
			return topLevelViews[((i+step)%n+n)%n]
		}
	}
	return ViewHome
}

// activate switches to v. Leaving a data-bound view abandons its fetch;
// entering one (or re-entering it on reload) starts a new attempt.
func (m *Model) activate(v View) tea.Cmd {
	if m.currentView != v {
		m.abandon(m.currentView)
	}
	m.currentView = v

	if m.fetcher == nil && m.isDataBound(v) {
		m.logger.Warn("no api client configured", zap.Stringer("view", v))
	}

	switch v {
	case ViewRiders:
		ctx, ticket := m.riders.begin(m.ctx)
		return tea.Batch(fetchCmd(ctx, v, ticket, m.listRiders), m.spinner.Tick)
	case ViewRaces:
		ctx, ticket := m.races.begin(m.ctx)
		return tea.Batch(fetchCmd(ctx, v, ticket, m.listRaces), m.spinner.Tick)
	case ViewRiderDetail:
		ctx, ticket := m.rider.begin(m.ctx)
		fetcher, id := m.fetcher, m.riderID
		fetch := func(ctx context.Context) (motogp.RiderWithResults, error) {
			if fetcher == nil {
				return motogp.RiderWithResults{}, errNoFetcher
			}
			return fetcher.GetRiderStats(ctx, id)
		}
		return tea.Batch(fetchCmd(ctx, v, ticket, fetch), m.spinner.Tick)
	}
	return nil
}

func (m Model) listRiders(ctx context.Context) ([]motogp.Rider, error) {
	if m.fetcher == nil {
		return nil, errNoFetcher
	}
	return m.fetcher.ListRiders(ctx)
}

func (m Model) listRaces(ctx context.Context) ([]motogp.RaceCircuit, error) {
	if m.fetcher == nil {
		return nil, errNoFetcher
	}
	return m.fetcher.ListRaceCircuits(ctx)
}

func (m *Model) abandon(v View) {
	switch v {
	case ViewRiders:
		m.riders.abandon()
	case ViewRaces:
		m.races.abandon()
	case ViewRiderDetail:
		m.rider.abandon()
	}
}

func (m Model) isDataBound(v View) bool {
	return v == ViewRiders || v == ViewRaces || v == ViewRiderDetail
}

// loading reports whether the visible page is waiting on a fetch.
func (m Model) loading() bool {
	switch m.currentView {
	case ViewRiders:
		return m.riders.page.Pending()
	case ViewRaces:
		return m.races.page.Pending()
	case ViewRiderDetail:
		return m.rider.page.Pending()
	}
	return false
}

// updatedAt returns when the visible page last completed a fetch; zero while
// it is loading or for pages without data.
func (m Model) updatedAt() time.Time {
	switch m.currentView {
	case ViewRiders:
		if !m.riders.page.Pending() {
			return m.riders.page.Updated()
		}
	case ViewRaces:
		if !m.races.page.Pending() {
			return m.races.page.Updated()
		}
	case ViewRiderDetail:
		if !m.rider.page.Pending() {
			return m.rider.page.Updated()
		}
	}
	return time.Time{}
}

// shutdown cancels outstanding fetches and remembers the current page.
func (m *Model) shutdown() {
	m.riders.abandon()
	m.races.abandon()
	m.rider.abandon()

	last := string(m.currentView.page())
	if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.LastView = last }); err != nil {
		m.logger.Warn("save last view", zap.Error(err))
	}
}

// handleRidersKey moves the selection through the rider grid.
func (m Model) handleRidersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	riders := m.riders.page.Data()
	if m.riders.page.Phase() != state.Success || len(riders) == 0 {
		return m, nil
	}
	if key.Matches(msg, m.keys.Open) {
		m.riderID = riders[m.selectedRider].ID
		cmd := m.activate(ViewRiderDetail)
		return m, cmd
	}
	m.selectedRider = m.moveSelection(msg, m.selectedRider, len(riders))
	return m, nil
}

// handleRacesKey moves the selection through the race grid.
func (m Model) handleRacesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	races := m.races.page.Data()
	if m.races.page.Phase() != state.Success || len(races) == 0 {
		return m, nil
	}
	m.selectedRace = m.moveSelection(msg, m.selectedRace, len(races))
	return m, nil
}

func (m Model) moveSelection(msg tea.KeyMsg, selected, count int) int {
	cols := columnsFor(m.width)
	switch {
	case key.Matches(msg, m.keys.Down):
		if selected+cols < count {
			selected += cols
		}
	case key.Matches(msg, m.keys.Up):
		if selected-cols >= 0 {
			selected -= cols
		}
	case key.Matches(msg, m.keys.Right):
		if selected < count-1 {
			selected++
		}
	case key.Matches(msg, m.keys.Left):
		if selected > 0 {
			selected--
		}
	case key.Matches(msg, m.keys.Top):
		selected = 0
	case key.Matches(msg, m.keys.Bottom):
		selected = count - 1
	}
	return selected
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Fetcher == nil {
		return errNoFetcher
	}
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
