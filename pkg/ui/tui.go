// Package ui provides the Bubble Tea TUI for the arena terminal.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	arenaApp "github.com/agentarena/arena-terminal/business/arena/app"
	arenaDomain "github.com/agentarena/arena-terminal/business/arena/domain"
	bountyApp "github.com/agentarena/arena-terminal/business/bounty/app"
	bountyDomain "github.com/agentarena/arena-terminal/business/bounty/domain"
	chainApp "github.com/agentarena/arena-terminal/business/chain/app"
	feedApp "github.com/agentarena/arena-terminal/business/feed/app"
	"github.com/agentarena/arena-terminal/internal/fetch"
	"github.com/agentarena/arena-terminal/internal/prefs"
	"github.com/agentarena/arena-terminal/internal/token"
	"github.com/agentarena/arena-terminal/pkg/ui/components"
)

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome    Phase = "welcome"    // Initial welcome screen
	PhaseDisclaimer Phase = "disclaimer" // One-time risk disclaimer
	PhaseOnboarding Phase = "onboarding" // One-time navigation primer
	PhaseDashboard  Phase = "dashboard"  // Main screens
)

// Screen is the active dashboard screen.
type Screen string

const (
	ScreenDashboard   Screen = "dashboard"
	ScreenLeaderboard Screen = "leaderboard"
	ScreenMatches     Screen = "matches"
	ScreenBounties    Screen = "bounties"
	ScreenBountyView  Screen = "bounty_view"
	ScreenBountyPost  Screen = "bounty_post"
	ScreenAgentView   Screen = "agent_view"
	ScreenMatchView   Screen = "match_view"
)

// agentProfileView is the loaded payload behind the agent screen.
type agentProfileView struct {
	Addr      string
	Profile   *arenaDomain.AgentProfile
	Economics *arenaDomain.AgentEconomics
}

// matchThreadView is the loaded payload behind the match screen.
type matchThreadView struct {
	Match  arenaDomain.MatchResponse
	Thread *arenaApp.MatchThread
}

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// sortCycle is the leaderboard sort key rotation.
var sortCycle = []string{
	arenaDomain.SortByEarnings,
	arenaDomain.SortByWins,
	arenaDomain.SortByWinRate,
	arenaDomain.SortByBurned,
}

// filterCycle is the bounty phase filter rotation; empty means all.
var filterCycle = []string{
	"",
	bountyDomain.PhaseActive,
	bountyDomain.PhaseAnswerPeriod,
	bountyDomain.PhaseSettled,
	bountyDomain.PhaseExpired,
}

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Timestamp time.Time
}

// Deps are the services the TUI reads from. Chain is nil when no contract
// address is configured; wallet actions are hidden in that mode.
type Deps struct {
	Arena  *arenaApp.Service
	Bounty *bountyApp.Service
	Feed   *feedApp.Service
	Chain  *chainApp.Service
	Prefs  *prefs.Store
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	deps Deps
	keys KeyMap

	// Phase state
	phase        Phase
	screen       Screen
	welcomeStart time.Time

	// Layout
	ready  bool
	width  int
	height int

	quitting bool

	// Components
	statsBar *components.StatsBarComponent
	match    *components.MatchComponent
	feed     *components.FeedComponent

	leaderboardList *components.List
	matchesList     *components.List
	bountiesList    *components.List

	// Detail state
	bountyDetail    *bountyDomain.BountyDetail
	bountyDetailErr error
	answerCursor    int
	agentProfile    *agentProfileView
	agentHistory    *fetch.Pager[arenaDomain.MatchResponse]
	agentErr        error
	matchThread     *matchThreadView
	matchErr        error

	// Wallet state
	form   *postForm
	lastTx *TxResultMsg

	// Errors (last 3, persistent until cleared)
	errors     []ErrorEntry
	lastUpdate time.Time

	ctx context.Context
}

// New creates a new TUI model.
func New(deps Deps) Model {
	phase := PhaseWelcome
	return Model{
		deps:            deps,
		keys:            DefaultKeyMap(),
		phase:           phase,
		screen:          ScreenDashboard,
		welcomeStart:    time.Now(),
		statsBar:        components.NewStatsBarComponent(),
		match:           components.NewMatchComponent(),
		feed:            components.NewFeedComponent(12),
		leaderboardList: components.NewList(15),
		matchesList:     components.NewList(15),
		bountiesList:    components.NewList(15),
		errors:          make([]ErrorEntry, 0, 3),
		ctx:             context.Background(),
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 250ms for animations
// and snapshot refresh.
func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		// The form owns the keyboard while open; plain "q" is text there.
		if m.phase == PhaseDashboard && m.screen == ScreenBountyPost {
			return m.handleFormKey(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			m = m.advanceFromWelcome()
		}
		m.refresh()
		return m, tickCmd()

	case SnapshotMsg:
		m.refresh()
		m.lastUpdate = time.Now()

	case FeedEventMsg:
		m.refresh()
		m.lastUpdate = time.Now()

	case FeedStatusMsg:
		m.refresh()

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.addError(msg.Err.Error())
			switch m.screen {
			case ScreenBountyView:
				m.bountyDetailErr = msg.Err
			case ScreenAgentView:
				m.agentErr = msg.Err
			case ScreenMatchView:
				m.matchErr = msg.Err
			}
			return m, nil
		}
		switch detail := msg.Detail.(type) {
		case *bountyDomain.BountyDetail:
			m.bountyDetail = detail
			m.answerCursor = 0
		case *agentProfileView:
			m.agentProfile = detail
		case *matchThreadView:
			m.matchThread = detail
		}

	case TxResultMsg:
		m.lastTx = &msg
		if msg.Error != "" {
			m.addError(msg.Error)
		}
		m.lastUpdate = time.Now()

	case ErrorMsg:
		m.addError(msg.Error.Error())
	}

	return m, nil
}

// handleKey routes keypresses by phase and screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case PhaseWelcome:
		m = m.advanceFromWelcome()
		return m, nil

	case PhaseDisclaimer:
		if msg.String() == "y" || msg.String() == "enter" {
			if err := m.deps.Prefs.SetDisclaimerAccepted(true); err != nil {
				m.addError(err.Error())
			}
			m = m.advancePastDisclaimer()
		}
		return m, nil

	case PhaseOnboarding:
		if err := m.deps.Prefs.SetOnboardingCompleted(true); err != nil {
			m.addError(err.Error())
		}
		m.phase = PhaseDashboard
		return m, nil
	}

	// Dashboard phase
	switch {
	case key.Matches(msg, m.keys.Dashboard):
		m.screen = ScreenDashboard
	case key.Matches(msg, m.keys.Leaderboard):
		m.screen = ScreenLeaderboard
	case key.Matches(msg, m.keys.Matches):
		m.screen = ScreenMatches
	case key.Matches(msg, m.keys.Bounties):
		m.screen = ScreenBounties
	case key.Matches(msg, m.keys.Back):
		switch m.screen {
		case ScreenBountyView:
			m.screen = ScreenBounties
			m.bountyDetail = nil
			m.bountyDetailErr = nil
			m.answerCursor = 0
		case ScreenAgentView:
			m.screen = ScreenLeaderboard
			m.agentProfile = nil
			m.agentHistory = nil
			m.agentErr = nil
		case ScreenMatchView:
			m.screen = ScreenMatches
			m.matchThread = nil
			m.matchErr = nil
		default:
			m.screen = ScreenDashboard
		}
	case key.Matches(msg, m.keys.Up):
		if m.screen == ScreenBountyView {
			if m.answerCursor > 0 {
				m.answerCursor--
			}
		} else if list := m.activeList(); list != nil {
			list.Up()
		}
	case key.Matches(msg, m.keys.Down):
		switch {
		case m.screen == ScreenBountyView:
			if d := m.bountyDetail; d != nil && m.answerCursor < len(d.Answers)-1 {
				m.answerCursor++
			}
		case m.screen == ScreenAgentView:
			if hp := m.agentHistory; hp != nil && hp.Snapshot().HasMore {
				hp.LoadMore(m.ctx)
			}
		default:
			if list := m.activeList(); list != nil && list.Down() {
				m.loadMoreActive()
			}
		}
	case key.Matches(msg, m.keys.Select):
		switch m.screen {
		case ScreenBounties:
			return m.openBountyDetail()
		case ScreenLeaderboard:
			return m.openAgentProfile()
		case ScreenMatches:
			return m.openMatchThread()
		}
	case key.Matches(msg, m.keys.Sort):
		if m.screen == ScreenLeaderboard {
			m.cycleSort()
		}
	case key.Matches(msg, m.keys.Filter):
		if m.screen == ScreenBounties {
			m.cycleFilter()
		}
	case key.Matches(msg, m.keys.Refresh):
		m.refetchAll()
	case msg.String() == "n":
		if m.screen == ScreenBounties && m.deps.Chain != nil {
			m.form = newPostForm()
			m.screen = ScreenBountyPost
		}
	case msg.String() == "w":
		if m.screen == ScreenBountyView {
			return m.pickWinner()
		}
	case msg.String() == "e":
		m.errors = m.errors[:0]
	}

	return m, nil
}

// handleFormKey routes keys while the post-bounty form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.screen = ScreenBounties
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.screen = ScreenBounties
		m.form = nil
		return m, nil
	case "ctrl+s":
		return m.submitBountyForm()
	}
	cmd := m.form.handleKey(msg)
	return m, cmd
}

func (m Model) advanceFromWelcome() Model {
	if !m.deps.Prefs.DisclaimerAccepted() {
		m.phase = PhaseDisclaimer
		return m
	}
	return m.advancePastDisclaimer()
}

func (m Model) advancePastDisclaimer() Model {
	if !m.deps.Prefs.OnboardingCompleted() {
		m.phase = PhaseOnboarding
		return m
	}
	m.phase = PhaseDashboard
	return m
}

// activeList returns the list for the current screen, nil when none.
func (m *Model) activeList() *components.List {
	switch m.screen {
	case ScreenLeaderboard:
		return m.leaderboardList
	case ScreenMatches:
		return m.matchesList
	case ScreenBounties:
		return m.bountiesList
	}
	return nil
}

func (m *Model) loadMoreActive() {
	switch m.screen {
	case ScreenLeaderboard:
		m.deps.Arena.Leaderboard().LoadMore(m.ctx)
	case ScreenMatches:
		m.deps.Arena.RecentMatches().LoadMore(m.ctx)
	case ScreenBounties:
		m.deps.Bounty.Bounties().LoadMore(m.ctx)
	}
}

func (m *Model) cycleSort() {
	current := m.deps.Arena.LeaderboardSort()
	next := sortCycle[0]
	for i, s := range sortCycle {
		if s == current {
			next = sortCycle[(i+1)%len(sortCycle)]
			break
		}
	}
	m.deps.Arena.SetLeaderboardSort(m.ctx, next)
	m.leaderboardList.Reset()
}

func (m *Model) cycleFilter() {
	current := m.deps.Bounty.Filter().Phase
	next := filterCycle[0]
	for i, f := range filterCycle {
		if f == current {
			next = filterCycle[(i+1)%len(filterCycle)]
			break
		}
	}
	m.deps.Bounty.SetFilter(m.ctx, bountyDomain.Filter{Phase: next})
	m.bountiesList.Reset()
}

func (m *Model) refetchAll() {
	m.deps.Arena.Stats().Refetch(m.ctx)
	m.deps.Arena.CurrentMatch().Refetch(m.ctx)
	m.deps.Bounty.Stats().Refetch(m.ctx)
}

// openBountyDetail loads the selected bounty's detail off the Update loop.
func (m Model) openBountyDetail() (tea.Model, tea.Cmd) {
	snap := m.deps.Bounty.Bounties().Snapshot()
	idx := m.bountiesList.Cursor()
	if idx < 0 || idx >= len(snap.Items) {
		return m, nil
	}
	id := snap.Items[idx].BountyID
	m.screen = ScreenBountyView
	m.bountyDetail = nil
	m.bountyDetailErr = nil

	svc := m.deps.Bounty
	ctx := m.ctx
	return m, func() tea.Msg {
		detail, err := svc.Detail(ctx, id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}

// openAgentProfile loads the selected leaderboard agent's profile and
// economics in one command.
func (m Model) openAgentProfile() (tea.Model, tea.Cmd) {
	snap := m.deps.Arena.Leaderboard().Snapshot()
	idx := m.leaderboardList.Cursor()
	if idx < 0 || idx >= len(snap.Items) {
		return m, nil
	}
	addr := snap.Items[idx].AgentAddr
	m.screen = ScreenAgentView
	m.agentProfile = nil
	m.agentErr = nil
	m.agentHistory = m.deps.Arena.AgentHistoryPager(addr)
	m.agentHistory.Start(m.ctx)

	svc := m.deps.Arena
	ctx := m.ctx
	return m, func() tea.Msg {
		profile, err := svc.AgentProfile(ctx, addr)
		if err != nil {
			return DetailLoadedMsg{Err: err}
		}
		econ, err := svc.AgentEconomics(ctx, addr)
		if err != nil {
			return DetailLoadedMsg{Err: err}
		}
		return DetailLoadedMsg{Detail: &agentProfileView{Addr: addr, Profile: profile, Economics: econ}}
	}
}

// openMatchThread loads the answers and commentary of the selected match.
func (m Model) openMatchThread() (tea.Model, tea.Cmd) {
	snap := m.deps.Arena.RecentMatches().Snapshot()
	idx := m.matchesList.Cursor()
	if idx < 0 || idx >= len(snap.Items) {
		return m, nil
	}
	match := snap.Items[idx]
	m.screen = ScreenMatchView
	m.matchThread = nil
	m.matchErr = nil

	svc := m.deps.Arena
	ctx := m.ctx
	return m, func() tea.Msg {
		thread, err := svc.MatchThread(ctx, match.MatchID)
		if err != nil {
			return DetailLoadedMsg{Err: err}
		}
		return DetailLoadedMsg{Detail: &matchThreadView{Match: match, Thread: thread}}
	}
}

// submitBountyForm sends createBounty and returns to the marketplace; the
// outcome lands as a TxResultMsg.
func (m Model) submitBountyForm() (tea.Model, tea.Cmd) {
	if m.deps.Chain == nil || m.form == nil {
		return m, nil
	}
	in, err := m.form.input()
	if err != nil {
		m.addError(err.Error())
		return m, nil
	}
	m.screen = ScreenBounties
	m.form = nil

	chainSvc := m.deps.Chain
	bountySvc := m.deps.Bounty
	ctx := m.ctx
	return m, func() tea.Msg {
		res, err := chainSvc.CreateBounty(ctx, in)
		if err != nil {
			return TxResultMsg{Hash: res.Hash, Status: string(res.Status), Error: err.Error()}
		}
		// The chain only sees the question hash; the backend gets the text.
		ann := bountyDomain.BountyAnnouncement{
			QuestionText: in.Question,
			Category:     in.Category,
			Difficulty:   int(in.Difficulty),
			RewardAmount: token.ToWei(in.Reward),
			MinRating:    int(in.MinRating),
			TxHash:       res.Hash,
		}
		if err := bountySvc.Announce(ctx, ann); err != nil {
			return TxResultMsg{Hash: res.Hash, Status: string(res.Status), Error: err.Error()}
		}
		return TxResultMsg{Hash: res.Hash, Status: string(res.Status)}
	}
}

// pickWinner settles the open bounty on the answer under the cursor.
func (m Model) pickWinner() (tea.Model, tea.Cmd) {
	d := m.bountyDetail
	if m.deps.Chain == nil || d == nil || d.Bounty.WinnerAddr != "" || len(d.Answers) == 0 {
		return m, nil
	}
	idx := m.answerCursor
	if idx >= len(d.Answers) {
		idx = len(d.Answers) - 1
	}
	winner := d.Answers[idx].AgentAddr
	id := uint64(d.Bounty.BountyID)

	svc := m.deps.Chain
	ctx := m.ctx
	return m, func() tea.Msg {
		res, err := svc.PickWinner(ctx, id, winner)
		if err != nil {
			return TxResultMsg{Hash: res.Hash, Status: string(res.Status), Error: err.Error()}
		}
		return TxResultMsg{Hash: res.Hash, Status: string(res.Status)}
	}
}

// refresh re-reads service snapshots into the view components.
func (m *Model) refresh() {
	stats := m.deps.Arena.Stats().Snapshot()
	m.statsBar.Update(stats.Data, stats.Loading)

	current := m.deps.Arena.CurrentMatch().Snapshot()
	if current.Data != nil {
		m.match.Update(current.Data.Match, current.Loading)
	} else {
		m.match.Update(nil, current.Loading)
	}

	m.feed.Update(m.deps.Feed.Events(), m.deps.Feed.Connected())

	lb := m.deps.Arena.Leaderboard().Snapshot()
	rows := make([]string, 0, len(lb.Items))
	for _, e := range lb.Items {
		rows = append(rows, formatLeaderboardRow(e))
	}
	m.leaderboardList.SetRows(rows)

	matches := m.deps.Arena.RecentMatches().Snapshot()
	rows = make([]string, 0, len(matches.Items))
	for _, mt := range matches.Items {
		rows = append(rows, formatMatchRow(mt))
	}
	m.matchesList.SetRows(rows)

	bounties := m.deps.Bounty.Bounties().Snapshot()
	rows = make([]string, 0, len(bounties.Items))
	for _, b := range bounties.Items {
		rows = append(rows, formatBountyRow(b))
	}
	m.bountiesList.SetRows(rows)
}

func (m *Model) addError(message string) {
	m.errors = append(m.errors, ErrorEntry{Message: message, Timestamp: time.Now()})
	if len(m.errors) > 3 {
		m.errors = m.errors[len(m.errors)-3:]
	}
}

func formatLeaderboardRow(e arenaDomain.LeaderboardEntry) string {
	return fmt.Sprintf("#%-3d %-14s  W %-4d  P %-4d  %5.1f%%  %10s MON  %10s 🔥",
		e.Rank, shortAddr(e.AgentAddr), e.MatchesWon, e.MatchesPlayed,
		e.WinRate*100, token.FmtWei(e.TotalEarnedMon), token.FmtWei(e.TotalBurnedNeuron))
}

func formatMatchRow(mt arenaDomain.MatchResponse) string {
	winner := "-"
	if mt.WinnerAddress != "" {
		winner = shortAddr(mt.WinnerAddress)
	}
	return fmt.Sprintf("#%-5d %-8s  %-10s  pool %8s MON  winner %s",
		mt.MatchID, mt.Phase, mt.Category, token.FmtWei(mt.PoolTotal), winner)
}

func formatBountyRow(b bountyDomain.BountyResponse) string {
	return fmt.Sprintf("#%-4d %-13s  %-10s  %8s NEURON  %d agents  %d answers",
		b.BountyID, b.Phase, b.Category, token.FmtWei(b.RewardAmount), b.AgentCount, b.AnswerCount)
}

func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseDisclaimer:
		return m.renderDisclaimerScreen()
	case PhaseOnboarding:
		return m.renderOnboardingScreen()
	}

	var b strings.Builder

	title := TitleStyle.Render(" ⚔ Agent Arena Terminal ")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenDashboard:
		b.WriteString(m.renderDashboard())
	case ScreenLeaderboard:
		b.WriteString(m.renderLeaderboard())
	case ScreenMatches:
		b.WriteString(m.renderMatches())
	case ScreenBounties:
		b.WriteString(m.renderBounties())
	case ScreenBountyView:
		b.WriteString(m.renderBountyDetail())
	case ScreenBountyPost:
		if m.form != nil {
			b.WriteString(m.form.View())
		}
	case ScreenAgentView:
		b.WriteString(m.renderAgentProfile())
	case ScreenMatchView:
		b.WriteString(m.renderMatchThread())
	}

	b.WriteString("\n\n")

	// Persistent error panel (last 3)
	if len(m.errors) > 0 {
		errorStyle := lipgloss.NewStyle().Foreground(ColorDanger)
		errorHeader := lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)

		b.WriteString(errorHeader.Render("ERRORS"))
		b.WriteString(MutedValue.Render(" (e: clear)"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(errorStyle.Render(fmt.Sprintf("  • %s ", err.Message)))
			b.WriteString(MutedValue.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) helpText() string {
	base := "q: quit • 1-4: screens"
	switch m.screen {
	case ScreenLeaderboard:
		return base + " • ↑↓: scroll • enter: agent • s: sort (" + m.deps.Arena.LeaderboardSort() + ")"
	case ScreenMatches:
		return base + " • ↑↓: scroll • enter: thread"
	case ScreenBounties:
		filter := m.deps.Bounty.Filter().Phase
		if filter == "" {
			filter = "all"
		}
		help := base + " • ↑↓: scroll • enter: open • f: filter (" + filter + ")"
		if m.deps.Chain != nil {
			help += " • n: post"
		}
		return help
	case ScreenBountyView:
		if m.deps.Chain != nil && m.bountyDetail != nil && m.bountyDetail.Bounty.WinnerAddr == "" {
			return base + " • ↑↓: answers • w: pick winner • esc: back"
		}
		return base + " • esc: back"
	case ScreenAgentView:
		return base + " • ↓: more history • esc: back"
	case ScreenMatchView:
		return base + " • esc: back"
	}
	return base + " • r: refresh"
}

func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.statsBar.View())
	b.WriteString("\n\n")

	leftCol := m.match.View()
	rightCol := m.feed.View()

	if m.width > 100 {
		left := BoxStyle.Width(m.width/2 - 2).Render(leftCol)
		right := BoxStyle.Width(m.width/2 - 2).Render(rightCol)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(BoxStyle.Width(m.width - 4).Render(leftCol))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(m.width - 4).Render(rightCol))
	}

	burns := m.deps.Arena.BurnStats().Snapshot()
	if burns.Data != nil && len(burns.Data.Recent) > 0 {
		recent := burns.Data.Recent
		if len(recent) > 4 {
			recent = recent[:4]
		}
		b.WriteString("\n\n")
		b.WriteString(HeaderStyle.Render("RECENT BURNS"))
		b.WriteString("\n")
		for _, r := range recent {
			b.WriteString(fmt.Sprintf("  %s %s  %s NEURON\n",
				NegativeValue.Render("🔥"),
				AccentValue.Render(shortAddr(r.AgentAddr)),
				token.FmtWei(r.AmountBurned)))
		}
	}

	return b.String()
}

func (m Model) renderLeaderboard() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("LEADERBOARD"))
	b.WriteString(MutedValue.Render("  sorted by " + m.deps.Arena.LeaderboardSort()))
	b.WriteString("\n\n")
	b.WriteString(m.renderPagedList(m.leaderboardList, m.deps.Arena.Leaderboard().Snapshot().Loading,
		m.deps.Arena.Leaderboard().Snapshot().LoadingMore, m.deps.Arena.Leaderboard().Snapshot().HasMore))
	return b.String()
}

func (m Model) renderMatches() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("RECENT MATCHES"))
	b.WriteString("\n\n")
	snap := m.deps.Arena.RecentMatches().Snapshot()
	b.WriteString(m.renderPagedList(m.matchesList, snap.Loading, snap.LoadingMore, snap.HasMore))
	return b.String()
}

func (m Model) renderBounties() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("BOUNTY MARKETPLACE"))
	filter := m.deps.Bounty.Filter().Phase
	if filter != "" {
		b.WriteString(MutedValue.Render("  filter: " + filter))
	}
	b.WriteString("\n\n")
	if tx := m.lastTx; tx != nil {
		if tx.Error != "" {
			b.WriteString(NegativeValue.Render("  ✗ tx failed"))
		} else {
			b.WriteString(PositiveValue.Render("  ✓ tx " + tx.Status))
		}
		if tx.Hash != "" {
			b.WriteString(MutedValue.Render("  " + shortAddr(tx.Hash)))
		}
		b.WriteString("\n\n")
	}
	snap := m.deps.Bounty.Bounties().Snapshot()
	b.WriteString(m.renderPagedList(m.bountiesList, snap.Loading, snap.LoadingMore, snap.HasMore))
	return b.String()
}

func (m Model) renderPagedList(list *components.List, loading, loadingMore, hasMore bool) string {
	if loading && list.Len() == 0 {
		return MutedValue.Render("  Loading...")
	}
	if list.Len() == 0 {
		return MutedValue.Render("  Nothing here yet")
	}

	var b strings.Builder
	b.WriteString(list.View())
	switch {
	case loadingMore:
		b.WriteString(MutedValue.Render("  Loading more..."))
	case hasMore:
		b.WriteString(MutedValue.Render("  ↓ more"))
	default:
		b.WriteString(MutedValue.Render("  — end —"))
	}
	return b.String()
}

func (m Model) renderBountyDetail() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("BOUNTY"))
	b.WriteString("\n\n")

	if m.bountyDetailErr != nil {
		b.WriteString(NegativeValue.Render("  Failed to load bounty"))
		return b.String()
	}
	if m.bountyDetail == nil {
		b.WriteString(MutedValue.Render("  Loading..."))
		return b.String()
	}

	d := m.bountyDetail
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)

	b.WriteString(fmt.Sprintf("  %s  %s  %s\n\n",
		valueStyle.Render(fmt.Sprintf("Bounty #%d", d.Bounty.BountyID)),
		AccentValue.Render(d.Bounty.Phase),
		MutedValue.Render(d.Bounty.Category),
	))
	b.WriteString("  " + d.Bounty.QuestionText + "\n\n")
	b.WriteString(fmt.Sprintf("  %s %s   %s %s\n\n",
		MutedValue.Render("Reward:"),
		valueStyle.Render(token.FmtWei(d.Bounty.RewardAmount)+" NEURON"),
		MutedValue.Render("Creator:"),
		valueStyle.Render(shortAddr(d.Bounty.CreatorAddr)),
	))

	b.WriteString(HeaderStyle.Render("ANSWERS"))
	b.WriteString("\n")
	if len(d.Answers) == 0 {
		b.WriteString(MutedValue.Render("  No answers yet"))
	}
	selectable := m.deps.Chain != nil && d.Bounty.WinnerAddr == ""
	for i, a := range d.Answers {
		marker := "  "
		switch {
		case d.Bounty.WinnerAddr != "" && strings.EqualFold(a.AgentAddr, d.Bounty.WinnerAddr):
			marker = PositiveValue.Render("★ ")
		case selectable && i == m.answerCursor:
			marker = AccentValue.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s\n", marker,
			AccentValue.Render(shortAddr(a.AgentAddr)),
			truncateText(a.AnswerText, 70)))
	}
	return b.String()
}

func (m Model) renderAgentProfile() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("AGENT"))
	b.WriteString("\n\n")

	if m.agentErr != nil {
		b.WriteString(NegativeValue.Render("  Failed to load agent"))
		return b.String()
	}
	v := m.agentProfile
	if v == nil {
		b.WriteString(MutedValue.Render("  Loading..."))
		return b.String()
	}

	st := v.Profile.Stats
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)

	b.WriteString("  " + valueStyle.Render(v.Addr) + "\n\n")
	b.WriteString(fmt.Sprintf("  %s %d/%d (%.1f%%)   %s %.1f%%\n",
		MutedValue.Render("Won:"), st.MatchesWon, st.MatchesPlayed, st.WinRate*100,
		MutedValue.Render("Accuracy:"), st.AnswerAccuracy*100))
	b.WriteString(fmt.Sprintf("  %s %s MON   %s %s NEURON\n\n",
		MutedValue.Render("Earned:"), token.FmtWei(st.TotalEarnedMon),
		MutedValue.Render("Burned:"), token.FmtWei(st.TotalBurnedNeuron)))

	econ := v.Economics
	pnl := econ.NetPnl
	pnlStyle := PositiveValue
	if strings.HasPrefix(pnl, "-") {
		pnlStyle = NegativeValue
		pnl = strings.TrimPrefix(pnl, "-")
		b.WriteString(fmt.Sprintf("  %s %s   %s %s\n",
			MutedValue.Render("Balance:"), token.FmtWei(econ.NeuronBalance),
			MutedValue.Render("Net PnL:"), pnlStyle.Render("-"+token.FmtWei(pnl))))
	} else {
		b.WriteString(fmt.Sprintf("  %s %s   %s %s\n",
			MutedValue.Render("Balance:"), token.FmtWei(econ.NeuronBalance),
			MutedValue.Render("Net PnL:"), pnlStyle.Render("+"+token.FmtWei(pnl))))
	}
	b.WriteString(fmt.Sprintf("  %s %.1f%%   %s %d/%d won\n\n",
		MutedValue.Render("Match ROI:"), econ.MatchROI*100,
		MutedValue.Render("Bounties:"), econ.BountiesWon, econ.BountiesParticipated))

	b.WriteString(HeaderStyle.Render("MATCH HISTORY"))
	b.WriteString("\n")
	history := v.Profile.RecentMatches
	hasMore := false
	if hp := m.agentHistory; hp != nil {
		snap := hp.Snapshot()
		if len(snap.Items) > 0 || snap.Loading {
			history = snap.Items
			hasMore = snap.HasMore
		}
	}
	if len(history) == 0 {
		b.WriteString(MutedValue.Render("  No matches yet"))
	}
	for _, mt := range history {
		b.WriteString("  " + formatMatchRow(mt) + "\n")
	}
	if hasMore {
		b.WriteString(MutedValue.Render("  ↓ more"))
	}
	return b.String()
}

func (m Model) renderMatchThread() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("MATCH"))
	b.WriteString("\n\n")

	if m.matchErr != nil {
		b.WriteString(NegativeValue.Render("  Failed to load match"))
		return b.String()
	}
	v := m.matchThread
	if v == nil {
		b.WriteString(MutedValue.Render("  Loading..."))
		return b.String()
	}

	mt := v.Match
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)

	b.WriteString(fmt.Sprintf("  %s  %s  %s\n\n",
		valueStyle.Render(fmt.Sprintf("Match #%d", mt.MatchID)),
		AccentValue.Render(mt.Phase),
		MutedValue.Render(mt.Category)))
	if mt.QuestionText != "" {
		b.WriteString("  " + mt.QuestionText + "\n\n")
	}
	winner := "-"
	if mt.WinnerAddress != "" {
		winner = shortAddr(mt.WinnerAddress)
	}
	b.WriteString(fmt.Sprintf("  %s %s MON   %s %s\n\n",
		MutedValue.Render("Pool:"), token.FmtWei(mt.PoolTotal),
		MutedValue.Render("Winner:"), winner))

	b.WriteString(HeaderStyle.Render("ANSWERS"))
	b.WriteString("\n")
	if len(v.Thread.Answers) == 0 {
		b.WriteString(MutedValue.Render("  No answers\n"))
	}
	answers := v.Thread.Answers
	if len(answers) > 10 {
		answers = answers[:10]
	}
	for _, a := range answers {
		verdict := MutedValue.Render("·")
		if a.IsCorrect != nil {
			if *a.IsCorrect {
				verdict = PositiveValue.Render("✓")
			} else {
				verdict = NegativeValue.Render("✗")
			}
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", verdict,
			AccentValue.Render(shortAddr(a.AgentAddr)),
			truncateText(a.AnswerText, 64)))
	}
	b.WriteString("\n")

	b.WriteString(HeaderStyle.Render("COMMENTARY"))
	b.WriteString("\n")
	if len(v.Thread.Commentary) == 0 {
		b.WriteString(MutedValue.Render("  No commentary"))
	}
	commentary := v.Thread.Commentary
	if len(commentary) > 8 {
		commentary = commentary[:8]
	}
	for _, c := range commentary {
		b.WriteString("  " + MutedValue.Render(c.EventType) + "  " + truncateText(c.Text, 70) + "\n")
	}
	return b.String()
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.deps.Feed.Connected() {
		parts = append(parts, StatusConnected.Render("● feed"))
	} else {
		parts = append(parts, StatusDisconnected.Render("○ feed"))
	}

	if m.deps.Chain != nil {
		if addr, ok := m.deps.Chain.Wallet(); ok {
			parts = append(parts, AccentValue.Render("⬡ "+shortAddr(addr.Hex())))
		} else {
			parts = append(parts, MutedValue.Render("⬡ read-only"))
		}
	}

	screens := []struct {
		s     Screen
		label string
	}{
		{ScreenDashboard, "1 Dashboard"},
		{ScreenLeaderboard, "2 Leaderboard"},
		{ScreenMatches, "3 Matches"},
		{ScreenBounties, "4 Bounties"},
	}
	active := m.screen
	switch m.screen {
	case ScreenBountyView, ScreenBountyPost:
		active = ScreenBounties
	case ScreenAgentView:
		active = ScreenLeaderboard
	case ScreenMatchView:
		active = ScreenMatches
	}
	for _, sc := range screens {
		if active == sc.s {
			parts = append(parts, TitleStyle.Render(sc.label))
		} else {
			parts = append(parts, MutedValue.Render(sc.label))
		}
	}

	if !m.lastUpdate.IsZero() {
		ago := time.Since(m.lastUpdate).Round(time.Second)
		parts = append(parts, MutedValue.Render(fmt.Sprintf("Updated: %s ago", ago)))
	}

	return strings.Join(parts, "  │  ")
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	goldStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	greenStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	elapsed := time.Since(m.welcomeStart)
	dotCount := int(elapsed.Milliseconds()/300) % 4
	dots := strings.Repeat(".", dotCount)

	var sb strings.Builder
	sb.WriteString("\n\n\n\n")

	logo := `
    █████╗ ██████╗ ███████╗███╗   ██╗ █████╗
   ██╔══██╗██╔══██╗██╔════╝████╗  ██║██╔══██╗
   ███████║██████╔╝█████╗  ██╔██╗ ██║███████║
   ██╔══██║██╔══██╗██╔══╝  ██║╚██╗██║██╔══██║
   ██║  ██║██║  ██║███████╗██║ ╚████║██║  ██║
   ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")

	subtitle := "          A G E N T   A R E N A   T E R M I N A L"
	sb.WriteString(mutedStyle.Render(subtitle))
	sb.WriteString("\n\n\n")

	tagline := "            ⚔   May the best agent win   ⚔"
	sb.WriteString(goldStyle.Render(tagline))
	sb.WriteString("\n\n\n")

	loading := fmt.Sprintf("                  Connecting%s", dots)
	sb.WriteString(greenStyle.Render(loading))
	sb.WriteString("\n\n")

	hint := "            Press any key to skip, or wait..."
	sb.WriteString(mutedStyle.Render(hint))
	sb.WriteString("\n")

	return sb.String()
}

// renderDisclaimerScreen renders the one-time risk disclaimer.
func (m Model) renderDisclaimerScreen() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  ⚠ DISCLAIMER"))
	sb.WriteString("\n\n")
	sb.WriteString("  Agent Arena is an experimental on-chain game on a test network.\n")
	sb.WriteString("  Matches, bounties and token amounts shown here are produced by\n")
	sb.WriteString("  autonomous agents and carry no financial value or guarantee.\n")
	sb.WriteString("  Wallet operations sign real transactions with the configured key.\n\n")
	sb.WriteString(mutedStyle.Render("  Press y or enter to accept and continue, q to quit."))
	sb.WriteString("\n")
	return sb.String()
}

// renderOnboardingScreen renders the one-time navigation primer.
func (m Model) renderOnboardingScreen() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  GETTING AROUND"))
	sb.WriteString("\n\n")
	sb.WriteString("  1  Dashboard      live match, arena stats, event feed\n")
	sb.WriteString("  2  Leaderboard    agent rankings, s cycles the sort key\n")
	sb.WriteString("  3  Matches        settled match history\n")
	sb.WriteString("  4  Bounties       marketplace, enter opens a bounty\n\n")
	sb.WriteString("  Enter opens details; lists load more as you scroll down.\n")
	sb.WriteString("  With a wallet configured, n posts a bounty and w picks a winner.\n\n")
	sb.WriteString(mutedStyle.Render("  Press any key to start."))
	sb.WriteString("\n")
	return sb.String()
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// Run starts the Bubble Tea program and blocks until it exits.
func Run(deps Deps) error {
	Program = tea.NewProgram(New(deps), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
}

// Quit asks the running program to exit.
func Quit() {
	if Program != nil {
		Program.Quit()
	}
}
