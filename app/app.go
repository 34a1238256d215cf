package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"golang.org/x/sync/errgroup"

	"github.com/miosa/osa-feed/client"
	"github.com/miosa/osa-feed/config"
	"github.com/miosa/osa-feed/msg"
	"github.com/miosa/osa-feed/snapshot"
	"github.com/miosa/osa-feed/ui/cards"
	"github.com/miosa/osa-feed/ui/common"
	"github.com/miosa/osa-feed/ui/header"
	"github.com/miosa/osa-feed/ui/list"
	"github.com/miosa/osa-feed/ui/logo"
	"github.com/miosa/osa-feed/ui/status"
	"github.com/miosa/osa-feed/ui/toast"
)

// ProfileDir is set by main to the user's profile directory path.
var ProfileDir string

// Version is set by main and shown in the header.
var Version = "dev"

// startupTimeout bounds the parallel health check and snapshot reads.
const startupTimeout = 10 * time.Second

// -- Model --------------------------------------------------------------------

// Model is the root Bubble Tea model. It owns the feed lists and all wiring
// between the backend client, the snapshot store and the UI.
type Model struct {
	header   header.Model
	status   status.Model
	toasts   toast.ToastsModel
	help     help.Model
	showHelp bool

	feeds  []feed
	active int

	state  State
	layout Layout
	keys   KeyMap

	client *client.Client
	snaps  *snapshot.Store // nil when the store could not be opened
	log    *log.Logger
	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
	config config.Config
}

// New constructs the root Model. snaps may be nil, in which case feeds start
// empty and nothing is cached.
func New(c *client.Client, snaps *snapshot.Store, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		header: header.NewHeader(Version),
		status: status.New(),
		toasts: toast.NewToasts(),
		help:   help.New(),
		state:  StateConnecting,
		keys:   DefaultKeyMap(),
		client: c,
		snaps:  snaps,
		log:    logger,
		ctx:    ctx,
		cancel: cancel,
		width:  80,
		height: 24,
		config: cfg,
	}
	m.layout = ComputeLayout(m.width, m.height, header.Height)
	m.feeds = newFeeds(ctx, c, cfg.List, logger, m.layout.ListWidth, m.layout.ListHeight)
	if i := feedIndex(m.feeds, cfg.DefaultFeed); i >= 0 {
		m.active = i
	}
	m.status.SetHelp(common.KeyHelp(m.keys.ShortHelp()...))
	m.syncStatus()
	return m
}

// State returns the current application state.
func (m Model) State() State { return m.state }

// Active returns the name of the visible feed.
func (m Model) Active() string { return m.feeds[m.active].name }

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startup(), func() tea.Msg { return tea.RequestWindowSize() })
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		cmds = append(cmds, m.recomputeLayout())

	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(v))

	case tea.MouseWheelMsg, tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg:
		cmds = append(cmds, m.updateActive(rawMsg))

	case msg.StartupResult:
		cmds = append(cmds, m.handleStartup(v))

	case msg.HealthResult:
		cmds = append(cmds, m.handleHealth(v))

	case list.LoadErrorMsg:
		cmds = append(cmds, m.handleLoadError(v))

	case list.RefreshedMsg:
		if i := m.feedByID(v.ID); i >= 0 {
			m.state = StateReady
			cmds = append(cmds, m.saveSnapshot(m.feeds[i].name, v.Items, v.HasMore))
		}

	case list.PageLoadedMsg:
		if i := m.feedByID(v.ID); i >= 0 {
			m.state = StateReady
			f := m.feeds[i]
			if v.Page == m.config.List.InitialPage {
				cmds = append(cmds, m.saveSnapshot(f.name, f.list.Items(), f.list.LoadState().HasMore))
			}
		}

	case msg.CallDeleted:
		cmds = append(cmds, m.handleCallDeleted(v))

	case msg.SnapshotSaved:
		if v.Err != nil {
			m.log.Printf("snapshot %s: %v", v.Feed, v.Err)
		}

	case toast.ExpireMsg:
		m.toasts.Tick()

	default:
		// Frames, fetch results, spinner ticks and timers are scoped to a
		// list ID; every list ignores the ones that are not its own.
		cmds = append(cmds, m.broadcast(rawMsg))
	}

	m.syncStatus()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(k tea.KeyPressMsg) tea.Cmd {
	l := &m.feeds[m.active].list

	switch {
	case key.Matches(k, m.keys.Quit):
		m.shutdown()
		return tea.Quit

	case key.Matches(k, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil
	}

	if m.state == StateConnecting {
		return nil
	}

	switch {
	case key.Matches(k, m.keys.NextFeed):
		m.switchFeed(1)
	case key.Matches(k, m.keys.PrevFeed):
		m.switchFeed(-1)
	case key.Matches(k, m.keys.Refresh):
		cmd := l.Refresh()
		if l.Len() == 0 && cmd == nil {
			cmd = l.Load()
		}
		if m.state == StateOffline {
			return tea.Batch(cmd, m.checkHealth())
		}
		return cmd
	case key.Matches(k, m.keys.Delete):
		return m.deleteTopCall()
	case key.Matches(k, m.keys.ScrollUp):
		return l.ScrollBy(-1)
	case key.Matches(k, m.keys.ScrollDown):
		return l.ScrollBy(1)
	case key.Matches(k, m.keys.PageUp):
		return l.PageUp()
	case key.Matches(k, m.keys.PageDown):
		return l.PageDown()
	case key.Matches(k, m.keys.ScrollTop):
		return l.ScrollToTop()
	case key.Matches(k, m.keys.ScrollBottom):
		return l.ScrollToBottom()
	}
	return nil
}

func (m *Model) switchFeed(delta int) {
	n := len(m.feeds)
	m.active = ((m.active+delta)%n + n) % n
}

// handleStartup seeds every feed from its snapshot, then starts the network
// load: a refresh for seeded feeds, the first page for empty ones.
func (m *Model) handleStartup(r msg.StartupResult) tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, m.handleHealth(r.Health))

	for i := range m.feeds {
		f := &m.feeds[i]
		if seed, ok := r.Seeds[f.name]; ok {
			items, err := f.decode(f.name, seed.Items)
			switch {
			case err != nil:
				m.log.Printf("snapshot %s: %v", f.name, err)
				cmds = append(cmds, m.dropSnapshot(f.name))
			case f.list.Seed(items, seed.HasMore):
				m.log.Printf("snapshot %s: seeded %d items saved %s", f.name, len(items), seed.SavedAt.Format(time.RFC3339))
			}
		}
		if f.list.Len() > 0 {
			cmds = append(cmds, f.list.Refresh())
		} else {
			cmds = append(cmds, f.list.Load())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleHealth(h msg.HealthResult) tea.Cmd {
	m.header.SetHealth(h)
	if h.Err != nil {
		wasOffline := m.state == StateOffline
		m.state = StateOffline
		m.log.Printf("health: %v", h.Err)
		if wasOffline {
			return nil
		}
		return m.toasts.Add("Backend unreachable, showing cached feeds", toast.ToastWarning)
	}
	m.state = StateReady
	return nil
}

// handleLoadError toasts failures of the visible feed; background feeds only
// log, their status shows up when the user switches to them.
func (m *Model) handleLoadError(e list.LoadErrorMsg) tea.Cmd {
	i := m.feedByID(e.ID)
	if i < 0 {
		return nil
	}
	f := m.feeds[i]
	m.log.Printf("feed %s: page %d (refresh=%t): %v", f.name, e.Page, e.Refresh, e.Err)
	if i != m.active {
		return nil
	}
	what := fmt.Sprintf("Couldn't load %s", strings.ToLower(f.title))
	if e.Refresh {
		what = fmt.Sprintf("Couldn't refresh %s", strings.ToLower(f.title))
	}
	return m.toasts.Add(what+": "+errorText(e.Err), toast.ToastError)
}

func (m *Model) deleteTopCall() tea.Cmd {
	f := m.feeds[m.active]
	if f.name != config.FeedCalls {
		return nil
	}
	it, ok := f.list.TopItem()
	if !ok {
		return nil
	}
	call, ok := it.(cards.CallItem)
	if !ok {
		return nil
	}
	c, ctx, id := m.client, m.ctx, call.ID
	return func() tea.Msg {
		return msg.CallDeleted{ID: id, Err: c.DeleteCall(ctx, id)}
	}
}

func (m *Model) handleCallDeleted(d msg.CallDeleted) tea.Cmd {
	i := feedIndex(m.feeds, config.FeedCalls)
	if d.Err != nil && !client.IsStatus(d.Err, http.StatusNotFound) {
		m.log.Printf("delete call %s: %v", d.ID, d.Err)
		return m.toasts.Add("Couldn't delete call: "+errorText(d.Err), toast.ToastError)
	}
	m.feeds[i].list.Remove(cards.CallItem{CallRecord: client.CallRecord{ID: d.ID}}.Key())
	return m.toasts.Add("Call deleted", toast.ToastInfo)
}

// updateActive forwards input to the visible list only.
func (m *Model) updateActive(v tea.Msg) tea.Cmd {
	if m.state == StateConnecting {
		return nil
	}
	var cmd tea.Cmd
	m.feeds[m.active].list, cmd = m.feeds[m.active].list.Update(v)
	return cmd
}

func (m *Model) broadcast(v tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.feeds))
	for i := range m.feeds {
		var cmd tea.Cmd
		m.feeds[i].list, cmd = m.feeds[i].list.Update(v)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) feedByID(id int64) int {
	for i, f := range m.feeds {
		if f.list.ID() == id {
			return i
		}
	}
	return -1
}

// shutdown aborts every fetch and remembers the visible feed.
func (m *Model) shutdown() {
	for i := range m.feeds {
		m.feeds[i].list.Close()
	}
	m.cancel()

	if ProfileDir == "" {
		return
	}
	m.config.DefaultFeed = m.feeds[m.active].name
	if err := config.Save(ProfileDir, m.config); err != nil {
		m.log.Printf("save config: %v", err)
	}
}

// -- Commands -----------------------------------------------------------------

// startup runs the health check and the snapshot reads in parallel.
func (m Model) startup() tea.Cmd {
	c, snaps, logger := m.client, m.snaps, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()

		res := msg.StartupResult{Seeds: make(map[string]msg.Seed)}
		var mu sync.Mutex

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			res.Health = healthResult(c.Health(gctx))
			return nil
		})
		if snaps != nil {
			g.Go(func() error {
				pruned, err := pruneSnapshots(snaps, feedNames)
				if err != nil {
					logger.Printf("snapshot prune: %v", err)
				}
				if len(pruned) > 0 {
					logger.Printf("snapshot: pruned %v", pruned)
				}
				return nil
			})
			for _, name := range feedNames {
				g.Go(func() error {
					snap, err := snaps.Get(name)
					if errors.Is(err, snapshot.ErrNotFound) {
						return nil
					}
					if err != nil {
						logger.Printf("snapshot %s: %v", name, err)
						return nil
					}
					mu.Lock()
					res.Seeds[name] = msg.Seed{Items: snap.Items, HasMore: snap.HasMore, SavedAt: snap.SavedAt}
					mu.Unlock()
					return nil
				})
			}
		}
		_ = g.Wait()
		return res
	}
}

func (m Model) checkHealth() tea.Cmd {
	c, ctx := m.client, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, startupTimeout)
		defer cancel()
		return healthResult(c.Health(ctx))
	}
}

func healthResult(h *client.HealthResponse, err error) msg.HealthResult {
	if err != nil {
		return msg.HealthResult{Err: err}
	}
	return msg.HealthResult{
		Status:        h.Status,
		Version:       h.Version,
		UptimeSeconds: h.UptimeSeconds,
	}
}

func (m Model) saveSnapshot(name string, items []list.Item, hasMore bool) tea.Cmd {
	if m.snaps == nil {
		return nil
	}
	snaps := m.snaps
	return func() tea.Msg {
		return msg.SnapshotSaved{Feed: name, Err: snaps.Put(name, items, hasMore)}
	}
}

// dropSnapshot removes a cached page that no longer decodes.
func (m Model) dropSnapshot(name string) tea.Cmd {
	if m.snaps == nil {
		return nil
	}
	snaps := m.snaps
	return func() tea.Msg {
		return msg.SnapshotSaved{Feed: name, Err: snaps.Delete(name)}
	}
}

// errorText shortens err for a toast.
func errorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// -- View ---------------------------------------------------------------------

func (m Model) View() tea.View {
	content := m.renderView()
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderView composes the full terminal frame as a string.
func (m Model) renderView() string {
	if m.state == StateConnecting {
		return logo.Splash(m.width, m.height, "Connecting to "+m.client.BaseURL+"…")
	}

	tabs := make([]string, len(m.feeds))
	for i, f := range m.feeds {
		tabs[i] = f.title
	}

	body := m.feeds[m.active].list.View()
	if over := m.overlay(); over != "" {
		body = overlayBottom(body, over, m.layout.ListHeight)
	}

	return strings.Join([]string{
		m.header.View(tabs, m.active),
		body,
		m.status.View(m.width),
	}, "\n")
}

// overlay returns what is drawn over the bottom of the list: the full key
// help when toggled, then any toasts.
func (m Model) overlay() string {
	var parts []string
	if m.showHelp {
		parts = append(parts, m.help.FullHelpView(m.keys.FullHelp()))
	}
	if m.toasts.HasToasts() {
		parts = append(parts, m.toasts.View(m.width))
	}
	return strings.Join(parts, "\n")
}

// overlayBottom replaces the last lines of body with over, keeping height
// lines in total.
func overlayBottom(body, over string, height int) string {
	lines := strings.Split(body, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	extra := strings.Split(over, "\n")
	if len(extra) > len(lines) {
		extra = extra[len(extra)-len(lines):]
	}
	copy(lines[len(lines)-len(extra):], extra)
	return strings.Join(lines, "\n")
}

// -- Layout -------------------------------------------------------------------

func (m *Model) recomputeLayout() tea.Cmd {
	m.layout = ComputeLayout(m.width, m.height, header.Height)
	m.header.SetWidth(m.width)
	cmds := make([]tea.Cmd, 0, len(m.feeds))
	for i := range m.feeds {
		cmds = append(cmds, m.feeds[i].list.SetSize(m.layout.ListWidth, m.layout.ListHeight))
	}
	return tea.Batch(cmds...)
}

func (m *Model) syncStatus() {
	f := m.feeds[m.active]
	m.status.SetFeed(f.title)
	m.status.SetList(f.list.Len(), f.list.LoadState(), f.list.RefreshPhase())
}
