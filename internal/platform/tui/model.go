package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ai2048/internal/core"
	"github.com/vovakirdan/ai2048/internal/game"
	"github.com/vovakirdan/ai2048/internal/storage"
)

// Model is the Bubble Tea model for one game session.
type Model struct {
	session  *game.Session
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	thinking bool   // a search is running
	thinkGen uint64 // generation the running search was started for
	ticking  bool   // an autoplay tick is scheduled
	runSaved bool   // the current game has been stored
	quitting bool
}

// NewModel creates a model around session. store and logger may be nil.
func NewModel(session *game.Session, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := Model{
		session: session,
		store:   store,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		config:  cfg,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.boardHeight())
	return m
}

// Init starts autoplay if the session already has it on.
func (m Model) Init() tea.Cmd {
	if m.session.Autoplay() {
		return tickCmd(m.session.Delay())
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case aiResultMsg:
		return m.handleAIResult(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, m.boardHeight())
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionNone:
		return m, nil

	case action == core.ActionAIOnce:
		if m.thinking || m.session.IsGameOver() {
			return m, nil
		}
		cmd := m.think(false)
		return m, cmd

	case action == core.ActionRestart:
		m.saveRun()
		m.session.Reset()
		m.runSaved = false
		return m, nil

	case action == core.ActionPlace:
		var cmd tea.Cmd
		if m.session.AddTile(m.session.Cursor()) && m.session.RespondsToPlacement() {
			cmd = m.think(false)
		}
		m.checkGameOver()
		return m, cmd

	case action == core.ActionToggleAutoplay:
		var cmd tea.Cmd
		if m.session.ToggleAutoplay() {
			cmd = m.schedule()
		}
		return m, cmd
	}

	m.session.Step(core.FrameOf(action))
	m.checkGameOver()
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, m.boardHeight())
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.ticking = false
	if !m.session.Autoplay() || m.thinking || m.session.IsGameOver() {
		return m, nil
	}
	cmd := m.think(true)
	return m, cmd
}

func (m Model) handleAIResult(msg aiResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.thinkGen {
		// Superseded by a newer search that is still running
		m.logger.Debug("dropped superseded AI result", "gen", msg.gen, "running", m.thinkGen)
		return m, nil
	}
	m.thinking = false
	if !m.session.ApplyAnalysis(msg.analysis, msg.gen, msg.spawn) {
		m.logger.Debug("dropped stale AI result", "gen", msg.gen, "current", m.session.Generation())
	}
	m.checkGameOver()

	var cmd tea.Cmd
	if m.session.Autoplay() {
		cmd = m.schedule()
	}
	return m, cmd
}

// think snapshots the board and searches it on a command goroutine.
func (m *Model) think(spawn bool) tea.Cmd {
	req := m.session.AIRequest()
	m.thinking = true
	m.thinkGen = req.Gen
	solver := m.session.Solver()
	return func() tea.Msg {
		return aiResultMsg{
			analysis: solver.AnalyzeBoard(req.Board, req.Score),
			gen:      req.Gen,
			spawn:    spawn,
		}
	}
}

// schedule queues the next autoplay tick unless one is already pending.
func (m *Model) schedule() tea.Cmd {
	if m.ticking || m.thinking {
		return nil
	}
	m.ticking = true
	return tickCmd(m.session.Delay())
}

func (m *Model) checkGameOver() {
	if m.session.IsGameOver() {
		m.saveRun()
	}
}

// saveRun stores the current game once, if anything was played.
func (m *Model) saveRun() {
	if m.runSaved || m.session.Moves() == 0 {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}

	snap := m.session.Snapshot()
	run, err := m.store.SaveRun(storage.Run{
		Strategy:     m.session.Strategy(),
		Score:        snap.Score,
		MaxTile:      snap.MaxTile,
		Moves:        snap.Moves,
		Intelligence: snap.Intelligence,
		BoardSize:    len(snap.Board),
	})
	if err != nil {
		m.logger.Error("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "run", run.RunID, "strategy", run.Strategy, "score", run.Score)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".ai2048", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("ai2048_%s.txt", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// boardHeight is the screen height left after the help footer.
func (m Model) boardHeight() int {
	lines := strings.Count(m.help.View(m.keys), "\n") + 1
	return max(m.config.ScreenH-lines, 0)
}

// View renders the session and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Session returns the model's session.
func (m Model) Session() *game.Session {
	return m.session
}

// Run starts the Bubble Tea program for session.
func Run(session *game.Session, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(session, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
