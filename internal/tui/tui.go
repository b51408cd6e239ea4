// Package tui provides a Bubble Tea terminal user interface for album-catalog.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/album-catalog/internal/config"
	"github.com/handiism/album-catalog/internal/model"
	"github.com/handiism/album-catalog/internal/reconcile"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxReviewLines bounds the album list shown before writing.
const maxReviewLines = 12

// errAborted is reported when the user leaves the review without writing.
var errAborted = errors.New("aborted, spreadsheet left unchanged")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateReview
	StateWriting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   reconcile.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	logs      []LogEntry
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *reconcile.Manager
	events  chan reconcile.ProgressEvent
	catalog *model.Catalog
	result  *reconcile.Result

	scanned int32
	total   int32

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model asking for a configuration file, with
// configPath filled in.
func NewModel(configPath string) Model {
	ti := textinput.New()
	ti.Placeholder = config.DefaultPath
	ti.SetValue(configPath)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries a manager progress event.
	ProgressMsg struct {
		Event reconcile.ProgressEvent
	}

	// ScanDoneMsg is sent when the library scan completes.
	ScanDoneMsg struct {
		Catalog *model.Catalog
		Err     error
	}

	// WriteDoneMsg is sent when the spreadsheet has been written.
	WriteDoneMsg struct {
		Result *reconcile.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			m.closeManager()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StateScanning, StateWriting:
				m.cancel()
			case StateReview:
				m.closeManager()
				m.state = StateError
				m.err = errAborted
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.events = make(chan reconcile.ProgressEvent, 64)
				manager, err := newManager(strings.TrimSpace(m.textInput.Value()), m.events)
				if err != nil {
					m.fail(err)
					return m, nil
				}
				m.manager = manager
				m.state = StateScanning
				return m, tea.Batch(
					startScan(m.ctx, manager),
					waitForEvent(m.events),
					m.spinner.Tick,
					tickProgress(),
				)
			}

		case "w":
			if m.state == StateReview {
				m.state = StateWriting
				return m, tea.Batch(startWrite(m.ctx, m.manager), m.spinner.Tick)
			}

		case "tab":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.catalog = nil
				m.result = nil
				m.scanned, m.total = 0, 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(m.events))
		if msg.Event.Level == reconcile.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case ScanDoneMsg:
		switch {
		case msg.Err != nil:
			m.fail(msg.Err)
		case msg.Catalog.Len() == 0:
			// Nothing to review; Apply reports it without opening the file.
			m.catalog = msg.Catalog
			m.state = StateWriting
			cmds = append(cmds, startWrite(m.ctx, m.manager))
		default:
			m.catalog = msg.Catalog
			m.state = StateReview
		}

	case WriteDoneMsg:
		m.closeManager()
		if msg.Err != nil {
			m.fail(msg.Err)
		} else {
			m.result = msg.Result
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateScanning {
			m.scanned, m.total, _ = m.manager.GetProgress()
			var percent float64
			if m.total > 0 {
				percent = float64(m.scanned) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent))
		}
		if m.state == StateScanning {
			cmds = append(cmds, tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) fail(err error) {
	m.closeManager()
	m.state = StateError
	if errors.Is(err, context.Canceled) {
		err = errors.New("cancelled by user, spreadsheet left unchanged")
	}
	m.err = err
}

func (m *Model) closeManager() {
	if m.manager != nil {
		_ = m.manager.Close()
		m.manager = nil
	}
}

// tickProgress returns a command to tick progress updates.
func tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next progress event from events.
func waitForEvent(events <-chan reconcile.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// newManager loads the configuration and creates a manager whose progress
// events are forwarded to events.
func newManager(configPath string, events chan<- reconcile.ProgressEvent) (*reconcile.Manager, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return reconcile.NewManager(settings, func(event reconcile.ProgressEvent) {
		select {
		case events <- event:
		default:
			// The log panel only shows the latest lines.
		}
	})
}

// startScan scans the library in background.
func startScan(ctx context.Context, manager *reconcile.Manager) tea.Cmd {
	return func() tea.Msg {
		catalog, err := manager.Scan(ctx)
		return ScanDoneMsg{Catalog: catalog, Err: err}
	}
}

// startWrite inserts the scanned catalog into the spreadsheet.
func startWrite(ctx context.Context, manager *reconcile.Manager) tea.Cmd {
	return func() tea.Msg {
		if manager == nil {
			return WriteDoneMsg{Err: errors.New("no scan to write")}
		}
		result, err := manager.Apply(ctx, false)
		return WriteDoneMsg{Result: result, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎵 Album Catalog"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Add your music folder to the album spreadsheet"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateReview:
		b.WriteString(m.viewReview())
	case StateWriting:
		b.WriteString(m.viewWriting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Configuration file:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (tab)\n", verboseCheck))

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning albums..."))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.scanned) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Albums: %d/%d", m.scanned, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewReview() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf(
		"Found %d album(s) from %d band(s):", m.catalog.Len(), m.catalog.BandCount())))
	b.WriteString("\n")

	records := m.catalog.Records()
	for i, r := range records {
		if i == maxReviewLines {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(records)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString(albumStyle.Render(fmt.Sprintf("  ♪ %s - %s %s", r.Band, r.Year, r.Name)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %s", orDash(r.Bitrate), orDash(r.Genre))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewWriting() string {
	return m.spinner.View() + " " + subtitleStyle.Render("Writing spreadsheet...") + "\n"
}

func (m Model) viewComplete() string {
	if m.result == nil {
		return ""
	}
	return boxStyle.Render(fmt.Sprintf("✨ %s\n\nBands: %d\nRows added: %d",
		m.result.Summary(), len(m.result.Insertions), m.result.Written))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case reconcile.LevelError:
			style = errorStyle
			prefix = "✗"
		case reconcile.LevelWarning:
			style = warningStyle
			prefix = "!"
		case reconcile.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case reconcile.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: scan • tab: verbose • esc: quit"
	case StateScanning, StateWriting:
		return "esc: cancel"
	case StateReview:
		return "w: write to spreadsheet • esc: abort"
	case StateComplete, StateError:
		return "r: start over • q: quit"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Run starts the TUI application.
func Run(configPath string) error {
	p := tea.NewProgram(NewModel(configPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
