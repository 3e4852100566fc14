package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scalehouse/internal/cli/formatter"
	"github.com/alexanderramin/scalehouse/internal/contract"
	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/timeline"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const (
	defaultTUIWidth  = 100
	defaultTUIHeight = 30
)

type (
	boardLoadedMsg struct {
		resp *contract.BoardResponse
		err  error
	}
	rescheduledMsg struct {
		card *domain.PriceCard
		err  error
	}
	priceCreatedMsg struct {
		draft priceDraft
		card  *domain.PriceCard
		err   error
	}
	dbChangedMsg struct{}
)

// pendingCommit is a gesture result handed over by the controller and not
// yet sent to the service.
type pendingCommit struct {
	cardID     string
	start, end time.Time
}

// timelineModel is the interactive price timeline. Mouse presses on a bar
// start a gesture on the controller; the live preview is laid out on
// every motion event and the release commits through Reschedule.
type timelineModel struct {
	app  *App
	ctx  context.Context
	req  contract.BoardRequest
	keys keyMap
	help help.Model

	nav     *timeline.Navigator
	ctrl    *timeline.Controller
	pending []pendingCommit

	board *contract.BoardResponse
	view  *formatter.TimelineFrame

	width, height int
	status        string
	statusErr     bool
	quitting      bool

	form  *huh.Form
	draft *priceDraft
	// formErr explains why the last submit of the form was refused.
	formErr []string

	changes <-chan struct{}
}

type tuiOptions struct {
	// Request overrides the configured zoom, anchor and filters.
	Request *contract.BoardRequest
	// Changes, when set, triggers a refetch on every receive.
	Changes <-chan struct{}
}

func newTimelineModel(ctx context.Context, app *App, opts tuiOptions) *timelineModel {
	req := boardRequest(app)
	if opts.Request != nil {
		req = *opts.Request
	}
	m := &timelineModel{
		app:     app,
		ctx:     ctx,
		req:     req,
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   defaultTUIWidth,
		height:  defaultTUIHeight,
		changes: opts.Changes,
	}
	m.nav = timeline.NewNavigator(req.Zoom, req.Anchor, timeline.WindowOptions{
		WeekStart: req.WeekStart,
		Clock:     app.now,
	})
	m.ctrl = timeline.NewController(m.queueCommit)
	return m
}

func (m *timelineModel) queueCommit(cardID string, start, end time.Time) {
	m.pending = append(m.pending, pendingCommit{cardID: cardID, start: start, end: end})
}

func (m *timelineModel) Init() tea.Cmd {
	return tea.Batch(m.loadBoard(), m.waitForChange())
}

func (m *timelineModel) loadBoard() tea.Cmd {
	req := m.req
	req.Zoom = m.nav.Zoom()
	req.Anchor = m.nav.Anchor()
	ctx, svc := m.ctx, m.app.Timeline
	return func() tea.Msg {
		resp, err := svc.Board(ctx, req)
		return boardLoadedMsg{resp: resp, err: err}
	}
}

func (m *timelineModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}

func (m *timelineModel) setStatus(format string, args ...any) {
	m.status, m.statusErr = fmt.Sprintf(format, args...), false
}

func (m *timelineModel) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// relayout re-runs the layout pipeline on the loaded cards with the
// controller's live preview and rescales the controller to the grid.
func (m *timelineModel) relayout() {
	if m.board == nil {
		return
	}
	minWidth := m.req.MinWidthPercent
	if minWidth <= 0 {
		minWidth = timeline.DefaultMinWidthPercent
	}
	rows := timeline.Layout(timeline.LayoutInput{
		Resources: m.board.Resources,
		Cards:     m.board.Cards,
		Window:    m.board.Window,
		Today:     m.board.Today,
		Mapper:    timeline.Mapper{MinWidthPercent: minWidth},
		Preview:   m.ctrl.Preview,
	})
	m.view = formatter.RenderTimeline(m.board.Window, rows, m.width)
	m.ctrl.SetScale(m.board.Window, float64(m.view.GridWidth))
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.board = msg.resp
		m.relayout()
		return m, nil

	case rescheduledMsg:
		if msg.err != nil {
			m.setError(rejection(msg.err))
		} else {
			m.setStatus("Moved %s to %s", msg.card.ProductCode,
				formatter.FormatRange(msg.card.StartDate, msg.card.EndDate))
		}
		return m, m.loadBoard()

	case priceCreatedMsg:
		if msg.err != nil {
			m.setError(rejection(msg.err))
			return m, m.reopenForm(msg.draft, msg.err)
		}
		m.setStatus("Created %s at %s for %s", msg.card.DisplayID(),
			formatter.FormatPrice(msg.card.UnitPrice),
			formatter.FormatRange(msg.card.StartDate, msg.card.EndDate))
		return m, m.loadBoard()

	case dbChangedMsg:
		return m, tea.Batch(m.loadBoard(), m.waitForChange())
	}

	if m.form != nil {
		return m, m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

// rejection prefixes overlap errors so the status line reads as a refusal.
func rejection(err error) error {
	var overlap *domain.OverlapError
	if errors.As(err, &overlap) {
		return fmt.Errorf("rejected: %w", err)
	}
	return err
}

func (m *timelineModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.Cancel() {
			m.setStatus("Cancelled")
			m.relayout()
		}
		return nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.New):
		return m.startForm()

	case key.Matches(msg, m.keys.Refresh):
		return m.loadBoard()
	}

	// Everything below changes the window, which invalidates the scale an
	// active gesture was started with.
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.nav.Previous()
	case key.Matches(msg, m.keys.Next):
		m.nav.Next()
	case key.Matches(msg, m.keys.Today):
		m.nav.Today()
	case key.Matches(msg, m.keys.ZoomDay):
		m.nav.SetZoom(domain.ZoomDay)
	case key.Matches(msg, m.keys.ZoomWeek):
		m.nav.SetZoom(domain.ZoomWeek)
	case key.Matches(msg, m.keys.ZoomMonth):
		m.nav.SetZoom(domain.ZoomMonth)
	case key.Matches(msg, m.keys.ZoomYear):
		m.nav.SetZoom(domain.ZoomYear)
	default:
		return nil
	}
	m.ctrl.Cancel()
	return m.loadBoard()
}

func gestureVerb(mode domain.GestureMode) string {
	switch mode {
	case domain.GestureResizeStart:
		return "Resizing start of"
	case domain.GestureResizeEnd:
		return "Resizing end of"
	default:
		return "Moving"
	}
}

func (m *timelineModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.view == nil {
		return nil
	}
	x := m.view.GridX(msg.X)
	g, active := m.ctrl.Active()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		hit, mode, ok := m.view.HitTest(msg.X, msg.Y)
		if !ok {
			return nil
		}
		if err := m.ctrl.BeginGesture(mode, hit.Card, x); err != nil {
			m.app.logger().Warn("timeline gesture rejected", "error", err, "card_id", hit.Card.ID)
			return nil
		}
		m.setStatus("%s %s %s", gestureVerb(mode), hit.Card.ProductCode,
			formatter.FormatRange(hit.Card.StartDate, hit.Card.EndDate))
		m.relayout()

	case tea.MouseActionMotion:
		if !active {
			return nil
		}
		days, err := m.ctrl.UpdateGesture(x)
		if err != nil {
			m.app.logger().Warn("timeline gesture update failed", "error", err)
			return nil
		}
		start, end := timeline.ApplyDelta(g.Mode, g.InitialStart, g.InitialEnd, days)
		m.setStatus("%s %+d days: %s", gestureVerb(g.Mode), days, formatter.FormatRange(start, end))
		m.relayout()

	case tea.MouseActionRelease:
		if !active {
			return nil
		}
		res, err := m.ctrl.EndGesture(x)
		if err != nil {
			m.app.logger().Warn("timeline gesture end failed", "error", err)
			return nil
		}
		m.relayout()
		if !res.Committed {
			m.setStatus("No change")
			return nil
		}
		return m.flushCommits()
	}
	return nil
}

// flushCommits sends every queued gesture result to the service.
func (m *timelineModel) flushCommits() tea.Cmd {
	pending := m.pending
	m.pending = nil
	ctx, svc := m.ctx, m.app.Prices

	cmds := make([]tea.Cmd, 0, len(pending))
	for _, p := range pending {
		cmds = append(cmds, func() tea.Msg {
			card, err := svc.Reschedule(ctx, p.cardID, p.start, p.end)
			return rescheduledMsg{card: card, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m *timelineModel) startForm() tea.Cmd {
	if m.board == nil || len(m.board.Resources) == 0 {
		m.setError(errors.New("add a product first: scalehouse product add --code CODE"))
		return nil
	}
	m.ctrl.Cancel()
	m.draft = &priceDraft{Start: m.nav.Anchor().Format(domain.DateLayout)}
	m.formErr = nil
	m.form = newPriceForm(m.draft, m.board.Resources)
	return m.form.Init()
}

// reopenForm puts a refused draft back on screen with the reason, so the
// user can fix the dates instead of typing everything again.
func (m *timelineModel) reopenForm(d priceDraft, err error) tea.Cmd {
	if m.board == nil || len(m.board.Resources) == 0 {
		return nil
	}
	m.ctrl.Cancel()
	m.draft = &d
	m.formErr = refusalLines(err)
	m.form = newPriceForm(m.draft, m.board.Resources)
	return m.form.Init()
}

// refusalLines lists the conflicting cards of an overlap refusal, or the
// plain error text otherwise.
func refusalLines(err error) []string {
	var overlap *domain.OverlapError
	if !errors.As(err, &overlap) {
		return []string{err.Error()}
	}
	lines := []string{fmt.Sprintf("%s overlaps:", formatter.FormatRange(overlap.Start, overlap.End))}
	for _, c := range overlap.Conflicts {
		lines = append(lines, fmt.Sprintf("  %s at %s",
			formatter.FormatRange(c.StartDate, c.EndDate), formatter.FormatPrice(c.UnitPrice)))
	}
	return lines
}

func (m *timelineModel) closeForm() {
	m.form, m.draft, m.formErr = nil, nil, nil
}

func (m *timelineModel) updateForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		m.setStatus("Cancelled")
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		// The draft travels with the request and comes back on refusal.
		d := *m.draft
		m.closeForm()
		return m.createPrice(d)
	case huh.StateAborted:
		m.closeForm()
		m.setStatus("Cancelled")
		return nil
	}
	return cmd
}

func (m *timelineModel) createPrice(d priceDraft) tea.Cmd {
	ctx, svc := m.ctx, m.app.Prices
	return func() tea.Msg {
		c, err := d.card()
		if err != nil {
			return priceCreatedMsg{draft: d, err: err}
		}
		if err := svc.Create(ctx, c); err != nil {
			return priceCreatedMsg{draft: d, err: err}
		}
		return priceCreatedMsg{draft: d, card: c}
	}
}

func (m *timelineModel) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		body := m.form.View()
		if len(m.formErr) > 0 {
			body = formatter.StyleRed.Render(strings.Join(m.formErr, "\n")) + "\n\n" + body
		}
		return formatter.RenderBox("New price", body)
	}

	var b strings.Builder
	if m.view == nil {
		b.WriteString(formatter.Dim("Loading…"))
	} else {
		b.WriteString(m.view.String())
		if len(m.board.Resources) == 0 {
			b.WriteString("\n" + formatter.Dim("No products yet. Add one with: scalehouse product add --code CODE"))
		}
		for _, w := range m.board.Warnings {
			b.WriteString("\n" + formatter.StyleRed.Render("▲ "+w))
		}
	}
	b.WriteString("\n\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(formatter.StyleRed.Render(m.status))
		} else {
			b.WriteString(formatter.Dim(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
