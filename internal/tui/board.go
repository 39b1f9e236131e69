// Package tui implements a terminal UI for duewatch boards.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/duewatch/internal/alert"
	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/clock"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewConfirmDelete
)

// Layout constants.
const (
	boardChrome = 2 // blank line + status bar below the column area
	errorChrome = 1 // extra line when error toast is displayed
	maxTextRows = 2
)

// keyMap holds the board's key bindings.
type keyMap struct {
	Quit     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	HideDone key.Binding
	Yes      key.Binding
	No       key.Binding
	Dismiss  [len(alert.Kinds)]key.Binding
}

func defaultKeys() keyMap {
	km := keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Left:     key.NewBinding(key.WithKeys("h", "left")),
		Right:    key.NewBinding(key.WithKeys("l", "right")),
		Up:       key.NewBinding(key.WithKeys("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Delete:   key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "del")),
		HideDone: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "completed")),
		Yes:      key.NewBinding(key.WithKeys("y", "Y")),
		No:       key.NewBinding(key.WithKeys("n", "N", "esc", "q")),
	}
	for i, k := range alert.Kinds {
		n := strconv.Itoa(i + 1)
		km.Dismiss[i] = key.NewBinding(key.WithKeys(n), key.WithHelp(n, "dismiss "+k.String()))
	}
	return km
}

// Board is the top-level bubbletea model.
type Board struct {
	cfg       *config.Config
	store     *store.TaskStore
	owner     *store.User
	session   *alert.Session
	clock     clock.Clock
	keys      keyMap
	refresh   time.Duration
	hideDone  bool
	tasks     []*task.Task
	alerts    alert.Alerts
	columns   []column
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error

	// Delete confirmation.
	deleteID   int
	deleteText string
}

// column groups the tasks of one category in urgency order.
type column struct {
	category  config.CategoryConfig
	tasks     []*task.Task
	scrollOff int // first visible row index
}

// NewBoard creates a Board showing owner's tasks. The board keeps one alert
// session for its whole lifetime.
func NewBoard(cfg *config.Config, ts *store.TaskStore, owner *store.User, clk clock.Clock) *Board {
	b := &Board{
		cfg:      cfg,
		store:    ts,
		owner:    owner,
		session:  alert.NewSession(),
		clock:    clk,
		keys:     defaultKeys(),
		refresh:  cfg.RefreshInterval(),
		hideDone: cfg.TUI.HideCompleted,
	}
	b.loadTasks()
	return b
}

// SetNow overrides the clock used for classification (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.clock = clock.Func(fn)
	b.regroup()
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tickCmd(b.refresh)
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.MouseMsg:
		return b.handleMouse(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.clampRow()
		return b, nil
	case ReloadMsg:
		b.loadTasks()
		return b, nil
	case TickMsg:
		b.regroup()
		return b, tickCmd(b.refresh)
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	if b.view == viewConfirmDelete {
		return b.viewDeleteConfirm()
	}
	return b.viewBoard()
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewBoard:
		return b.handleBoardKey(msg)
	case viewConfirmDelete:
		return b.handleDeleteKey(msg)
	}
	return b, nil
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for i, binding := range b.keys.Dismiss {
		if key.Matches(msg, binding) {
			b.session.Dismiss(alert.Kinds[i])
			b.regroup()
			return b, nil
		}
	}

	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Left):
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case key.Matches(msg, b.keys.Right):
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case key.Matches(msg, b.keys.Down):
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.tasks)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case key.Matches(msg, b.keys.Up):
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	case key.Matches(msg, b.keys.Toggle):
		return b.executeToggle()
	case key.Matches(msg, b.keys.Delete):
		b.handleDeleteStart()
	case key.Matches(msg, b.keys.HideDone):
		b.hideDone = !b.hideDone
		b.regroup()
	}
	return b, nil
}

func (b *Board) handleDeleteStart() {
	if t := b.selectedTask(); t != nil {
		b.deleteID = t.ID
		b.deleteText = t.Text
		b.view = viewConfirmDelete
	}
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Yes):
		return b.executeDelete()
	case key.Matches(msg, b.keys.No):
		b.view = viewBoard
	}
	return b, nil
}

// handleMouse handles mouse click events for card selection.
func (b *Board) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return b, nil
	}
	if b.view != viewBoard || len(b.columns) == 0 {
		return b, nil
	}

	colWidth := b.columnWidth()
	clickedCol := msg.X / colWidth
	if clickedCol >= len(b.columns) {
		return b, nil
	}

	col := &b.columns[clickedCol]
	lineY := msg.Y - b.bannerHeight() - 1
	if col.scrollOff > 0 {
		lineY-- // "↑ N more" indicator
	}
	b.activeCol = clickedCol
	if lineY < 0 {
		b.clampRow()
		return b, nil
	}

	cardLine := 0
	for rowIdx := col.scrollOff; rowIdx < len(col.tasks); rowIdx++ {
		cardH := b.cardHeight(col.tasks[rowIdx], colWidth)
		if lineY < cardLine+cardH {
			b.activeRow = rowIdx
			b.ensureVisible()
			return b, nil
		}
		cardLine += cardH
	}

	b.clampRow()
	return b, nil
}

// loadTasks reads the owner's document and rebuilds the board.
func (b *Board) loadTasks() {
	doc, err := b.store.Load(b.owner.ID)
	if err != nil {
		b.err = err
		return
	}
	b.err = nil
	b.tasks = doc.Tasks
	b.regroup()
}

// regroup re-classifies every task at the current instant. Alerts cover all
// tasks; columns skip completed ones when they are hidden.
func (b *Board) regroup() {
	now := b.clock.Now()
	b.alerts = b.session.Aggregate(b.tasks, now)

	shown := b.tasks
	if b.hideDone {
		shown = nil
		for _, t := range b.tasks {
			if !t.Completed {
				shown = append(shown, t)
			}
		}
	}

	var selected string
	if col := b.currentColumn(); col != nil {
		selected = col.category.ID
	}

	b.columns = b.columns[:0]
	for _, g := range board.GroupByCategory(b.cfg, shown, now) {
		if len(g.Tasks) == 0 {
			continue
		}
		b.columns = append(b.columns, column{category: g.Category, tasks: g.Tasks})
	}

	// Stay on the same category when it still has tasks.
	for i := range b.columns {
		if b.columns[i].category.ID == selected {
			b.activeCol = i
		}
	}
	if b.activeCol >= len(b.columns) {
		b.activeCol = max(len(b.columns)-1, 0)
	}
	b.clampRow()
}

// selectTask moves the cursor onto the task with id, if it is shown.
func (b *Board) selectTask(id int) {
	for ci := range b.columns {
		for ri, t := range b.columns[ci].tasks {
			if t.ID == id {
				b.activeCol = ci
				b.activeRow = ri
				b.ensureVisible()
				return
			}
		}
	}
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedTask() *task.Task {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.tasks) {
		return col.tasks[b.activeRow]
	}
	return nil
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.tasks) {
		b.activeRow = len(col.tasks) - 1
	}
	b.ensureVisible()
}

// bannerHeight returns the lines taken by alert banners above the columns.
func (b *Board) bannerHeight() int {
	n := len(b.alerts.Visible())
	if n == 0 {
		return 0
	}
	return n + 1 // banners + blank separator
}

// chromeHeight returns the number of lines consumed by non-card elements:
// alert banners above the columns, blank line + status bar below them
// (+ error line when an error is shown).
func (b *Board) chromeHeight() int {
	h := boardChrome + b.bannerHeight()
	if b.err != nil {
		h += errorChrome
	}
	return h
}

// visibleCardsForColumn returns the number of cards that fit in the column,
// accounting for scroll indicator lines ("↑ N more" / "↓ N more") that
// consume vertical space.
func (b *Board) visibleCardsForColumn(col *column, width int) int {
	budget := b.height - b.chromeHeight()
	if budget < 1 {
		return 1
	}

	// Always need 1 line for column header.
	avail := budget - 1

	if col.scrollOff > 0 {
		avail--
	}

	n := b.fitCardsInHeight(col, avail, width)

	if col.scrollOff+n < len(col.tasks) {
		n = max(b.fitCardsInHeight(col, avail-1, width), 1)
	}

	return n
}

// ensureVisible adjusts the active column's scroll offset so the
// selected row is within the visible window.
func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil {
		return
	}
	w := b.columnWidth()

	for range len(col.tasks) + 1 {
		maxVis := b.visibleCardsForColumn(col, w)

		switch {
		case b.activeRow >= col.scrollOff+maxVis:
			col.scrollOff = b.activeRow - maxVis + 1
		case b.activeRow < col.scrollOff:
			col.scrollOff = b.activeRow
		default:
			return
		}
	}
}

func (b *Board) fitCardsInHeight(col *column, avail, width int) int {
	if len(col.tasks) == 0 || avail < 1 {
		return 1
	}

	used := 0
	count := 0
	for i := col.scrollOff; i < len(col.tasks); i++ {
		cardLines := b.cardHeight(col.tasks[i], width)
		if count > 0 && used+cardLines > avail {
			break
		}
		count++
		used += cardLines
		if used >= avail {
			break
		}
	}
	return max(count, 1)
}

func (b *Board) executeToggle() (tea.Model, tea.Cmd) {
	t := b.selectedTask()
	if t == nil {
		return b, nil
	}
	id := t.ID

	var completed bool
	err := b.store.Update(b.owner.ID, func(doc *store.Document) error {
		found, err := doc.Find(id)
		if err != nil {
			return err
		}
		completed = task.Toggle(found)
		return nil
	})
	if err != nil {
		b.err = fmt.Errorf("toggling task #%d: %w", id, err)
		return b, nil
	}

	detail := "pending"
	if completed {
		detail = "done"
	}
	board.LogMutation(b.cfg.Dir(), board.ActionToggle, b.owner.ID, id, detail)

	b.loadTasks()
	b.selectTask(id)
	return b, nil
}

func (b *Board) executeDelete() (tea.Model, tea.Cmd) {
	err := b.store.Update(b.owner.ID, func(doc *store.Document) error {
		return doc.Delete(b.deleteID)
	})
	if err != nil {
		b.err = fmt.Errorf("deleting task #%d: %w", b.deleteID, err)
	} else {
		board.LogMutation(b.cfg.Dir(), board.ActionDelete, b.owner.ID, b.deleteID, b.deleteText)
	}

	b.view = viewBoard
	b.loadTasks()
	return b, nil
}

// WatchPaths returns the paths that should be watched for file changes.
func (b *Board) WatchPaths() []string {
	return []string{b.store.Dir()}
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a board refresh.
type ReloadMsg struct{}

// TickMsg is sent periodically to re-classify deadlines.
type TickMsg struct{}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return TickMsg{} })
}

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

// --- View rendering ---

func (b *Board) viewBoard() string {
	var sections []string
	if banners := b.renderBanners(); banners != "" {
		sections = append(sections, banners, "")
	}

	var boardView string
	if len(b.columns) == 0 {
		boardView = dimStyle.Render("No tasks. Add one with: duewatch add TEXT")
	} else {
		colWidth := b.columnWidth()
		renderedCols := make([]string, len(b.columns))
		for i, col := range b.columns {
			renderedCols[i] = b.renderColumn(i, col, colWidth)
		}
		boardView = lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)
	}

	// Clamp from the bottom (keeping headers at the top) and pad if needed.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	sections = append(sections, boardView, "", b.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBanners renders one line per visible alert bucket. Small buckets
// list their tasks inline.
func (b *Board) renderBanners() string {
	visible := b.alerts.Visible()
	if len(visible) == 0 {
		return ""
	}

	lines := make([]string, 0, len(visible))
	for _, bucket := range visible {
		line := output.BucketStyle(bucket.Kind).Render(output.BannerText(bucket))
		if bucket.Inline() {
			refs := make([]string, len(bucket.Tasks))
			for i, t := range bucket.Tasks {
				refs[i] = fmt.Sprintf("#%d %s", t.ID, t.Text)
			}
			line += "  " + strings.Join(refs, ", ")
		}
		line += dimStyle.Render(fmt.Sprintf("  [%d] dismiss", int(bucket.Kind)+1))
		lines = append(lines, lipgloss.NewStyle().MaxWidth(b.width).Render(line))
	}
	return strings.Join(lines, "\n")
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	// Total rendered width = w * numColumns (JoinHorizontal adds no gaps).
	const maxColWidth = 60
	return min(b.width/len(b.columns), maxColWidth)
}

func (b *Board) renderColumn(colIdx int, col column, width int) string {
	cat := col.category
	label := cat.Name
	if cat.Icon != "" {
		label = cat.Icon + " " + cat.Name
	}
	done := board.Group{Tasks: col.tasks}.Completed()
	headerText := fmt.Sprintf("%s (%d/%d)", label, done, len(col.tasks))
	const headerPad = 2
	headerText = truncate(headerText, width-headerPad)

	var header string
	if colIdx == b.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	} else {
		style := columnHeaderStyle
		if cat.Color != "" {
			style = style.Foreground(lipgloss.Color(cat.Color))
		}
		header = style.Width(width).Render(headerText)
	}

	maxVis := b.visibleCardsForColumn(&col, width)
	start := min(col.scrollOff, len(col.tasks))
	end := min(start+maxVis, len(col.tasks))

	parts := []string{header}

	if start > 0 {
		indicator := fmt.Sprintf("  ↑ %d more", start)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	for rowIdx := start; rowIdx < end; rowIdx++ {
		active := colIdx == b.activeCol && rowIdx == b.activeRow
		parts = append(parts, b.renderCard(col.tasks[rowIdx], active, width))
	}

	if end < len(col.tasks) {
		indicator := fmt.Sprintf("  ↓ %d more", len(col.tasks)-end)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t *task.Task, active bool, width int) string {
	content := strings.Join(b.cardContentLines(t, width), "\n")

	style := cardStyle
	if active {
		style = activeCardStyle
	}
	return style.Width(width - 2).Render(content) //nolint:mnd // border width
}

func (b *Board) cardHeight(t *task.Task, width int) int {
	return len(b.cardContentLines(t, width)) + 2 //nolint:mnd // top and bottom borders
}

func (b *Board) cardContentLines(t *task.Task, width int) []string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := max(width-cardChrome, 1)

	check := "[ ] "
	textStyle := lipgloss.NewStyle()
	if t.Completed {
		check = "[x] "
		textStyle = dimStyle.Strikethrough(true)
	}

	var lines []string
	for i, line := range wrapTitle(t.Text, cardWidth-len(check), maxTextRows) {
		prefix := check
		if i > 0 {
			prefix = strings.Repeat(" ", len(check))
		}
		lines = append(lines, prefix+textStyle.Render(line))
	}

	p := t.Priority.OrDefault()
	meta := priorityStyles[p].Render(string(p))
	if t.Completed {
		meta += "  " + dimStyle.Render("done")
	} else if st, err := urgency.ClassifyTask(t, b.clock.Now()); err == nil && st.Kind != urgency.KindNone {
		meta += "  " + output.StatusStyle(st).Render(st.Label)
	}
	if due := t.Deadline().String(); due != "" {
		meta += "  " + dimStyle.Render(due)
	}
	lines = append(lines, lipgloss.NewStyle().MaxWidth(cardWidth).Render(meta))

	return lines
}

// wrapTitle splits a title across maxLines lines, word-wrapping at word
// boundaries. Each line is at most maxWidth characters.
func wrapTitle(title string, maxWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if lipgloss.Width(title) <= maxWidth || maxLines == 1 {
		return []string{truncate(title, maxWidth)}
	}

	words := strings.Fields(title)
	lines := make([]string, 0, maxLines)
	var current strings.Builder

	for i, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
		} else {
			lines = append(lines, truncate(current.String(), maxWidth))
			current.Reset()
			current.WriteString(word)
			if len(lines) == maxLines-1 {
				// Last line: append all remaining words.
				for _, w := range words[i+1:] {
					current.WriteByte(' ')
					current.WriteString(w)
				}
				break
			}
		}
	}
	if current.Len() > 0 {
		lines = append(lines, truncate(current.String(), maxWidth))
	}
	return lines
}

func (b *Board) renderStatusBar() string {
	pending := 0
	for _, t := range b.tasks {
		if !t.Completed {
			pending++
		}
	}
	completed := "hide"
	if b.hideDone {
		completed = "show"
	}
	status := fmt.Sprintf(" %s | %s | %d tasks, %d pending | space:done d:del 1-3:dismiss c:%s-done q:quit",
		b.cfg.Board.Name, b.owner.Email, len(b.tasks), pending, completed)
	status = truncate(status, b.width)

	if b.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+b.err.Error(), b.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}

	return statusBarStyle.Render(status)
}

func (b *Board) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", b.deleteID, b.deleteText) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	// Trim runes from the end until the display width fits.
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
