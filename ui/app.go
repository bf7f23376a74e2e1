package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gitref/catalog"
	"gitref/examples"
	"gitref/filter"
	"gitref/model"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeParam
)

const (
	sidebarWidth    = 32
	suggestionLimit = 3
)

type App struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	copy    func(string) error
	keys    keyMap

	criteria    model.FilterCriteria
	view        model.FilteredView
	suggestions []model.Command

	// UI state
	mode    mode
	cursor  int
	example int
	width   int
	height  int
	err     string
	status  string

	// Search
	searchInput textinput.Model

	// Detail pane
	detail viewport.Model

	// Param input
	paramNames     []string
	paramValues    map[string]string
	paramIndex     int
	paramInput     textinput.Model
	pendingExample string
}

// Option customizes an App.
type Option func(*App)

// WithLogger sets the logger used for interaction events.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(a *App) {
		a.copy = fn
	}
}

// NewApp creates the browser over an already loaded catalog, starting with
// the given criteria.
func NewApp(c *catalog.Catalog, criteria model.FilterCriteria, opts ...Option) *App {
	search := textinput.New()
	search.Placeholder = "commit, branch, merge..."
	search.Prompt = "/ "
	search.Width = sidebarWidth - 4
	search.SetValue(criteria.Search)

	app := &App{
		catalog:     c,
		logger:      slog.New(slog.DiscardHandler),
		copy:        clipboard.WriteAll,
		keys:        defaultKeyMap(),
		criteria:    criteria,
		searchInput: search,
		detail:      viewport.New(80, 10),
		paramValues: make(map[string]string),
	}
	for _, opt := range opts {
		opt(app)
	}

	app.refilter()
	return app
}

func (a *App) Init() tea.Cmd {
	return nil
}

// Criteria returns the active filter criteria.
func (a *App) Criteria() model.FilterCriteria {
	return a.criteria
}

// Filtered returns the view the list is showing.
func (a *App) Filtered() model.FilteredView {
	return a.view
}

// Selected returns the command under the cursor.
func (a *App) Selected() (model.Command, bool) {
	if a.cursor < 0 || a.cursor >= len(a.view.Records) {
		return model.Command{}, false
	}
	return a.view.Records[a.cursor], true
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width - 4   // account for app padding
		a.height = msg.Height - 2 // account for app padding
		a.resize()
		return a, nil

	case tea.KeyMsg:
		a.err = ""
		a.status = ""

		switch a.mode {
		case modeBrowse:
			return a.updateBrowse(msg)
		case modeSearch:
			return a.updateSearch(msg)
		case modeParam:
			return a.updateParam(msg)
		}
	}

	return a, nil
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
			a.selectionChanged()
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.view.Records)-1 {
			a.cursor++
			a.selectionChanged()
		}

	case key.Matches(msg, a.keys.NextTier):
		a.setTier(a.criteria.Tier.Next())

	case key.Matches(msg, a.keys.PrevTier):
		a.setTier(a.criteria.Tier.Prev())

	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		return a, a.searchInput.Focus()

	case key.Matches(msg, a.keys.PrevExample):
		if a.example > 0 {
			a.example--
			a.refreshDetail()
		}

	case key.Matches(msg, a.keys.NextExample):
		if a.example < len(a.selectedExamples())-1 {
			a.example++
			a.refreshDetail()
		}

	case key.Matches(msg, a.keys.Copy):
		return a.copySelected()

	case key.Matches(msg, a.keys.ScrollUp):
		a.detail.LineUp(1)

	case key.Matches(msg, a.keys.ScrollDown):
		a.detail.LineDown(1)

	case key.Matches(msg, a.keys.Clear):
		a.criteria = model.FilterCriteria{Tier: model.TierAll}
		a.searchInput.SetValue("")
		a.refilter()

	case msg.String() == "esc":
		a.setSearch("")

	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 0 && n <= len(model.Tiers) {
			a.setTier(model.Tier(n))
		}
	}

	return a, nil
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.mode = modeBrowse
		a.searchInput.Blur()
		a.setSearch("")
		return a, nil

	case "enter":
		a.mode = modeBrowse
		a.searchInput.Blur()
		return a, nil

	case "up":
		if a.cursor > 0 {
			a.cursor--
			a.selectionChanged()
		}
		return a, nil

	case "down":
		if a.cursor < len(a.view.Records)-1 {
			a.cursor++
			a.selectionChanged()
		}
		return a, nil

	default:
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		if v := a.searchInput.Value(); v != a.criteria.Search {
			a.criteria.Search = v
			a.refilter()
		}
		return a, cmd
	}
}

func (a *App) updateParam(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.mode = modeBrowse
		return a, nil

	case "enter":
		// Save current param value
		a.paramValues[a.paramNames[a.paramIndex]] = strings.TrimSpace(a.paramInput.Value())
		a.paramIndex++

		if a.paramIndex >= len(a.paramNames) {
			a.mode = modeBrowse
			a.copyText(examples.SubstituteParams(a.pendingExample, a.paramValues))
			return a, nil
		}

		// Next param
		a.paramInput.SetValue("")
		a.paramInput.Placeholder = a.paramNames[a.paramIndex]
		return a, nil

	default:
		var cmd tea.Cmd
		a.paramInput, cmd = a.paramInput.Update(msg)
		return a, cmd
	}
}

func (a *App) setTier(t model.Tier) {
	a.criteria.Tier = t
	a.refilter()
}

func (a *App) setSearch(text string) {
	a.searchInput.SetValue(text)
	if a.criteria.Search == text {
		return
	}
	a.criteria.Search = text
	a.refilter()
}

// refilter recomputes the view for the current criteria and moves the
// cursor back to the first command.
func (a *App) refilter() {
	a.view = filter.Apply(a.catalog, a.criteria)
	a.suggestions = nil
	if a.view.Matched() == 0 && strings.TrimSpace(a.criteria.Search) != "" {
		a.suggestions = filter.Suggest(a.catalog, a.criteria.Search, suggestionLimit)
	}
	a.cursor = 0
	a.example = 0

	a.logger.Debug("filter",
		"tier", a.criteria.Tier.String(),
		"search", a.criteria.Search,
		"matched", a.view.Matched(),
	)
	a.refreshDetail()
}

func (a *App) selectionChanged() {
	a.example = 0
	a.refreshDetail()
}

func (a *App) selectedExamples() []string {
	cmd, ok := a.Selected()
	if !ok {
		return nil
	}
	return examples.Split(cmd.Usage)
}

// selectedExample is the highlighted example, or the command name when the
// command has no examples.
func (a *App) selectedExample() (string, bool) {
	cmd, ok := a.Selected()
	if !ok {
		return "", false
	}
	exs := examples.Split(cmd.Usage)
	if len(exs) == 0 {
		return cmd.Name, true
	}
	return exs[min(a.example, len(exs)-1)], true
}

func (a *App) copySelected() (tea.Model, tea.Cmd) {
	ex, ok := a.selectedExample()
	if !ok {
		a.err = "Nothing to copy"
		return a, nil
	}

	params := examples.ExtractParams(ex)
	if len(params) == 0 {
		a.copyText(ex)
		return a, nil
	}

	a.mode = modeParam
	a.paramNames = params
	a.paramValues = make(map[string]string)
	a.paramIndex = 0
	a.pendingExample = ex
	a.paramInput = textinput.New()
	a.paramInput.Placeholder = params[0]
	return a, a.paramInput.Focus()
}

func (a *App) copyText(text string) {
	if err := a.copy(text); err != nil {
		a.err = "Could not copy to clipboard: " + err.Error()
		a.logger.Error("copy example", "err", err)
		return
	}
	a.status = "Copied: " + text
	a.logger.Info("copy example", "text", text)
}

func (a *App) mainWidth() int {
	return max(a.width-sidebarWidth-3, 20)
}

func (a *App) listHeight() int {
	return max(a.height-a.detail.Height-8, 3)
}

func (a *App) resize() {
	a.detail.Width = a.mainWidth() - 2
	a.detail.Height = max(a.height/2-2, 4)
	a.refreshDetail()
}

func (a *App) refreshDetail() {
	cmd, ok := a.Selected()
	if !ok {
		a.detail.SetContent("")
		return
	}
	a.detail.SetContent(a.renderDetail(cmd))
	a.detail.GotoTop()
}

func importanceLabel(rank int) string {
	return fmt.Sprintf("Importance #%d", rank)
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("gitref"))
	b.WriteString(mutedStyle.Render("Git command reference"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(), a.renderMain()))
	b.WriteString("\n")

	// Param input
	if a.mode == modeParam {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Value for <%s>: ", a.paramNames[a.paramIndex])))
		b.WriteString(a.paramInput.View())
		b.WriteString("\n")
	}

	// Status/error
	if a.err != "" {
		b.WriteString(errorStyle.Render("Error: " + a.err))
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(successStyle.Render(a.status))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString(a.renderHelp())

	return appStyle.Render(b.String())
}

func (a *App) tierCount(t model.Tier) int {
	if t != model.TierAll {
		return a.view.Counts[t]
	}
	n := 0
	for _, tier := range model.Tiers {
		n += a.view.Counts[tier]
	}
	return n
}

func (a *App) renderSidebar() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("TIERS"))
	b.WriteString("\n")
	for _, t := range append([]model.Tier{model.TierAll}, model.Tiers...) {
		prefix := "  "
		style := normalStyle
		if t == a.criteria.Tier {
			prefix = "▸ "
			style = selectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d %s", prefix, int(t), t.Label())))
		b.WriteString(" ")
		b.WriteString(mutedStyle.Render(strconv.Itoa(a.tierCount(t))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("SEARCH"))
	b.WriteString("\n")
	b.WriteString(a.searchInput.View())
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("STATISTICS"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total commands: %d\n", a.view.Total))
	b.WriteString(fmt.Sprintf("Filtered: %d", a.view.Matched()))

	return sidebarStyle.Width(sidebarWidth).Render(b.String())
}

func (a *App) renderMain() string {
	width := a.mainWidth()
	list := lipgloss.NewStyle().Height(a.listHeight()).Render(a.renderList(a.listHeight(), width))
	detail := borderStyle.Width(width - 2).Render(a.detail.View())
	return lipgloss.JoinVertical(lipgloss.Left, list, detail)
}

func (a *App) renderList(height, width int) string {
	if len(a.view.Records) == 0 {
		var b strings.Builder
		b.WriteString(warningStyle.Render("No commands match the current filters."))
		if len(a.suggestions) > 0 {
			names := make([]string, len(a.suggestions))
			for i, s := range a.suggestions {
				names[i] = s.Name
			}
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("Did you mean: " + strings.Join(names, ", ")))
		}
		return b.String()
	}

	start := 0
	if a.cursor >= height {
		start = a.cursor - height + 1
	}
	end := min(start+height, len(a.view.Records))

	var lines []string
	for i := start; i < end; i++ {
		cmd := a.view.Records[i]
		prefix := "  "
		style := normalStyle
		if i == a.cursor {
			prefix = "▸ "
			style = selectedStyle
		}

		head := style.Render(prefix) + rankStyle.Render(fmt.Sprintf("#%03d", cmd.Rank)) + " " + style.Render(cmd.Name)
		room := width - lipgloss.Width(head) - 3
		if room > 0 && cmd.Description != "" {
			head += mutedStyle.Render(" - " + truncate.StringWithTail(cmd.Description, uint(room), "…"))
		}
		lines = append(lines, head)
	}

	return strings.Join(lines, "\n")
}

func (a *App) renderDetail(cmd model.Command) string {
	width := max(a.detail.Width, 20)

	var b strings.Builder
	b.WriteString(commandStyle.Render(cmd.Name))
	b.WriteString("  ")
	b.WriteString(tierBadge(cmd.Rank))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(cmd.Description))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Usage"))
	b.WriteString("\n")
	exs := examples.Split(cmd.Usage)
	if len(exs) == 0 {
		b.WriteString(mutedStyle.Render("No usage examples."))
	}
	for i, ex := range exs {
		prefix := "  $ "
		style := exampleStyle
		if i == a.example {
			prefix = "▸ $ "
			style = selectedExampleStyle
		}
		b.WriteString(style.Width(width).Render(prefix + ex))
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) renderHelp() string {
	switch a.mode {
	case modeSearch:
		return helpStyle.Render("type to filter • enter: done • esc: clear")
	case modeParam:
		return helpStyle.Render("enter: next value • esc: cancel")
	}

	var parts []string
	for _, k := range a.keys.helpBindings() {
		h := k.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
