package ui

import (
	"errors"
	"testing"

	"gitref/catalog"
	"gitref/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]model.Command{
		{Name: "git status", Description: "Show the working tree status", Rank: 1, Usage: "git status, git status -s"},
		{Name: "git push", Description: "Update remote refs", Rank: 4, Usage: "git push, git push -u origin <branch>"},
		{Name: "git rebase -i", Description: "Rewrite commits interactively", Rank: 45, Usage: "git rebase -i HEAD~3"},
		{Name: "git bisect", Description: "Find the commit that introduced a bug", Rank: 120, Usage: ""},
	})
	require.NoError(t, err)
	return c
}

type clipboardSpy struct {
	copied []string
	err    error
}

func (s *clipboardSpy) write(text string) error {
	if s.err != nil {
		return s.err
	}
	s.copied = append(s.copied, text)
	return nil
}

func newTestApp(t *testing.T, criteria model.FilterCriteria) (*App, *clipboardSpy) {
	t.Helper()
	spy := &clipboardSpy{}
	app := NewApp(testCatalog(t), criteria, WithClipboard(spy.write))
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, spy
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(app *App, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		app.Update(msg)
	}
}

func selectedName(t *testing.T, app *App) string {
	t.Helper()
	cmd, ok := app.Selected()
	require.True(t, ok)
	return cmd.Name
}

func TestApp_InitialCriteria(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{Tier: model.TierEssential})

	assert.Equal(t, 2, app.Filtered().Matched())
	assert.Equal(t, "git status", selectedName(t, app))
	assert.Equal(t, 4, app.Filtered().Total)
}

func TestApp_Navigation(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{})

	press(app, runes("j"))
	assert.Equal(t, "git push", selectedName(t, app))

	press(app, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "git bisect", selectedName(t, app), "cursor stops at the last command")

	press(app, runes("k"))
	assert.Equal(t, "git rebase -i", selectedName(t, app))
}

func TestApp_TierSelection(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{})

	press(app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.TierEssential, app.Criteria().Tier)
	assert.Equal(t, 2, app.Filtered().Matched())

	press(app, runes("3"))
	assert.Equal(t, model.TierAdvanced, app.Criteria().Tier)
	assert.Equal(t, "git rebase -i", selectedName(t, app))

	press(app, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, model.TierIntermediate, app.Criteria().Tier)
	_, ok := app.Selected()
	assert.False(t, ok)

	press(app, runes("0"))
	assert.Equal(t, model.TierAll, app.Criteria().Tier)
	assert.Equal(t, 4, app.Filtered().Matched())
}

func TestApp_Search(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{})

	press(app, runes("/"))
	require.Equal(t, modeSearch, app.mode)

	press(app, runes("r"), runes("e"), runes("b"))
	assert.Equal(t, "reb", app.Criteria().Search)
	assert.Equal(t, "git rebase -i", selectedName(t, app))

	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, "reb", app.Criteria().Search, "enter keeps the search")

	press(app, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, "", app.Criteria().Search, "esc clears the search")
	assert.Equal(t, 4, app.Filtered().Matched())
}

func TestApp_SearchKeepsQuitKeyTypeable(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{})

	press(app, runes("/"), runes("q"))
	assert.Equal(t, modeSearch, app.mode)
	assert.Equal(t, "q", app.Criteria().Search)
}

func TestApp_NoMatchSuggests(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{})

	press(app, runes("/"))
	for _, r := range "bisct" {
		press(app, runes(string(r)))
	}
	assert.Equal(t, 0, app.Filtered().Matched())
	require.NotEmpty(t, app.suggestions)
	assert.Equal(t, "git bisect", app.suggestions[0].Name)
	assert.Contains(t, app.View(), "Did you mean: git bisect")
}

func TestApp_ClearFilters(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{Tier: model.TierSpecific, Search: "bug"})
	require.Equal(t, 1, app.Filtered().Matched())

	press(app, runes("c"))
	assert.Equal(t, model.FilterCriteria{Tier: model.TierAll}, app.Criteria())
	assert.Equal(t, 4, app.Filtered().Matched())
}

func TestApp_CopyExample(t *testing.T) {
	t.Run("copies the highlighted example", func(t *testing.T) {
		app, spy := newTestApp(t, model.FilterCriteria{})

		press(app, runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, []string{"git status -s"}, spy.copied)
		assert.Contains(t, app.View(), "Copied: git status -s")
	})

	t.Run("asks for placeholder values first", func(t *testing.T) {
		app, spy := newTestApp(t, model.FilterCriteria{})

		press(app, runes("j"), runes("l"), runes("y"))
		require.Equal(t, modeParam, app.mode)
		assert.Contains(t, app.View(), "Value for <branch>")

		for _, r := range "main" {
			press(app, runes(string(r)))
		}
		press(app, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, modeBrowse, app.mode)
		assert.Equal(t, []string{"git push -u origin main"}, spy.copied)
	})

	t.Run("esc cancels placeholder prompt", func(t *testing.T) {
		app, spy := newTestApp(t, model.FilterCriteria{})

		press(app, runes("j"), runes("l"), runes("y"), tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, modeBrowse, app.mode)
		assert.Empty(t, spy.copied)
	})

	t.Run("copies the name when there are no examples", func(t *testing.T) {
		app, spy := newTestApp(t, model.FilterCriteria{Tier: model.TierSpecific})

		press(app, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, []string{"git bisect"}, spy.copied)
	})

	t.Run("reports clipboard failure", func(t *testing.T) {
		app, spy := newTestApp(t, model.FilterCriteria{})
		spy.err = errors.New("no clipboard utility")

		press(app, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Contains(t, app.View(), "Could not copy to clipboard: no clipboard utility")
	})

	t.Run("nothing selected", func(t *testing.T) {
		app, spy := newTestApp(t, model.FilterCriteria{Tier: model.TierTechnical})

		press(app, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Empty(t, spy.copied)
		assert.Contains(t, app.View(), "Nothing to copy")
	})
}

func TestApp_View(t *testing.T) {
	t.Run("loading before first resize", func(t *testing.T) {
		app := NewApp(testCatalog(t), model.FilterCriteria{})
		assert.Equal(t, "Loading...", app.View())
	})

	t.Run("renders sidebar list and detail", func(t *testing.T) {
		app, _ := newTestApp(t, model.FilterCriteria{})
		out := app.View()

		assert.Contains(t, out, "Essential (1-10)")
		assert.Contains(t, out, "Specific (101+)")
		assert.Contains(t, out, "Total commands: 4")
		assert.Contains(t, out, "Filtered: 4")
		assert.Contains(t, out, "#001")
		assert.Contains(t, out, "#120")
		assert.Contains(t, out, "Importance #1")
		assert.Contains(t, out, "Show the working tree status")
		assert.Contains(t, out, "$ git status -s")
	})

	t.Run("empty result", func(t *testing.T) {
		app, _ := newTestApp(t, model.FilterCriteria{Tier: model.TierTechnical})
		assert.Contains(t, app.View(), "No commands match the current filters.")
	})
}

func TestApp_Quit(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{})

	_, cmd := app.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTierCount(t *testing.T) {
	app, _ := newTestApp(t, model.FilterCriteria{Search: "commit"})

	assert.Equal(t, 1, app.tierCount(model.TierAdvanced))
	assert.Equal(t, 1, app.tierCount(model.TierSpecific))
	assert.Equal(t, 2, app.tierCount(model.TierAll))
}

func TestTierBadge(t *testing.T) {
	assert.Contains(t, tierBadge(45), "Importance #45")
	assert.Contains(t, tierBadge(101), "Importance #101")
}
