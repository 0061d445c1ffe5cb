package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"

	"github.com/grovetools/pkgnav/internal/repo"
	"github.com/grovetools/pkgnav/internal/status"
)

func testModel() *Model {
	m := &Model{
		repos: []repo.Repository{
			{Name: "alacritty-git"},
			{Name: "mesa-git"},
			{Name: "Zsh-git"},
		},
		statuses:    map[string]status.SyncStatus{},
		keys:        DefaultKeyMap,
		filterInput: textinput.New(),
	}
	m.applyFilter()
	return m
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("Alacritty-git", "alac"))
	assert.True(t, containsFold("mesa-git", "GIT"))
	assert.False(t, containsFold("mesa-git", "zsh"))
	assert.True(t, containsFold("anything", ""))
}

func TestApplyFilterNarrowsVisible(t *testing.T) {
	m := testModel()
	assert.Len(t, m.visible, 3)

	m.filterInput.SetValue("git")
	m.applyFilter()
	assert.Len(t, m.visible, 3)

	m.filterInput.SetValue("zsh")
	m.applyFilter()
	assert.Len(t, m.visible, 1)
	assert.Equal(t, "Zsh-git", m.visible[0].Name)
}

func TestApplyFilterClampsCursor(t *testing.T) {
	m := testModel()
	m.cursor = 2

	m.filterInput.SetValue("mesa")
	m.applyFilter()
	assert.Equal(t, 0, m.cursor)

	m.filterInput.SetValue("no-match")
	m.applyFilter()
	assert.Empty(t, m.visible)
	assert.Equal(t, 0, m.cursor)
	assert.Nil(t, m.selected())
}

func TestSelected(t *testing.T) {
	m := testModel()
	assert.Equal(t, "alacritty-git", m.selected().Name)

	m.cursor = 2
	assert.Equal(t, "Zsh-git", m.selected().Name)
}

func TestBehindRepos(t *testing.T) {
	m := testModel()
	m.statuses = map[string]status.SyncStatus{
		"alacritty-git": status.StatusUpToDate,
		"mesa-git":      status.BehindBy(4),
		"Zsh-git":       status.BehindBy(1),
	}

	behind := m.behindRepos()
	assert.Len(t, behind, 2)
	assert.Equal(t, "mesa-git", behind[0].Name)
	assert.Equal(t, "Zsh-git", behind[1].Name)
}
