package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nJurisch/equipment-pool/internal/mock"
	"github.com/nJurisch/equipment-pool/models"
)

func TestRootModel_NavigatesAndLoadsPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mock.NewMockUserService(ctrl)
	users.EXPECT().ListAll(gomock.Any()).Return([]models.User{{ID: "ada@example.org", Name: "Ada"}}, nil)

	pages := map[string]tea.Model{
		pageMenu:  NewMenuModel(),
		pageUsers: NewUsersModel(context.Background(), users),
	}
	root := NewRootModel(pages, pageMenu, models.NewAppBuildInfo("1.0.0", "", ""))

	var model tea.Model = root
	model, _ = drain(t, model, func() tea.Msg { return NavigateTo{Page: pageUsers} })

	r, ok := model.(RootModel)
	require.True(t, ok)
	_, onUsers := r.current.(*UsersModel)
	assert.True(t, onUsers)
	containsAll(t, r.View(), "USERS", "ada@example.org", "Ada")
}

func TestRootModel_UnknownPageIsIgnored(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu, models.AppBuildInfo{})

	updated, cmd := root.Update(NavigateTo{Page: "nowhere"})
	assert.Nil(t, cmd)
	assert.True(t, updated.(RootModel).isMenuPage())
}

func TestRootModel_BuildInfoOnlyFromMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pages := map[string]tea.Model{
		pageMenu:  NewMenuModel(),
		pageUsers: NewUsersModel(context.Background(), mock.NewMockUserService(ctrl)),
	}
	root := NewRootModel(pages, pageMenu, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"))

	updated, _ := root.Update(runeKey("v"))
	r := updated.(RootModel)
	require.True(t, r.showBuildInfo)
	containsAll(t, r.View(), "ABOUT", "Build version: 1.2.3", "Build commit: abc123")

	updated, _ = r.Update(escKey)
	r = updated.(RootModel)
	assert.False(t, r.showBuildInfo)

	r.current = pages[pageUsers]
	updated, _ = r.Update(runeKey("v"))
	assert.False(t, updated.(RootModel).showBuildInfo)
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel()}, pageMenu, models.AppBuildInfo{})

	updated, cmd := root.Update(ctrlC)
	require.NotNil(t, cmd)
	assert.True(t, updated.(RootModel).quitByUser)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMenuModel_EnterNavigates(t *testing.T) {
	menu := NewMenuModel()

	_, _ = menu.Update(runeKey("j"))
	_, cmd := menu.Update(enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageDevices}, cmd())

	for range menu.items {
		_, _ = menu.Update(runeKey("j"))
	}
	_, cmd = menu.Update(enterKey)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
