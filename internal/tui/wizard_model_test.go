package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-balance-sync/internal/mock"
	"github.com/MKhiriev/go-balance-sync/models"
)

func newTestWizard(t *testing.T) (*mock.MockAgentAdapter, wizardModel) {
	t.Helper()
	ctrl := gomock.NewController(t)
	agent := mock.NewMockAgentAdapter(ctrl)
	return agent, newWizardModel(context.Background(), agent)
}

// step прогоняет сообщение через Update и возвращает типизированную модель
func step(t *testing.T, m wizardModel, msg tea.Msg) (wizardModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(wizardModel)
	require.True(t, ok)
	return model, cmd
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ─────────────────────────── initiator flow ───────────────────────────

func TestWizard_InitiatorGetsOfferCodes(t *testing.T) {
	agent, m := newTestWizard(t)

	offer := models.PairingCodes{Codes: []string{"BSC|v1|1|2|AAA", "BSC|v1|2|2|BBB"}}
	agent.EXPECT().StartOffer(gomock.Any()).Return(offer, nil)

	m, cmd := step(t, m, keyEnter())
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m, _ = step(t, m, cmd())

	assert.Equal(t, screenShowCodes, m.currentScreen)
	assert.False(t, m.busy)
	assert.Equal(t, offer.Codes, m.codes.codes)
	assert.Contains(t, m.View(), "OFFER CODES")
	assert.Contains(t, m.View(), "BSC|v1|1|2|AAA")
}

func TestWizard_StartOfferFailureShowsOverlay(t *testing.T) {
	agent, m := newTestWizard(t)

	agent.EXPECT().StartOffer(gomock.Any()).Return(models.PairingCodes{}, errors.New("sync already running"))

	m, cmd := step(t, m, keyEnter())
	m, _ = step(t, m, cmd())

	assert.Equal(t, screenRole, m.currentScreen)
	assert.True(t, m.showError)
	assert.Contains(t, m.View(), "sync already running")

	// enter закрывает оверлей, мастер остаётся на выборе роли
	m, _ = step(t, m, keyEnter())
	assert.False(t, m.showError)
}

func TestWizard_InitiatorCompletesAndSeesSummary(t *testing.T) {
	agent, m := newTestWizard(t)

	offer := models.PairingCodes{Codes: []string{"BSC|v1|1|1|AAA"}}
	agent.EXPECT().StartOffer(gomock.Any()).Return(offer, nil)
	agent.EXPECT().CompleteOffer(gomock.Any(), []string{"BSC|v1|1|1|answer"}).
		Return(models.SyncStatus{Active: true, ConnectionState: "connecting"}, nil)

	m, cmd := step(t, m, keyEnter())
	m, _ = step(t, m, cmd())

	// с экрана кодов на ввод ответа
	m, _ = step(t, m, keyEnter())
	require.Equal(t, screenEnterCodes, m.currentScreen)

	m.input.area.SetValue("BSC|v1|1|1|answer\n")
	m, cmd = step(t, m, keyEnter())
	require.NotNil(t, cmd)

	m, _ = step(t, m, cmd())
	assert.Equal(t, screenProgress, m.currentScreen)

	result := models.SyncResult{
		PeerDeviceID:  "peer-1",
		StartedAt:     1_000,
		FinishedAt:    2_000,
		TotalSent:     3,
		TotalReceived: 2,
		TotalUpserted: 2,
		Merge:         models.NewMergeSummary(),
	}
	m, _ = step(t, m, statusMsg{status: models.SyncStatus{
		ConnectionState: "closed",
		Phase:           models.PhaseDone,
		Result:          &result,
	}})

	assert.Equal(t, screenSummary, m.currentScreen)
	assert.NoError(t, m.err)
	assert.Contains(t, m.View(), "SYNC COMPLETE")
	assert.Contains(t, m.View(), "peer-1")
}

// ─────────────────────────── joiner flow ───────────────────────────

func TestWizard_JoinerEntersCodesAndWaits(t *testing.T) {
	agent, m := newTestWizard(t)

	answer := models.PairingCodes{Codes: []string{"BSC|v1|1|1|answer"}}
	agent.EXPECT().JoinOffer(gomock.Any(), []string{"BSC|v1|1|2|AAA", "BSC|v1|2|2|BBB"}).
		Return(answer, nil)

	// вторая строка меню — присоединиться
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = step(t, m, keyEnter())
	require.Equal(t, screenEnterCodes, m.currentScreen)

	m.input.area.SetValue("BSC|v1|1|2|AAA\nBSC|v1|2|2|BBB\n")
	m, cmd := step(t, m, keyEnter())
	require.NotNil(t, cmd)

	m, cmd = step(t, m, cmd())
	assert.Equal(t, screenShowCodes, m.currentScreen)
	assert.Contains(t, m.View(), "ANSWER CODES")
	require.NotNil(t, cmd, "joiner starts polling right away")

	// пока инициатор не подключился, остаёмся на экране кодов
	agent.EXPECT().SyncStatus(gomock.Any()).Return(models.SyncStatus{
		Active:          true,
		Role:            models.RoleJoiner,
		ConnectionState: "answer-created",
	}, nil)
	m, cmd = step(t, m, cmd())
	assert.Equal(t, screenShowCodes, m.currentScreen)
	require.NotNil(t, cmd)

	// обмен пошёл — мастер сам переключается на прогресс
	m, _ = step(t, m, statusMsg{status: models.SyncStatus{
		Active:          true,
		Role:            models.RoleJoiner,
		ConnectionState: "open",
		Phase:           models.PhaseMerging,
		RecordsReceived: 4,
	}})
	assert.Equal(t, screenProgress, m.currentScreen)
	assert.Contains(t, m.View(), "Merging records")
	assert.Contains(t, m.View(), "received 4")
}

func TestWizard_FailedSessionEndsOnSummary(t *testing.T) {
	_, m := newTestWizard(t)
	m.currentScreen = screenProgress

	m, cmd := step(t, m, statusMsg{status: models.SyncStatus{
		ConnectionState: "failed",
		Phase:           models.PhaseFailed,
		Error:           "peer vanished",
	}})

	assert.Nil(t, cmd, "polling stops on a terminal state")
	assert.Equal(t, screenSummary, m.currentScreen)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "peer vanished")
}

func TestWizard_SessionGoneWithoutResult(t *testing.T) {
	_, m := newTestWizard(t)
	m.currentScreen = screenProgress

	m, _ = step(t, m, statusMsg{status: models.SyncStatus{ConnectionState: "idle"}})

	assert.Equal(t, screenSummary, m.currentScreen)
	assert.ErrorContains(t, m.err, "without a result")
}

// ─────────────────────────── quitting ───────────────────────────

func TestWizard_QuitFromRoleScreen(t *testing.T) {
	_, m := newTestWizard(t)

	m, cmd := step(t, m, keyRune('q'))

	assert.True(t, m.quitByUser)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWizard_AbortDuringProgressNeedsConfirm(t *testing.T) {
	agent, m := newTestWizard(t)
	m.currentScreen = screenProgress

	m, _ = step(t, m, keyRune('q'))
	assert.True(t, m.showConfirm)
	assert.Contains(t, m.View(), "Abort the sync session?")

	// n — остаёмся
	m, _ = step(t, m, keyRune('n'))
	assert.False(t, m.showConfirm)
	assert.False(t, m.quitByUser)

	// y — выходим; отмена на агенте уходит отдельной командой
	m, _ = step(t, m, keyRune('q'))
	require.True(t, m.showConfirm)
	m, cmd := step(t, m, keyRune('y'))
	assert.True(t, m.quitByUser)
	require.NotNil(t, cmd)

	agent.EXPECT().CancelSync(gomock.Any()).Return(models.SyncStatus{ConnectionState: "closed"}, nil)
	assert.IsType(t, canceledMsg{}, m.cmdCancelSync()())
}

// ─────────────────────────── helpers ───────────────────────────

func TestCodeLines(t *testing.T) {
	codes := codeLines("  BSC|v1|1|2|AAA \n\nBSC|v1|2|2|BBB\n   \n")

	assert.Equal(t, []string{"BSC|v1|1|2|AAA", "BSC|v1|2|2|BBB"}, codes)
	assert.Nil(t, codeLines("\n  \n"))
}

func TestInputModel_ReadyToSubmit(t *testing.T) {
	input := newInputModel("paste")

	input.area.SetValue("BSC|v1|1|1|AAA")
	assert.False(t, input.readyToSubmit(), "не готов, пока последняя строка не пуста")

	input.area.SetValue("BSC|v1|1|1|AAA\n")
	assert.True(t, input.readyToSubmit())

	input.area.SetValue("\n\n")
	assert.False(t, input.readyToSubmit(), "пустой ввод не отправляем")
}
