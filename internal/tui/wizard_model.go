// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-balance-sync/internal/adapter"
	"github.com/MKhiriev/go-balance-sync/models"
)

// statusPollEvery is the delay between session snapshot polls while the
// wizard waits for the sync to advance.
const statusPollEvery = 500 * time.Millisecond

type screen int

const (
	screenRole screen = iota
	screenShowCodes
	screenEnterCodes
	screenProgress
	screenSummary
)

type wizardModel struct {
	ctx   context.Context
	agent adapter.AgentAdapter

	currentScreen screen
	role          string

	roleSelect roleModel
	codes      codesModel
	input      inputModel
	progress   progressModel
	summary    summaryModel

	// busy блокирует повторную отправку, пока агент не ответил
	busy        bool
	showError   bool
	errorText   string
	showConfirm bool

	quitByUser bool
	err        error
}

func newWizardModel(ctx context.Context, agent adapter.AgentAdapter) wizardModel {
	return wizardModel{
		ctx:        ctx,
		agent:      agent,
		roleSelect: newRoleModel(),
		progress:   newProgressModel(),
	}
}

func (m wizardModel) Init() tea.Cmd {
	return nil
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			if m.currentScreen == screenProgress && !m.showConfirm {
				m.showConfirm = true
				return m, nil
			}
			m.quitByUser = true
			return m, tea.Quit
		}

		if m.showError {
			if key.Matches(keyMsg, keys.enter) || key.Matches(keyMsg, keys.esc) {
				m.showError = false
				m.errorText = ""
			}
			return m, nil
		}
		if m.showConfirm {
			switch {
			case key.Matches(keyMsg, keys.yes):
				m.showConfirm = false
				m.quitByUser = true
				return m, tea.Sequence(m.cmdCancelSync(), tea.Quit)
			case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
				m.showConfirm = false
			}
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case offerCreatedMsg:
		m.busy = false
		if msg.err != nil {
			return m.withError(msg.err)
		}
		m.codes = codesModel{
			title: "OFFER CODES",
			codes: msg.codes.Codes,
			next:  "Press enter once the other device shows its answer codes.",
		}
		m.currentScreen = screenShowCodes
		return m, nil

	case answerCreatedMsg:
		m.busy = false
		if msg.err != nil {
			return m.withError(msg.err)
		}
		m.codes = codesModel{
			title: "ANSWER CODES",
			codes: msg.codes.Codes,
			next:  "Take these codes back to the first device and wait here.",
		}
		m.currentScreen = screenShowCodes
		// джойнер ждёт: опрашиваем агента, пока инициатор не завершит обмен
		return m, m.cmdFetchStatus()

	case exchangeAcceptedMsg:
		m.busy = false
		if msg.err != nil {
			return m.withError(msg.err)
		}
		m.currentScreen = screenProgress
		return m, tea.Batch(m.progress.spinner.Tick, m.cmdFetchStatus())

	case canceledMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenRole:
		return m.updateRole(msg)
	case screenShowCodes:
		return m.updateShowCodes(msg)
	case screenEnterCodes:
		return m.updateEnterCodes(msg)
	case screenProgress:
		return m.updateProgress(msg)
	case screenSummary:
		return m.updateSummary(msg)
	}
	return m, nil
}

func (m wizardModel) updateRole(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.roleSelect.idx > 0 {
			m.roleSelect.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.roleSelect.idx < len(m.roleSelect.items)-1 {
			m.roleSelect.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.busy {
			return m, nil
		}
		if m.roleSelect.idx == 0 {
			m.role = models.RoleInitiator
			m.busy = true
			return m, m.cmdStartOffer()
		}
		m.role = models.RoleJoiner
		m.input = newInputModel("Paste the offer codes shown on the other device.")
		m.currentScreen = screenEnterCodes
	case key.Matches(keyMsg, keys.quit), key.Matches(keyMsg, keys.esc):
		m.quitByUser = true
		return m, tea.Quit
	}
	return m, nil
}

func (m wizardModel) updateShowCodes(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.copy):
			return m, cmdCopyToClipboard(strings.Join(m.codes.codes, "\n"))
		case key.Matches(msg, keys.enter):
			if m.role == models.RoleInitiator {
				m.input = newInputModel("Paste the answer codes shown on the other device.")
				m.currentScreen = screenEnterCodes
				return m, nil
			}
			m.currentScreen = screenProgress
			return m, m.progress.spinner.Tick
		case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
			m.showConfirm = true
		}
	case copiedMsg:
		m.codes.status = "codes copied to clipboard"
		return m, cmdClearStatus()
	case copyFailedMsg:
		m.codes.status = "clipboard unavailable: " + msg.err.Error()
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.codes.status = ""
	case statusMsg:
		return m.applyStatus(msg)
	}
	return m, nil
}

func (m wizardModel) updateEnterCodes(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			if m.role == models.RoleInitiator {
				m.currentScreen = screenShowCodes
			} else {
				m.currentScreen = screenRole
			}
			return m, nil
		case key.Matches(msg, keys.paste):
			text, err := clipboard.ReadAll()
			if err != nil {
				m.input.status = "clipboard unavailable"
				return m, cmdClearStatus()
			}
			m.input.area.InsertString(strings.TrimSpace(text) + "\n")
			m.input.status = ""
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.input.readyToSubmit() {
				if m.busy {
					return m, nil
				}
				codes := codeLines(m.input.area.Value())
				m.busy = true
				m.input.status = ""
				if m.role == models.RoleJoiner {
					return m, m.cmdJoinOffer(codes)
				}
				return m, m.cmdCompleteOffer(codes)
			}
		}
	case clearStatusMsg:
		m.input.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input.area, cmd = m.input.area.Update(msg)
	return m, cmd
}

func (m wizardModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) || key.Matches(msg, keys.esc) {
			m.showConfirm = true
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.progress.spinner, cmd = m.progress.spinner.Update(msg)
		return m, cmd
	case statusMsg:
		return m.applyStatus(msg)
	}
	return m, nil
}

func (m wizardModel) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, keys.enter) || key.Matches(keyMsg, keys.quit) || key.Matches(keyMsg, keys.esc) {
		return m, tea.Quit
	}
	return m, nil
}

// applyStatus folds a session snapshot into the model: terminal states end
// up on the summary screen, anything else keeps the poll loop running.
func (m wizardModel) applyStatus(msg statusMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.failWith(msg.err.Error())
	}

	status := msg.status
	switch {
	case status.Phase == models.PhaseFailed || status.Error != "":
		failure := status.Error
		if failure == "" {
			failure = "sync failed"
		}
		return m.failWith(failure)
	case status.Result != nil:
		m.summary = summaryModel{result: status.Result}
		m.currentScreen = screenSummary
		return m, nil
	case !status.Active:
		return m.failWith("sync session ended without a result")
	}

	m.progress.status = status

	// джойнер сидит на экране кодов; перескакиваем на прогресс, когда обмен пошёл
	if m.currentScreen == screenShowCodes && status.Phase != "" && status.Phase != models.PhaseConnecting {
		m.currentScreen = screenProgress
		return m, tea.Batch(m.progress.spinner.Tick, m.cmdPollStatus())
	}

	return m, m.cmdPollStatus()
}

func (m wizardModel) failWith(failure string) (tea.Model, tea.Cmd) {
	m.summary = summaryModel{failure: failure}
	m.err = errors.New(failure)
	m.currentScreen = screenSummary
	return m, nil
}

func (m wizardModel) withError(err error) (tea.Model, tea.Cmd) {
	m.showError = true
	m.errorText = err.Error()
	return m, nil
}

func (m wizardModel) View() string {
	var body string
	switch m.currentScreen {
	case screenRole:
		body = m.roleSelect.View()
	case screenShowCodes:
		body = m.codes.View()
	case screenEnterCodes:
		body = m.input.View()
	case screenProgress:
		body = m.progress.View()
	case screenSummary:
		body = m.summary.View()
	}

	if m.showConfirm {
		body += "\n\n" + overlayBoxStyle.Render("Abort the sync session?\n\ny yes    n no")
	}
	if m.showError {
		body += "\n\n" + overlayBoxStyle.Render(errorStyle.Render("Error")+"\n\n"+m.errorText+"\n\nenter: close")
	}

	return appStyle.Render(body)
}

func (m wizardModel) cmdStartOffer() tea.Cmd {
	ctx := m.ctx
	agent := m.agent
	return func() tea.Msg {
		codes, err := agent.StartOffer(ctx)
		return offerCreatedMsg{codes: codes, err: err}
	}
}

func (m wizardModel) cmdJoinOffer(codes []string) tea.Cmd {
	ctx := m.ctx
	agent := m.agent
	return func() tea.Msg {
		answer, err := agent.JoinOffer(ctx, codes)
		return answerCreatedMsg{codes: answer, err: err}
	}
}

func (m wizardModel) cmdCompleteOffer(codes []string) tea.Cmd {
	ctx := m.ctx
	agent := m.agent
	return func() tea.Msg {
		_, err := agent.CompleteOffer(ctx, codes)
		return exchangeAcceptedMsg{err: err}
	}
}

func (m wizardModel) cmdFetchStatus() tea.Cmd {
	ctx := m.ctx
	agent := m.agent
	return func() tea.Msg {
		status, err := agent.SyncStatus(ctx)
		return statusMsg{status: status, err: err}
	}
}

func (m wizardModel) cmdPollStatus() tea.Cmd {
	ctx := m.ctx
	agent := m.agent
	return tea.Tick(statusPollEvery, func(time.Time) tea.Msg {
		status, err := agent.SyncStatus(ctx)
		return statusMsg{status: status, err: err}
	})
}

func (m wizardModel) cmdCancelSync() tea.Cmd {
	ctx := m.ctx
	agent := m.agent
	return func() tea.Msg {
		_, err := agent.CancelSync(ctx)
		return canceledMsg{err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copyFailedMsg{err: err}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
