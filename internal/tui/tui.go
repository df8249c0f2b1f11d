// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the interactive pairing wizard behind
// `balancectl sync wizard`: pick a role, exchange chunk codes with the other
// device and watch the sync progress live.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-balance-sync/internal/adapter"
)

// ErrUserQuit reports that the user left the wizard before the sync
// finished. The CLI treats it as a clean exit.
var ErrUserQuit = errors.New("user quit")

// RunSyncWizard runs the full-screen pairing flow against the given agent
// and blocks until the sync reaches a terminal state or the user quits.
func RunSyncWizard(ctx context.Context, agent adapter.AgentAdapter) error {
	model := newWizardModel(ctx, agent)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(wizardModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return result.err
}
