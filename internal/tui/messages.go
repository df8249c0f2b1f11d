package tui

import "github.com/MKhiriev/go-balance-sync/models"

type offerCreatedMsg struct {
	codes models.PairingCodes
	err   error
}

type answerCreatedMsg struct {
	codes models.PairingCodes
	err   error
}

type exchangeAcceptedMsg struct {
	err error
}

type statusMsg struct {
	status models.SyncStatus
	err    error
}

type canceledMsg struct {
	err error
}

type copiedMsg struct{}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
