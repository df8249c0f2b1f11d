// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/chunker"
	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/crypto"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/peer"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/internal/syncer"
	"github.com/MKhiriev/go-balance-sync/models"
)

// syncSession is the mutable record of one pairing attempt, guarded by the
// service mutex. It outlives the sync run so Status keeps answering after
// the connection closes, until the next StartOffer/Join reaps it.
type syncSession struct {
	role      string
	conn      *peer.Connection
	cancel    context.CancelFunc
	createdAt time.Time

	running  bool
	phase    models.SyncPhase
	message  string
	sent     int
	received int
	result   *models.SyncResult
	lastErr  error
}

type syncService struct {
	orchestrator syncer.Orchestrator
	keys         crypto.ChannelKeyService
	preferences  store.PreferencesStore
	cfg          config.Sync
	logger       *logger.Logger

	mu      sync.Mutex
	session *syncSession
}

// NewSyncService returns a SyncService that manages at most one pairing
// session at a time and runs the sync protocol in the background once the
// connection opens.
func NewSyncService(orchestrator syncer.Orchestrator, keys crypto.ChannelKeyService, preferences store.PreferencesStore, cfg config.Sync, logger *logger.Logger) SyncService {
	return &syncService{
		orchestrator: orchestrator,
		keys:         keys,
		preferences:  preferences,
		cfg:          cfg,
		logger:       logger,
	}
}

// StartOffer opens an initiator session and returns the offer pairing codes
// for the joining device to scan.
func (s *syncService) StartOffer(ctx context.Context) ([]string, error) {
	opts := s.connectionOptions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reapSessionLocked(); err != nil {
		return nil, err
	}

	conn := peer.NewConnection(s.keys, opts, s.logger)
	ticket, err := conn.CreateOffer(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	codes, err := chunker.Split(ticket, s.cfg.ChunkCapacity)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	s.session = &syncSession{role: models.RoleInitiator, conn: conn, createdAt: time.Now()}
	s.logger.Info().Str("func", "*syncService.StartOffer").Msgf("offer created: %d code part(s)", len(codes))

	return codes, nil
}

// Join accepts a scanned offer, starts listening for the initiator and
// returns the answer codes to show back. The sync itself runs in the
// background once the initiator connects.
func (s *syncService) Join(ctx context.Context, offerCodes []string) ([]string, error) {
	ticket, err := assembleTicket(offerCodes)
	if err != nil {
		return nil, err
	}

	opts := s.connectionOptions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reapSessionLocked(); err != nil {
		return nil, err
	}

	conn := peer.NewConnection(s.keys, opts, s.logger)
	answer, err := conn.AcceptOffer(ctx, ticket)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	codes, err := chunker.Split(answer, s.cfg.ChunkCapacity)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	session := &syncSession{role: models.RoleJoiner, conn: conn, createdAt: time.Now()}
	s.session = session
	s.launchRunLocked(session)
	s.logger.Info().Str("func", "*syncService.Join").Msgf("offer accepted: %d answer code part(s)", len(codes))

	return codes, nil
}

// Complete feeds the scanned answer back into the current offer session and
// starts the sync run once the connection opens.
func (s *syncService) Complete(ctx context.Context, answerCodes []string) error {
	ticket, err := assembleTicket(answerCodes)
	if err != nil {
		return err
	}

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session == nil {
		return ErrNoSession
	}
	if session.role != models.RoleInitiator {
		return ErrWrongRole
	}

	// Dialing happens outside the service lock: Status must stay
	// responsive while candidates are tried one by one.
	if err := session.conn.CompleteConnection(ctx, ticket); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != session || session.running {
		return nil
	}
	s.launchRunLocked(session)

	return nil
}

// Status reports a snapshot of the current session, or an idle status when
// none exists.
func (s *syncService) Status(_ context.Context) models.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session
	if session == nil {
		return models.SyncStatus{ConnectionState: string(peer.StateIdle)}
	}

	status := models.SyncStatus{
		Active:          !s.sessionFinishedLocked(session),
		Role:            session.role,
		ConnectionState: string(session.conn.State()),
		Phase:           session.phase,
		Message:         session.message,
		RecordsSent:     session.sent,
		RecordsReceived: session.received,
		Result:          session.result,
	}
	if session.lastErr != nil {
		status.Error = session.lastErr.Error()
	}

	return status
}

// Cancel aborts the current session. The session record stays around so
// Status can report the aborted state until the next StartOffer/Join.
func (s *syncService) Cancel(_ context.Context) error {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session == nil {
		return ErrNoSession
	}
	if session.cancel != nil {
		session.cancel()
	}
	_ = session.conn.Close()
	s.logger.Info().Str("func", "*syncService.Cancel").Msg("sync session cancelled")

	return nil
}

// connectionOptions builds peer options from config, pulling relay servers
// out of preferences. A failing preferences read only costs the relay
// candidates, never the session.
func (s *syncService) connectionOptions(ctx context.Context) peer.Options {
	opts := peer.Options{
		Profile:       s.cfg.PairingProfile,
		ListenAddress: s.cfg.ListenAddress,
		OpenWait:      s.cfg.OpenWaitTimeout,
	}

	prefs, err := s.preferences.GetByID(ctx, models.PreferencesID)
	switch {
	case err == nil:
		opts.RelayServers = prefs.RelayServers
	case !errors.Is(err, store.ErrPreferencesNotFound):
		s.logger.Warn().Str("func", "*syncService.connectionOptions").Msgf("could not read relay servers: %v", err)
	}

	return opts
}

// reapSessionLocked clears a finished or abandoned session, or reports
// ErrSessionActive if one is still live. Offer sessions nobody ever joined
// expire together with their ticket.
func (s *syncService) reapSessionLocked() error {
	session := s.session
	if session == nil {
		return nil
	}

	expired := !session.running && time.Since(session.createdAt) > peer.OfferTTL
	if s.sessionFinishedLocked(session) || expired {
		if session.cancel != nil {
			session.cancel()
		}
		_ = session.conn.Close()
		s.session = nil
		return nil
	}

	return ErrSessionActive
}

func (s *syncService) sessionFinishedLocked(session *syncSession) bool {
	if session.running {
		return false
	}
	if session.result != nil || session.lastErr != nil {
		return true
	}
	state := session.conn.State()
	return state == peer.StateClosed || state == peer.StateFailed
}

// launchRunLocked starts the background goroutine that waits for the
// connection to open and drives the sync protocol over it.
func (s *syncService) launchRunLocked(session *syncSession) {
	runCtx, cancel := context.WithCancel(context.Background())
	session.cancel = cancel
	session.running = true
	session.phase = models.PhaseConnecting
	session.message = "waiting for peer"

	go s.run(runCtx, session)
}

func (s *syncService) run(ctx context.Context, session *syncSession) {
	defer session.cancel()

	if err := session.conn.WaitOpen(ctx); err != nil {
		s.finishRun(session, nil, err)
		return
	}

	channel, err := session.conn.Channel()
	if err != nil {
		s.finishRun(session, nil, err)
		return
	}

	result, err := s.orchestrator.Run(ctx, channel, s.progressRecorder(session))
	s.finishRun(session, result, err)
}

// progressRecorder mirrors orchestrator progress into the session record so
// Status serves live numbers without touching the running goroutine.
func (s *syncService) progressRecorder(session *syncSession) syncer.ProgressFunc {
	return func(progress models.SyncProgress) {
		s.mu.Lock()
		defer s.mu.Unlock()
		session.phase = progress.Phase
		session.message = progress.Message
		session.sent = progress.RecordsSent
		session.received = progress.RecordsReceived
	}
}

func (s *syncService) finishRun(session *syncSession, result *models.SyncResult, err error) {
	s.mu.Lock()
	session.running = false
	session.result = result
	session.lastErr = err
	if err != nil && result == nil {
		session.phase = models.PhaseFailed
		session.message = err.Error()
	}
	s.mu.Unlock()

	_ = session.conn.Close()

	switch {
	case err == nil:
		s.logger.Info().Str("func", "*syncService.run").Msg("sync session finished")
	case errors.Is(err, syncer.ErrPartialMerge):
		s.logger.Warn().Str("func", "*syncService.run").Msgf("sync session finished with failed batches: %v", err)
	default:
		s.logger.Error().Str("func", "*syncService.run").Msgf("sync session failed: %v", err)
	}
}

// assembleTicket reassembles a chunked pairing code from its scanned parts.
// Parts may arrive in any order and duplicates are ignored; a plain
// unchunked code passes through as-is.
func assembleTicket(codes []string) (string, error) {
	assembler := chunker.NewAssembler()

	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		payload, done, err := assembler.Add(code)
		if err != nil {
			return "", err
		}
		if done {
			return payload, nil
		}
	}

	return "", fmt.Errorf("%w: %d of %d parts", ErrIncompleteCode, assembler.Received(), assembler.Total())
}
