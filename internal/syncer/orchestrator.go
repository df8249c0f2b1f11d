// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/models"
)

// orchestrator drives one sync session at a time over an open peer channel.
type orchestrator struct {
	builder Builder
	merger  Merger
	stores  *store.Stores
	log     *logger.Logger

	mu      sync.Mutex
	running bool
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(builder Builder, merger Merger, stores *store.Stores, log *logger.Logger) Orchestrator {
	return &orchestrator{
		builder: builder,
		merger:  merger,
		stores:  stores,
		log:     log,
	}
}

// session carries per-run transfer counters so every progress event can
// report them without threading extra parameters through the phases.
type session struct {
	channel    Channel
	onProgress ProgressFunc

	sent     int
	received int
}

func (s *session) emit(phase models.SyncPhase, message string) {
	if s.onProgress == nil {
		return
	}
	s.onProgress(models.SyncProgress{
		Phase:           phase,
		Message:         message,
		RecordsSent:     s.sent,
		RecordsReceived: s.received,
	})
}

// Run implements Orchestrator.
//
// The channel must already be open: connection establishment (and its
// PhaseConnecting events) belongs to the caller owning the peer connection.
// The protocol is symmetric, both sides execute the same four phases:
//
//  1. handshake — exchange device id and own watermark
//  2. sending — build a delta against the partner's watermark and send it
//  3. merging — receive the partner's payload and reconcile it
//  4. finalizing — exchange done stats, persist the new watermark
//
// The new watermark is the session's start time, captured before any record
// moves: rows written locally while the session runs land after it and are
// picked up next time instead of being skipped.
func (o *orchestrator) Run(ctx context.Context, channel Channel, onProgress ProgressFunc) (*models.SyncResult, error) {
	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()

	s := &session{channel: channel, onProgress: onProgress}
	startedAt := time.Now().UnixMilli()

	result, err := o.run(ctx, s, startedAt)
	if err != nil && result == nil {
		s.emit(models.PhaseFailed, err.Error())
		o.log.Err(err).Str("func", "*orchestrator.Run").Msg("sync session failed")
		return nil, err
	}

	return result, err
}

func (o *orchestrator) run(ctx context.Context, s *session, startedAt int64) (*models.SyncResult, error) {
	identity, err := o.stores.Device.EnsureIdentity(ctx)
	if err != nil {
		return nil, err
	}

	own, err := o.ownWatermark(ctx)
	if err != nil {
		return nil, err
	}

	// ── Handshake ────────────────────────────────────────────────────────
	s.emit(models.PhaseHandshake, "exchanging device identities")

	hello := models.ChannelMessage{
		Type:      models.MessageHandshake,
		Handshake: &models.Handshake{DeviceID: identity.DeviceID, LastSyncTimestamp: own},
	}
	if err = s.channel.Send(ctx, hello); err != nil {
		return nil, err
	}

	peer, err := expect(ctx, s.channel, models.MessageHandshake)
	if err != nil {
		return nil, err
	}

	// ── Sending ──────────────────────────────────────────────────────────
	// The delta is built against the partner's watermark, not our own: it
	// describes what the partner has not seen yet.
	s.emit(models.PhaseSending, "sending local changes")

	payload, err := o.builder.BuildSyncPayload(ctx, peer.Handshake.LastSyncTimestamp)
	if err != nil {
		return nil, err
	}
	if err = s.channel.Send(ctx, models.ChannelMessage{Type: models.MessagePayload, Payload: payload}); err != nil {
		return nil, err
	}
	s.sent = payload.TotalRecords

	// ── Merging ──────────────────────────────────────────────────────────
	s.emit(models.PhaseMerging, "merging partner changes")

	incoming, err := expect(ctx, s.channel, models.MessagePayload)
	if err != nil {
		return nil, err
	}
	if incoming.Payload.Version != models.PayloadVersion {
		return nil, fmt.Errorf("%w: unsupported payload version %d", ErrProtocol, incoming.Payload.Version)
	}
	s.received = incoming.Payload.TotalRecords

	summary, mergeErr := o.merger.Merge(ctx, incoming.Payload.Entities)
	if mergeErr != nil && !errors.Is(mergeErr, ErrPartialMerge) {
		return nil, mergeErr
	}

	// ── Finalizing ───────────────────────────────────────────────────────
	s.emit(models.PhaseFinalizing, "closing session")

	done := models.ChannelMessage{Type: models.MessageDone, Done: &models.DoneStats{RecordsSent: s.sent}}
	if err = s.channel.Send(ctx, done); err != nil {
		return nil, err
	}

	peerDone, err := expect(ctx, s.channel, models.MessageDone)
	if err != nil {
		return nil, err
	}
	if peerDone.Done.RecordsSent != s.received {
		o.log.Warn().
			Str("func", "*orchestrator.run").
			Int("peerReported", peerDone.Done.RecordsSent).
			Int("received", s.received).
			Msg("peer sent-count does not match received records")
	}

	if mergeErr == nil {
		if err = o.storeWatermark(ctx, identity.DeviceID, startedAt); err != nil {
			return nil, err
		}
	}

	result := &models.SyncResult{
		PeerDeviceID:  peer.Handshake.DeviceID,
		StartedAt:     startedAt,
		FinishedAt:    time.Now().UnixMilli(),
		TotalSent:     s.sent,
		TotalReceived: s.received,
		TotalUpserted: summary.Totals.Upserted(),
		Merge:         summary,
	}

	if mergeErr != nil {
		s.emit(models.PhaseDone, "sync finished with failed entity batches")
	} else {
		s.emit(models.PhaseDone, "sync complete")
	}

	o.log.Info().
		Str("func", "*orchestrator.run").
		Str("peer", result.PeerDeviceID).
		Int("sent", result.TotalSent).
		Int("received", result.TotalReceived).
		Int("upserted", result.TotalUpserted).
		Msg("sync session finished")

	return result, mergeErr
}

// acquire claims the single session slot.
func (o *orchestrator) acquire() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return ErrSyncInProgress
	}
	o.running = true
	return nil
}

func (o *orchestrator) release() {
	o.mu.Lock()
	o.running = false
	o.mu.Unlock()
}

// ownWatermark reads the device's last sync timestamp. A device that has
// never synced, or has no preferences row yet, reports nil and thereby asks
// the partner for a full payload.
func (o *orchestrator) ownWatermark(ctx context.Context) (*int64, error) {
	prefs, err := o.stores.Preferences.GetByID(ctx, models.PreferencesID)
	if errors.Is(err, store.ErrPreferencesNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return prefs.LastSyncTimestamp, nil
}

// storeWatermark persists startedAt as the new last sync timestamp, creating
// the preferences row when the device has none yet.
func (o *orchestrator) storeWatermark(ctx context.Context, deviceID string, startedAt int64) error {
	prefs, err := o.stores.Preferences.GetByID(ctx, models.PreferencesID)
	switch {
	case errors.Is(err, store.ErrPreferencesNotFound):
		prefs = &models.Preferences{}
		prefs.ID = models.PreferencesID
		prefs.DeviceID = deviceID
	case err != nil:
		return err
	}

	prefs.LastSyncTimestamp = &startedAt
	prefs.UpdatedAt = time.Now().UnixMilli()

	return o.stores.Preferences.Put(ctx, prefs)
}

// expect reads the next message and enforces the protocol order: the wrong
// type or a missing body aborts the session.
func expect(ctx context.Context, channel Channel, want string) (models.ChannelMessage, error) {
	msg, err := channel.Receive(ctx)
	if err != nil {
		return models.ChannelMessage{}, err
	}
	if msg.Type != want {
		return models.ChannelMessage{}, fmt.Errorf("%w: expected %q message, got %q", ErrProtocol, want, msg.Type)
	}

	var missing bool
	switch want {
	case models.MessageHandshake:
		missing = msg.Handshake == nil
	case models.MessagePayload:
		missing = msg.Payload == nil
	case models.MessageDone:
		missing = msg.Done == nil
	}
	if missing {
		return models.ChannelMessage{}, fmt.Errorf("%w: %q message without a body", ErrProtocol, want)
	}

	return msg, nil
}
