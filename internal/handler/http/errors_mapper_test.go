package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-balance-sync/internal/peer"
	"github.com/MKhiriev/go-balance-sync/internal/service"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/internal/syncer"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing task", service.ErrTaskNotFound, http.StatusNotFound},
		{"busy session slot", service.ErrSessionActive, http.StatusConflict},
		{"bad pairing code", peer.ErrMalformedTicket, http.StatusBadRequest},
		{"unreachable peer", peer.ErrDialFailed, http.StatusBadGateway},
		{"store failure", store.ErrExecutingQuery, http.StatusInternalServerError},
		{"protocol violation", syncer.ErrProtocol, http.StatusBadGateway},
		{"unknown error", fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFromError(tc.err))
		})
	}
}

// Sentinels arrive wrapped with request context; the mapping must see
// through the wrapping.
func TestStatusFromError_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("completing pairing: %w", peer.ErrTicketExpired)

	assert.Equal(t, http.StatusBadRequest, statusFromError(err))
}
