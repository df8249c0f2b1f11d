package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-balance-sync/internal/chunker"
	"github.com/MKhiriev/go-balance-sync/internal/peer"
	"github.com/MKhiriev/go-balance-sync/internal/service"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/internal/syncer"
	"github.com/MKhiriev/go-balance-sync/internal/validators"
	"github.com/MKhiriev/go-balance-sync/models"
)

var errorStatusMap = map[error]int{
	service.ErrTaskNotFound:      http.StatusNotFound,
	service.ErrCategoryNotFound:  http.StatusNotFound,
	service.ErrEmptyTaskTitle:    http.StatusBadRequest,
	service.ErrEmptyCategoryName: http.StatusBadRequest,
	service.ErrSessionActive:     http.StatusConflict,
	service.ErrNoSession:         http.StatusConflict,
	service.ErrWrongRole:         http.StatusConflict,
	service.ErrIncompleteCode:    http.StatusBadRequest,

	chunker.ErrMalformedPart:   http.StatusBadRequest,
	chunker.ErrTotalMismatch:   http.StatusBadRequest,
	chunker.ErrPayloadTooLarge: http.StatusBadRequest,

	peer.ErrMalformedTicket:   http.StatusBadRequest,
	peer.ErrTicketExpired:     http.StatusBadRequest,
	peer.ErrSessionMismatch:   http.StatusBadRequest,
	peer.ErrNoCandidates:      http.StatusBadRequest,
	peer.ErrInvalidTransition: http.StatusConflict,
	peer.ErrDialFailed:        http.StatusBadGateway,
	peer.ErrHandshakeFailed:   http.StatusBadGateway,
	peer.ErrOpenTimeout:       http.StatusBadGateway,
	peer.ErrClosed:            http.StatusBadGateway,
	peer.ErrNotOpen:           http.StatusConflict,

	syncer.ErrSyncInProgress:    http.StatusConflict,
	syncer.ErrUnknownImportMode: http.StatusBadRequest,
	syncer.ErrProtocol:          http.StatusBadGateway,

	validators.ErrNotAnObject:        http.StatusBadRequest,
	validators.ErrWrongFormat:        http.StatusBadRequest,
	validators.ErrUnsupportedVersion: http.StatusBadRequest,
	validators.ErrInvalidExportedAt:  http.StatusBadRequest,
	validators.ErrMissingEntities:    http.StatusBadRequest,
	validators.ErrMalformedEntity:    http.StatusBadRequest,

	models.ErrUnknownEntityType: http.StatusBadRequest,

	store.ErrPreferencesNotFound: http.StatusNotFound,
	store.ErrWrongRecordType:     http.StatusInternalServerError,
	store.ErrRecordNotSaved:      http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
