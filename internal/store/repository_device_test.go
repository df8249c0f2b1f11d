package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func newTestDeviceStore(t *testing.T) (DeviceStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	return NewDeviceRepository(db, logger.Nop()), mock
}

func TestEnsureIdentity_ReturnsExistingRow(t *testing.T) {
	repo, mock := newTestDeviceStore(t)

	rows := sqlmock.NewRows([]string{"device_id", "created_at"}).
		AddRow("device-existing", int64(1700000000000))

	mock.ExpectQuery("SELECT device_id, created_at FROM device_identity").
		WillReturnRows(rows)

	identity, err := repo.EnsureIdentity(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.DeviceID != "device-existing" {
		t.Errorf("expected existing device id, got %q", identity.DeviceID)
	}
	// повторное создание не должно происходить
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database access: %v", err)
	}
}

func TestEnsureIdentity_MintsOnFirstAccess(t *testing.T) {
	repo, mock := newTestDeviceStore(t)

	mock.ExpectQuery("SELECT device_id, created_at FROM device_identity").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO device_identity").
		WillReturnResult(sqlmock.NewResult(1, 1))

	identity, err := repo.EnsureIdentity(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.DeviceID == "" {
		t.Error("expected a minted device id")
	}
	if identity.CreatedAt == 0 {
		t.Error("expected a creation timestamp")
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestEnsureIdentity_ReadError(t *testing.T) {
	repo, mock := newTestDeviceStore(t)

	mock.ExpectQuery("SELECT device_id, created_at FROM device_identity").
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.EnsureIdentity(context.Background())
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestEnsureIdentity_InsertError(t *testing.T) {
	repo, mock := newTestDeviceStore(t)

	mock.ExpectQuery("SELECT device_id, created_at FROM device_identity").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO device_identity").
		WillReturnError(errors.New("database is locked"))

	_, err := repo.EnsureIdentity(context.Background())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestEnsureIdentity_LostInsertRaceRereadsRow(t *testing.T) {
	repo, mock := newTestDeviceStore(t)

	// Гонка первого запуска: параллельный вызов вставил строку раньше нас.
	mock.ExpectQuery("SELECT device_id, created_at FROM device_identity").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO device_identity").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})
	mock.ExpectQuery("SELECT device_id, created_at FROM device_identity").
		WillReturnRows(sqlmock.NewRows([]string{"device_id", "created_at"}).
			AddRow("device-winner", int64(1700000000000)))

	identity, err := repo.EnsureIdentity(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.DeviceID != "device-winner" {
		t.Errorf("expected the winner's device id, got %q", identity.DeviceID)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
