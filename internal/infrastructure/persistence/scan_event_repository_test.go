package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockScanEventRepository(t *testing.T) (*GormScanEventRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormScanEventRepository(gormDB), mock, mockDB
}

func TestGormScanEventRepository_FindForSettlement(t *testing.T) {
	t.Run("excludes settled events by default", func(t *testing.T) {
		repo, mock, mockDB := newMockScanEventRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		eventID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "operator_name", "process_name", "scan_type", "quantity", "result", "settlement_status"}).
			AddRow(eventID, tenantID, "li", "sewing", "PRODUCTION", 5, "SUCCESS", "UNSETTLED")

		mock.ExpectQuery(`SELECT \* FROM "scan_events" WHERE tenant_id = \$1 AND settlement_id IS NULL AND scan_type IN \(\$2,\$3\) ORDER BY scanned_at ASC`).
			WithArgs(tenantID, production.ScanTypeProduction, production.ScanTypeCutting).
			WillReturnRows(rows)

		events, err := repo.FindForSettlement(context.Background(), tenantID, production.ScanEventFilter{
			ScanTypes: []production.ScanType{production.ScanTypeProduction, production.ScanTypeCutting},
		})

		assert.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "li", events[0].OperatorName)
		assert.Equal(t, 5, events[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClaimScanEvents(t *testing.T) {
	t.Run("claims only payable unsettled events by default", func(t *testing.T) {
		repo, mock, mockDB := newMockScanEventRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		settlementID := uuid.New()

		mock.ExpectExec(`UPDATE "scan_events" SET .* WHERE tenant_id = \$\d+ AND result = \$\d+ AND quantity > 0 AND settlement_id IS NULL AND scan_type IN \(\$\d+,\$\d+\)`).
			WillReturnResult(sqlmock.NewResult(0, 3))

		claimed, err := claimScanEvents(repo.db, tenantID, settlementID, production.ScanEventFilter{
			ScanTypes: []production.ScanType{production.ScanTypeProduction, production.ScanTypeCutting},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), claimed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("re-claims settled events when the filter includes them", func(t *testing.T) {
		repo, mock, mockDB := newMockScanEventRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		settlementID := uuid.New()

		mock.ExpectExec(`UPDATE "scan_events" SET .* WHERE tenant_id = \$\d+ AND result = \$\d+ AND quantity > 0 AND scan_type IN \(\$\d+,\$\d+\)`).
			WillReturnResult(sqlmock.NewResult(0, 5))

		claimed, err := claimScanEvents(repo.db, tenantID, settlementID, production.ScanEventFilter{
			ScanTypes:      []production.ScanType{production.ScanTypeProduction, production.ScanTypeCutting},
			IncludeSettled: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(5), claimed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReleaseScanEvents(t *testing.T) {
	t.Run("clears the linkage and reports affected rows", func(t *testing.T) {
		repo, mock, mockDB := newMockScanEventRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		settlementID := uuid.New()

		mock.ExpectExec(`UPDATE "scan_events" SET .* WHERE tenant_id = \$\d AND settlement_id = \$\d`).
			WillReturnResult(sqlmock.NewResult(0, 7))

		released, err := releaseScanEvents(repo.db, tenantID, settlementID)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), released)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
