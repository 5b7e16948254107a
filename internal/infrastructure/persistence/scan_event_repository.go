package persistence

import (
	"context"

	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/garmentflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormScanEventRepository implements ScanEventRepository using GORM.
// Scan events are produced elsewhere; this repository reads them and
// writes only the settlement linkage columns.
type GormScanEventRepository struct {
	db *gorm.DB
}

// NewGormScanEventRepository creates a new GormScanEventRepository
func NewGormScanEventRepository(db *gorm.DB) *GormScanEventRepository {
	return &GormScanEventRepository{db: db}
}

var _ production.ScanEventRepository = (*GormScanEventRepository)(nil)

// FindForSettlement finds unsettled scan events matching the filter
func (r *GormScanEventRepository) FindForSettlement(ctx context.Context, tenantID uuid.UUID, filter production.ScanEventFilter) ([]production.ScanEvent, error) {
	var eventModels []models.ScanEventModel
	query := r.db.WithContext(ctx).Model(&models.ScanEventModel{}).
		Where("tenant_id = ?", tenantID)
	if !filter.IncludeSettled {
		query = query.Where("settlement_id IS NULL")
	}
	query = applyScanEventFilter(query, filter)

	if err := query.Order("scanned_at ASC").Find(&eventModels).Error; err != nil {
		return nil, err
	}
	events := make([]production.ScanEvent, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToDomain()
	}
	return events, nil
}

// claimScanEvents stamps the settlement linkage on every payable event
// matching the filter and returns the number of events claimed. Only
// successful events with positive quantity are claimed, matching what the
// aggregation counts. Already-settled events are re-claimed only when the
// filter asked for them.
func claimScanEvents(db *gorm.DB, tenantID, settlementID uuid.UUID, filter production.ScanEventFilter) (int64, error) {
	query := db.Model(&models.ScanEventModel{}).
		Where("tenant_id = ?", tenantID).
		Where("result = ?", production.ScanResultSuccess).
		Where("quantity > 0")
	if !filter.IncludeSettled {
		query = query.Where("settlement_id IS NULL")
	}
	query = applyScanEventFilter(query, filter)

	result := query.Updates(map[string]interface{}{
		"settlement_id":     settlementID,
		"settlement_status": production.SettlementMarkSettled,
	})
	return result.RowsAffected, result.Error
}

// releaseScanEvents clears the settlement linkage on every event the
// settlement claimed and returns the number of events released
func releaseScanEvents(db *gorm.DB, tenantID, settlementID uuid.UUID) (int64, error) {
	result := db.Model(&models.ScanEventModel{}).
		Where("tenant_id = ? AND settlement_id = ?", tenantID, settlementID).
		Updates(map[string]interface{}{
			"settlement_id":     nil,
			"settlement_status": production.SettlementMarkUnsettled,
		})
	return result.RowsAffected, result.Error
}

// applyScanEventFilter applies scope options to a scan event query.
// Settlement linkage is handled by the callers, not here.
func applyScanEventFilter(query *gorm.DB, filter production.ScanEventFilter) *gorm.DB {
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	} else if filter.OrderNumber != "" {
		query = query.Where("order_number = ?", filter.OrderNumber)
	}
	if filter.StyleNumber != "" {
		query = query.Where("style_number = ?", filter.StyleNumber)
	}
	if filter.OperatorID != nil {
		query = query.Where("operator_id = ?", *filter.OperatorID)
	}
	if filter.OperatorName != "" {
		query = query.Where("operator_name = ?", filter.OperatorName)
	}
	if filter.ProcessName != "" {
		query = query.Where("process_name = ?", filter.ProcessName)
	}
	if len(filter.ScanTypes) > 0 {
		query = query.Where("scan_type IN ?", filter.ScanTypes)
	}
	if filter.From != nil {
		query = query.Where("scanned_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scanned_at <= ?", *filter.To)
	}
	return query
}
