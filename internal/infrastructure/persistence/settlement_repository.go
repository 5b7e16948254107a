package persistence

import (
	"context"
	"errors"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/garmentflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSettlementRepository implements SettlementRepository using GORM.
// Generation and cancellation each run batch, items and scan-event linkage
// in one transaction so a settlement can never half-claim its events.
type GormSettlementRepository struct {
	db *gorm.DB
}

// NewGormSettlementRepository creates a new GormSettlementRepository
func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

var _ finance.SettlementRepository = (*GormSettlementRepository)(nil)

// FindByIDForTenant finds a settlement batch with its items for a tenant
func (r *GormSettlementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.SettlementBatch, error) {
	var model models.SettlementBatchModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByOperator).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds settlement batches for a tenant, newest first
func (r *GormSettlementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]finance.SettlementBatch, error) {
	var batchModels []models.SettlementBatchModel
	query := r.db.WithContext(ctx).Model(&models.SettlementBatchModel{}).
		Preload("Items", orderItemsByOperator).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC")

	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := query.Find(&batchModels).Error; err != nil {
		return nil, err
	}
	batches := make([]finance.SettlementBatch, len(batchModels))
	for i := range batchModels {
		batches[i] = *batchModels[i].ToDomain()
	}
	return batches, nil
}

// orderItemsByOperator keeps preloaded items in operator, process order
func orderItemsByOperator(db *gorm.DB) *gorm.DB {
	return db.Order("operator_name ASC, process_name ASC")
}

// CreateAndClaim stores the batch with its items and stamps every payable
// event matching the filter, all in one transaction. Returns the number of
// events claimed.
func (r *GormSettlementRepository) CreateAndClaim(ctx context.Context, batch *finance.SettlementBatch, filter production.ScanEventFilter) (int64, error) {
	var claimed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SettlementBatchModelFromDomain(batch)
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		n, err := claimScanEvents(tx, batch.TenantID, batch.ID, filter)
		if err != nil {
			return err
		}
		claimed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return claimed, nil
}

// CancelAndRelease saves the cancelled batch and clears the settlement
// linkage on every event referencing it, in one transaction. Returns the
// number of events released.
func (r *GormSettlementRepository) CancelAndRelease(ctx context.Context, batch *finance.SettlementBatch) (int64, error) {
	var released int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SettlementBatchModelFromDomain(batch)
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		n, err := releaseScanEvents(tx, batch.TenantID, batch.ID)
		if err != nil {
			return err
		}
		released = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

// DeleteWithItems removes a cancelled batch and its items together
func (r *GormSettlementRepository) DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SettlementItemModel{}, "settlement_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.SettlementBatchModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// MaxNumberWithPrefix returns the highest settlement number sharing a prefix
func (r *GormSettlementRepository) MaxNumberWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error) {
	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&models.SettlementBatchModel{}).
		Select("settlement_number").
		Where("tenant_id = ? AND settlement_number LIKE ?", tenantID, prefix+"%").
		Order("settlement_number DESC").
		Limit(1).
		Pluck("settlement_number", &maxNumber).Error; err != nil {
		return "", err
	}
	return maxNumber, nil
}
