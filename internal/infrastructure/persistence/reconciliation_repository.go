package persistence

import (
	"context"
	"errors"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/garmentflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReconciliationRepository implements ReconciliationRepository using GORM.
// Material and shipment documents live in one table; the kind column
// discriminates, and KindAuto lookups match either variant.
type GormReconciliationRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRepository creates a new GormReconciliationRepository
func NewGormReconciliationRepository(db *gorm.DB) *GormReconciliationRepository {
	return &GormReconciliationRepository{db: db}
}

var _ finance.ReconciliationRepository = (*GormReconciliationRepository)(nil)

// FindByID finds a live reconciliation record by ID without a tenant scope.
// Callers are responsible for asserting tenant ownership on the result.
func (r *GormReconciliationRepository) FindByID(ctx context.Context, id uuid.UUID, kind finance.ReconciliationKind) (*finance.ReconciliationRecord, error) {
	var model models.ReconciliationRecordModel
	query := r.db.WithContext(ctx).Where("id = ? AND deleted = ?", id, false)
	query = applyKind(query, kind)
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a live reconciliation record by ID for a specific tenant
func (r *GormReconciliationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID, kind finance.ReconciliationKind) (*finance.ReconciliationRecord, error) {
	var model models.ReconciliationRecordModel
	query := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ? AND deleted = ?", tenantID, id, false)
	query = applyKind(query, kind)
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestByPurchase finds the most recent live record derived from a purchase
func (r *GormReconciliationRepository) FindLatestByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (*finance.ReconciliationRecord, error) {
	var model models.ReconciliationRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND purchase_id = ? AND deleted = ?", tenantID, purchaseID, false).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindApprovedUnpaid finds approved records awaiting payment for a tenant
func (r *GormReconciliationRepository) FindApprovedUnpaid(ctx context.Context, tenantID uuid.UUID) ([]finance.ReconciliationRecord, error) {
	var recordModels []models.ReconciliationRecordModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND deleted = ?", tenantID, finance.ReconciliationStatusApproved, false).
		Order("approved_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]finance.ReconciliationRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// FindAllForTenant finds all reconciliation records for a tenant with filtering
func (r *GormReconciliationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ReconciliationFilter) ([]finance.ReconciliationRecord, error) {
	var recordModels []models.ReconciliationRecordModel
	query := r.db.WithContext(ctx).Model(&models.ReconciliationRecordModel{}).
		Where("tenant_id = ?", tenantID)
	query = applyReconciliationFilter(query, filter)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]finance.ReconciliationRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// Create stores a new reconciliation record
func (r *GormReconciliationRepository) Create(ctx context.Context, record *finance.ReconciliationRecord) error {
	model := models.ReconciliationRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing reconciliation record
func (r *GormReconciliationRepository) Save(ctx context.Context, record *finance.ReconciliationRecord) error {
	model := models.ReconciliationRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// MaxNumberWithPrefix returns the highest document number sharing a prefix
func (r *GormReconciliationRepository) MaxNumberWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error) {
	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&models.ReconciliationRecordModel{}).
		Select("document_number").
		Where("tenant_id = ? AND document_number LIKE ?", tenantID, prefix+"%").
		Order("document_number DESC").
		Limit(1).
		Pluck("document_number", &maxNumber).Error; err != nil {
		return "", err
	}
	return maxNumber, nil
}

// applyKind narrows the query to a concrete kind; KindAuto matches either variant
func applyKind(query *gorm.DB, kind finance.ReconciliationKind) *gorm.DB {
	if kind.IsConcrete() {
		return query.Where("kind = ?", kind)
	}
	return query
}

// applyReconciliationFilter applies filter options to the query
func applyReconciliationFilter(query *gorm.DB, filter finance.ReconciliationFilter) *gorm.DB {
	query = applyKind(query, filter.Kind)
	if !filter.IncludeDeleted {
		query = query.Where("deleted = ?", false)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CounterpartyID != nil {
		query = query.Where("counterparty_id = ?", *filter.CounterpartyID)
	}
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query.Order("created_at DESC")
}
