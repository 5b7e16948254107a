package persistence

import (
	"context"
	"errors"

	"github.com/garmentflow/backend/internal/domain/procurement"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/garmentflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM.
// Read-only: the settlement engine derives from purchases, it never writes them.
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

var _ procurement.PurchaseRepository = (*GormPurchaseRepository)(nil)

// FindByIDForTenant finds a material purchase by ID for a tenant
func (r *GormPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.MaterialPurchase, error) {
	var model models.MaterialPurchaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all material purchases for a tenant with filtering
func (r *GormPurchaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter procurement.PurchaseFilter) ([]procurement.MaterialPurchase, error) {
	var purchaseModels []models.MaterialPurchaseModel
	query := r.db.WithContext(ctx).Model(&models.MaterialPurchaseModel{}).
		Where("tenant_id = ?", tenantID)
	query = applyPurchaseFilter(query, filter)

	if err := query.Find(&purchaseModels).Error; err != nil {
		return nil, err
	}
	purchases := make([]procurement.MaterialPurchase, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = *purchaseModels[i].ToDomain()
	}
	return purchases, nil
}

// applyPurchaseFilter applies filter options to the query
func applyPurchaseFilter(query *gorm.DB, filter procurement.PurchaseFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("deleted = ?", false)
	}
	if filter.ExcludeOrderLinked {
		query = query.Where("production_order IS NULL")
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ArrivedFrom != nil {
		query = query.Where("arrived_at >= ?", *filter.ArrivedFrom)
	}
	if filter.ArrivedTo != nil {
		query = query.Where("arrived_at <= ?", *filter.ArrivedTo)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query.Order("created_at ASC")
}
