package persistence

import (
	"context"
	"errors"

	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/garmentflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository resolves production order references using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ production.OrderRepository = (*GormOrderRepository)(nil)

// FindRefByID finds an order reference by ID for a tenant
func (r *GormOrderRepository) FindRefByID(ctx context.Context, tenantID, id uuid.UUID) (*production.OrderRef, error) {
	var model models.ProductionOrderModel
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

// FindRefByNumber finds an order reference by its order number for a tenant
func (r *GormOrderRepository) FindRefByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*production.OrderRef, error) {
	var model models.ProductionOrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
