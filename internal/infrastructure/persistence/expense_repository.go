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

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)

// FindByIDForTenant finds an expense reimbursement by ID for a tenant
func (r *GormExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.ExpenseReimbursement, error) {
	var model models.ExpenseReimbursementModel
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

// FindApprovedUnpaid finds approved reimbursements awaiting payment
func (r *GormExpenseRepository) FindApprovedUnpaid(ctx context.Context, tenantID uuid.UUID) ([]finance.ExpenseReimbursement, error) {
	var expenseModels []models.ExpenseReimbursementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, finance.ExpenseStatusApproved).
		Order("created_at ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]finance.ExpenseReimbursement, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = *expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// Save updates an existing expense reimbursement
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.ExpenseReimbursement) error {
	model := models.ExpenseReimbursementModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}
