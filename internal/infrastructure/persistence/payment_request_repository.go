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

// GormPaymentRequestRepository implements PaymentRequestRepository using GORM
type GormPaymentRequestRepository struct {
	db *gorm.DB
}

// NewGormPaymentRequestRepository creates a new GormPaymentRequestRepository
func NewGormPaymentRequestRepository(db *gorm.DB) *GormPaymentRequestRepository {
	return &GormPaymentRequestRepository{db: db}
}

var _ finance.PaymentRequestRepository = (*GormPaymentRequestRepository)(nil)

// FindByIDForTenant finds a payment request by ID for a tenant
func (r *GormPaymentRequestRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.PaymentRequest, error) {
	var model models.PaymentRequestModel
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

// FindPendingByBiz finds the pending request for a source document, if any
func (r *GormPaymentRequestRepository) FindPendingByBiz(ctx context.Context, tenantID uuid.UUID, bizType finance.PayableBizType, bizID uuid.UUID) (*finance.PaymentRequest, error) {
	var model models.PaymentRequestModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND biz_type = ? AND biz_id = ? AND status = ?",
			tenantID, bizType, bizID, finance.PaymentRequestStatusPending).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds payment requests matching the filter
func (r *GormPaymentRequestRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.PaymentRequestFilter) ([]finance.PaymentRequest, error) {
	var requestModels []models.PaymentRequestModel
	query := r.db.WithContext(ctx).Model(&models.PaymentRequestModel{}).
		Where("tenant_id = ?", tenantID)
	query = applyPaymentRequestFilter(query, filter)

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	requests := make([]finance.PaymentRequest, len(requestModels))
	for i := range requestModels {
		requests[i] = *requestModels[i].ToDomain()
	}
	return requests, nil
}

// Create stores a new payment request
func (r *GormPaymentRequestRepository) Create(ctx context.Context, request *finance.PaymentRequest) error {
	model := models.PaymentRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing payment request
func (r *GormPaymentRequestRepository) Save(ctx context.Context, request *finance.PaymentRequest) error {
	model := models.PaymentRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Save(model).Error
}

// MaxNumberWithPrefix returns the highest request number sharing a prefix
func (r *GormPaymentRequestRepository) MaxNumberWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error) {
	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentRequestModel{}).
		Select("request_number").
		Where("tenant_id = ? AND request_number LIKE ?", tenantID, prefix+"%").
		Order("request_number DESC").
		Limit(1).
		Pluck("request_number", &maxNumber).Error; err != nil {
		return "", err
	}
	return maxNumber, nil
}

// applyPaymentRequestFilter applies filter options to the query
func applyPaymentRequestFilter(query *gorm.DB, filter finance.PaymentRequestFilter) *gorm.DB {
	if filter.Payee != "" {
		query = query.Where("payee ILIKE ?", "%"+filter.Payee+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	if filter.BizType != nil {
		query = query.Where("biz_type = ?", *filter.BizType)
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
