package models

import (
	"time"

	"github.com/garmentflow/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialPurchaseModel is the persistence model for material purchases.
// The reconciliation sync reads purchases; it never writes them.
type MaterialPurchaseModel struct {
	TenantAggregateModel
	TenantID        uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:idx_purchase_tenant_number,priority:1"`
	PurchaseNumber  string                     `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_tenant_number,priority:2"`
	SupplierID      *uuid.UUID                 `gorm:"type:uuid;index"`
	SupplierName    string                     `gorm:"type:varchar(200)"`
	MaterialName    string                     `gorm:"type:varchar(200)"`
	MaterialCode    string                     `gorm:"type:varchar(50)"`
	Specification   string                     `gorm:"type:varchar(200)"`
	Unit            string                     `gorm:"type:varchar(20)"`
	OrderedQuantity int                        `gorm:"not null;default:0"`
	ArrivedQuantity int                        `gorm:"not null;default:0"`
	UnitPrice       decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	TotalAmount     decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Status          procurement.PurchaseStatus `gorm:"type:varchar(20);not null;index"`
	ProductionOrder *uuid.UUID                 `gorm:"type:uuid;index"`
	ArrivedAt       *time.Time
	Deleted         bool `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (MaterialPurchaseModel) TableName() string {
	return "material_purchases"
}

// ToDomain converts the persistence model to a domain MaterialPurchase.
func (m *MaterialPurchaseModel) ToDomain() *procurement.MaterialPurchase {
	return &procurement.MaterialPurchase{
		TenantAggregateRoot: m.tenantAggregateRoot(m.TenantID),
		PurchaseNumber:      m.PurchaseNumber,
		SupplierID:          m.SupplierID,
		SupplierName:        m.SupplierName,
		MaterialName:        m.MaterialName,
		MaterialCode:        m.MaterialCode,
		Specification:       m.Specification,
		Unit:                m.Unit,
		OrderedQuantity:     m.OrderedQuantity,
		ArrivedQuantity:     m.ArrivedQuantity,
		UnitPrice:           m.UnitPrice,
		TotalAmount:         m.TotalAmount,
		Status:              m.Status,
		ProductionOrder:     m.ProductionOrder,
		ArrivedAt:           m.ArrivedAt,
		Deleted:             m.Deleted,
	}
}
