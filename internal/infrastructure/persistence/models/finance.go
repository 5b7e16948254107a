package models

import (
	"time"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationRecordModel is the persistence model for the
// ReconciliationRecord aggregate root. Material and shipment documents
// share one table discriminated by the kind column.
type ReconciliationRecordModel struct {
	TenantAggregateModel
	TenantID         uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:idx_reconciliation_tenant_number,priority:1"`
	Kind             finance.ReconciliationKind   `gorm:"type:varchar(20);not null;index"`
	DocumentNumber   string                       `gorm:"type:varchar(50);not null;uniqueIndex:idx_reconciliation_tenant_number,priority:2"`
	CounterpartyID   *uuid.UUID                   `gorm:"type:uuid;index"`
	CounterpartyName string                       `gorm:"type:varchar(200);not null"`
	PurchaseID       *uuid.UUID                   `gorm:"type:uuid;index"`
	OrderID          *uuid.UUID                   `gorm:"type:uuid;index"`
	OrderNumber      string                       `gorm:"type:varchar(50)"`
	StyleNumber      string                       `gorm:"type:varchar(50)"`
	MaterialName     string                       `gorm:"type:varchar(200)"`
	MaterialCode     string                       `gorm:"type:varchar(50)"`
	Specification    string                       `gorm:"type:varchar(200)"`
	Unit             string                       `gorm:"type:varchar(20)"`
	Quantity         int                          `gorm:"not null;default:0"`
	UnitPrice        decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	TotalAmount      decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	DeductionAmount  decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	FinalAmount      decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	Status           finance.ReconciliationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	VerifiedAt       *time.Time
	ApprovedAt       *time.Time
	PaidAt           *time.Time
	ReviewReason     string `gorm:"type:varchar(500)"`
	ReviewedAt       *time.Time
	Remark           string `gorm:"type:text"`
	Deleted          bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ReconciliationRecordModel) TableName() string {
	return "reconciliation_records"
}

// ToDomain converts the persistence model to a domain ReconciliationRecord.
func (m *ReconciliationRecordModel) ToDomain() *finance.ReconciliationRecord {
	return &finance.ReconciliationRecord{
		TenantAggregateRoot: m.tenantAggregateRoot(m.TenantID),
		Kind:                m.Kind,
		DocumentNumber:      m.DocumentNumber,
		CounterpartyID:      m.CounterpartyID,
		CounterpartyName:    m.CounterpartyName,
		PurchaseID:          m.PurchaseID,
		OrderID:             m.OrderID,
		OrderNumber:         m.OrderNumber,
		StyleNumber:         m.StyleNumber,
		MaterialName:        m.MaterialName,
		MaterialCode:        m.MaterialCode,
		Specification:       m.Specification,
		Unit:                m.Unit,
		Quantity:            m.Quantity,
		UnitPrice:           m.UnitPrice,
		TotalAmount:         m.TotalAmount,
		DeductionAmount:     m.DeductionAmount,
		FinalAmount:         m.FinalAmount,
		Status:              m.Status,
		VerifiedAt:          m.VerifiedAt,
		ApprovedAt:          m.ApprovedAt,
		PaidAt:              m.PaidAt,
		ReviewReason:        m.ReviewReason,
		ReviewedAt:          m.ReviewedAt,
		Remark:              m.Remark,
		Deleted:             m.Deleted,
	}
}

// FromDomain populates the persistence model from a domain ReconciliationRecord.
func (m *ReconciliationRecordModel) FromDomain(r *finance.ReconciliationRecord) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.TenantID = r.TenantID
	m.Kind = r.Kind
	m.DocumentNumber = r.DocumentNumber
	m.CounterpartyID = r.CounterpartyID
	m.CounterpartyName = r.CounterpartyName
	m.PurchaseID = r.PurchaseID
	m.OrderID = r.OrderID
	m.OrderNumber = r.OrderNumber
	m.StyleNumber = r.StyleNumber
	m.MaterialName = r.MaterialName
	m.MaterialCode = r.MaterialCode
	m.Specification = r.Specification
	m.Unit = r.Unit
	m.Quantity = r.Quantity
	m.UnitPrice = r.UnitPrice
	m.TotalAmount = r.TotalAmount
	m.DeductionAmount = r.DeductionAmount
	m.FinalAmount = r.FinalAmount
	m.Status = r.Status
	m.VerifiedAt = r.VerifiedAt
	m.ApprovedAt = r.ApprovedAt
	m.PaidAt = r.PaidAt
	m.ReviewReason = r.ReviewReason
	m.ReviewedAt = r.ReviewedAt
	m.Remark = r.Remark
	m.Deleted = r.Deleted
}

// ReconciliationRecordModelFromDomain creates a new persistence model from a domain record.
func ReconciliationRecordModelFromDomain(r *finance.ReconciliationRecord) *ReconciliationRecordModel {
	m := &ReconciliationRecordModel{}
	m.FromDomain(r)
	return m
}

// SettlementBatchModel is the persistence model for the SettlementBatch aggregate root.
type SettlementBatchModel struct {
	TenantAggregateModel
	TenantID         uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_settlement_tenant_number,priority:1"`
	SettlementNumber string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_settlement_tenant_number,priority:2"`
	OrderID          *uuid.UUID               `gorm:"type:uuid;index"`
	OrderNumber      string                   `gorm:"type:varchar(50)"`
	StyleNumber      string                   `gorm:"type:varchar(50)"`
	OperatorID       *uuid.UUID               `gorm:"type:uuid;index"`
	PeriodFrom       *time.Time
	PeriodTo         *time.Time
	TotalQuantity    int                      `gorm:"not null;default:0"`
	TotalAmount      decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Status           finance.SettlementStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CancelledAt      *time.Time
	Remark           string                `gorm:"type:text"`
	Items            []SettlementItemModel `gorm:"foreignKey:SettlementID;references:ID"`
}

// TableName returns the table name for GORM
func (SettlementBatchModel) TableName() string {
	return "settlement_batches"
}

// ToDomain converts the persistence model to a domain SettlementBatch.
func (m *SettlementBatchModel) ToDomain() *finance.SettlementBatch {
	items := make([]finance.SettlementItem, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}
	return &finance.SettlementBatch{
		TenantAggregateRoot: m.tenantAggregateRoot(m.TenantID),
		SettlementNumber:    m.SettlementNumber,
		OrderID:             m.OrderID,
		OrderNumber:         m.OrderNumber,
		StyleNumber:         m.StyleNumber,
		OperatorID:          m.OperatorID,
		PeriodFrom:          m.PeriodFrom,
		PeriodTo:            m.PeriodTo,
		TotalQuantity:       m.TotalQuantity,
		TotalAmount:         m.TotalAmount,
		Status:              m.Status,
		CancelledAt:         m.CancelledAt,
		Remark:              m.Remark,
		Items:               items,
	}
}

// FromDomain populates the persistence model from a domain SettlementBatch.
func (m *SettlementBatchModel) FromDomain(b *finance.SettlementBatch) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.TenantID = b.TenantID
	m.SettlementNumber = b.SettlementNumber
	m.OrderID = b.OrderID
	m.OrderNumber = b.OrderNumber
	m.StyleNumber = b.StyleNumber
	m.OperatorID = b.OperatorID
	m.PeriodFrom = b.PeriodFrom
	m.PeriodTo = b.PeriodTo
	m.TotalQuantity = b.TotalQuantity
	m.TotalAmount = b.TotalAmount
	m.Status = b.Status
	m.CancelledAt = b.CancelledAt
	m.Remark = b.Remark
	m.Items = make([]SettlementItemModel, len(b.Items))
	for i := range b.Items {
		m.Items[i].FromDomain(&b.Items[i])
	}
}

// SettlementBatchModelFromDomain creates a new persistence model from a domain batch.
func SettlementBatchModelFromDomain(b *finance.SettlementBatch) *SettlementBatchModel {
	m := &SettlementBatchModel{}
	m.FromDomain(b)
	return m
}

// SettlementItemModel is the persistence model for one settlement line.
type SettlementItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	SettlementID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OperatorID   *uuid.UUID      `gorm:"type:uuid;index"`
	OperatorName string          `gorm:"type:varchar(100);not null"`
	ProcessName  string          `gorm:"type:varchar(100);not null"`
	Quantity     int             `gorm:"not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SettlementItemModel) TableName() string {
	return "settlement_items"
}

// ToDomain converts the persistence model to a domain SettlementItem.
func (m *SettlementItemModel) ToDomain() finance.SettlementItem {
	return finance.SettlementItem{
		ID:           m.ID,
		SettlementID: m.SettlementID,
		OperatorID:   m.OperatorID,
		OperatorName: m.OperatorName,
		ProcessName:  m.ProcessName,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		TotalAmount:  m.TotalAmount,
	}
}

// FromDomain populates the persistence model from a domain SettlementItem.
func (m *SettlementItemModel) FromDomain(item *finance.SettlementItem) {
	m.ID = item.ID
	m.SettlementID = item.SettlementID
	m.OperatorID = item.OperatorID
	m.OperatorName = item.OperatorName
	m.ProcessName = item.ProcessName
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.TotalAmount = item.TotalAmount
}

// PaymentRequestModel is the persistence model for the PaymentRequest aggregate root.
type PaymentRequestModel struct {
	TenantAggregateModel
	TenantID      uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:idx_payment_tenant_number,priority:1;index:idx_payment_tenant_biz,priority:1"`
	RequestNumber string                       `gorm:"type:varchar(50);not null;uniqueIndex:idx_payment_tenant_number,priority:2"`
	BizType       finance.PayableBizType       `gorm:"type:varchar(30);not null;index:idx_payment_tenant_biz,priority:2"`
	BizID         uuid.UUID                    `gorm:"type:uuid;not null;index:idx_payment_tenant_biz,priority:3"`
	BizNumber     string                       `gorm:"type:varchar(50)"`
	Payee         string                       `gorm:"type:varchar(200)"`
	Amount        decimal.Decimal              `gorm:"type:decimal(18,4);not null"`
	Method        string                       `gorm:"type:varchar(30)"`
	Status        finance.PaymentRequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaidAt        *time.Time
	ReceivedAt    *time.Time
	RejectReason  string `gorm:"type:varchar(500)"`
	Remark        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentRequestModel) TableName() string {
	return "payment_requests"
}

// ToDomain converts the persistence model to a domain PaymentRequest.
func (m *PaymentRequestModel) ToDomain() *finance.PaymentRequest {
	return &finance.PaymentRequest{
		TenantAggregateRoot: m.tenantAggregateRoot(m.TenantID),
		RequestNumber:       m.RequestNumber,
		BizType:             m.BizType,
		BizID:               m.BizID,
		BizNumber:           m.BizNumber,
		Payee:               m.Payee,
		Amount:              m.Amount,
		Method:              m.Method,
		Status:              m.Status,
		PaidAt:              m.PaidAt,
		ReceivedAt:          m.ReceivedAt,
		RejectReason:        m.RejectReason,
		Remark:              m.Remark,
	}
}

// FromDomain populates the persistence model from a domain PaymentRequest.
func (m *PaymentRequestModel) FromDomain(p *finance.PaymentRequest) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.TenantID = p.TenantID
	m.RequestNumber = p.RequestNumber
	m.BizType = p.BizType
	m.BizID = p.BizID
	m.BizNumber = p.BizNumber
	m.Payee = p.Payee
	m.Amount = p.Amount
	m.Method = p.Method
	m.Status = p.Status
	m.PaidAt = p.PaidAt
	m.ReceivedAt = p.ReceivedAt
	m.RejectReason = p.RejectReason
	m.Remark = p.Remark
}

// PaymentRequestModelFromDomain creates a new persistence model from a domain request.
func PaymentRequestModelFromDomain(p *finance.PaymentRequest) *PaymentRequestModel {
	m := &PaymentRequestModel{}
	m.FromDomain(p)
	return m
}

// ExpenseReimbursementModel is the persistence model for the ExpenseReimbursement aggregate root.
type ExpenseReimbursementModel struct {
	TenantAggregateModel
	TenantID      uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_expense_tenant_number,priority:1"`
	ExpenseNumber string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_expense_tenant_number,priority:2"`
	Applicant     string                `gorm:"type:varchar(100);not null"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status        finance.ExpenseStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaidAt        *time.Time
	ApprovalNote  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ExpenseReimbursementModel) TableName() string {
	return "expense_reimbursements"
}

// ToDomain converts the persistence model to a domain ExpenseReimbursement.
func (m *ExpenseReimbursementModel) ToDomain() *finance.ExpenseReimbursement {
	return &finance.ExpenseReimbursement{
		TenantAggregateRoot: m.tenantAggregateRoot(m.TenantID),
		ExpenseNumber:       m.ExpenseNumber,
		Applicant:           m.Applicant,
		Amount:              m.Amount,
		Status:              m.Status,
		PaidAt:              m.PaidAt,
		ApprovalNote:        m.ApprovalNote,
	}
}

// FromDomain populates the persistence model from a domain ExpenseReimbursement.
func (m *ExpenseReimbursementModel) FromDomain(e *finance.ExpenseReimbursement) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.TenantID = e.TenantID
	m.ExpenseNumber = e.ExpenseNumber
	m.Applicant = e.Applicant
	m.Amount = e.Amount
	m.Status = e.Status
	m.PaidAt = e.PaidAt
	m.ApprovalNote = e.ApprovalNote
}

// ExpenseReimbursementModelFromDomain creates a new persistence model from a domain expense.
func ExpenseReimbursementModelFromDomain(e *finance.ExpenseReimbursement) *ExpenseReimbursementModel {
	m := &ExpenseReimbursementModel{}
	m.FromDomain(e)
	return m
}
