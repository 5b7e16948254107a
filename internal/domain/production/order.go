package production

import (
	"context"

	"github.com/google/uuid"
)

// OrderRef is the slice of a production order the settlement engine needs:
// enough to resolve an order number to an id and backfill the style number.
type OrderRef struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	OrderNumber string
	StyleNumber string
	Cancelled   bool
}

// OrderRepository resolves production order references
type OrderRepository interface {
	FindRefByID(ctx context.Context, tenantID, id uuid.UUID) (*OrderRef, error)
	FindRefByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderRef, error)
}
