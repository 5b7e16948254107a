package production

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScanTypeIsPayable(t *testing.T) {
	assert.True(t, ScanTypeProduction.IsPayable())
	assert.True(t, ScanTypeCutting.IsPayable())
	assert.False(t, ScanTypeProcurement.IsPayable())
	assert.False(t, ScanTypeQuality.IsPayable())
	assert.False(t, ScanTypeWarehouse.IsPayable())
}

func TestScanEventContribution(t *testing.T) {
	t.Run("precomputed cost wins over quantity times price", func(t *testing.T) {
		e := &ScanEvent{
			Quantity:  2,
			UnitPrice: decimal.NewFromFloat(2.0),
			Cost:      decimal.NewFromFloat(10.0),
		}
		assert.True(t, e.Contribution().Equal(decimal.NewFromFloat(10.0)))
	})

	t.Run("quantity times unit price when no cost", func(t *testing.T) {
		e := &ScanEvent{
			Quantity:  5,
			UnitPrice: decimal.NewFromFloat(2.0),
		}
		assert.True(t, e.Contribution().Equal(decimal.NewFromFloat(10.0)))
	})

	t.Run("zero when neither cost nor price is positive", func(t *testing.T) {
		e := &ScanEvent{Quantity: 5}
		assert.True(t, e.Contribution().IsZero())
	})

	t.Run("zero when quantity is not positive", func(t *testing.T) {
		e := &ScanEvent{Quantity: 0, UnitPrice: decimal.NewFromFloat(2.0)}
		assert.True(t, e.Contribution().IsZero())
	})
}

func TestScanEventIsSettled(t *testing.T) {
	e := &ScanEvent{}
	assert.False(t, e.IsSettled())

	id := uuid.New()
	e.SettlementID = &id
	assert.False(t, e.IsSettled())

	e.SettlementStatus = SettlementMarkSettled
	assert.True(t, e.IsSettled())
}

func TestScanEventFilterHasScope(t *testing.T) {
	assert.False(t, ScanEventFilter{}.HasScope())
	assert.False(t, ScanEventFilter{OperatorName: "Li Wei"}.HasScope())

	orderID := uuid.New()
	assert.True(t, ScanEventFilter{OrderID: &orderID}.HasScope())
	assert.True(t, ScanEventFilter{OrderNumber: "PO-20250101-0001"}.HasScope())

	from := time.Now()
	assert.True(t, ScanEventFilter{From: &from}.HasScope())
}

func TestScanEventFilterNormalized(t *testing.T) {
	early := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	f := ScanEventFilter{From: &late, To: &early}.Normalized()
	assert.Equal(t, early, *f.From)
	assert.Equal(t, late, *f.To)

	f = ScanEventFilter{From: &early, To: &late}.Normalized()
	assert.Equal(t, early, *f.From)
	assert.Equal(t, late, *f.To)
}
