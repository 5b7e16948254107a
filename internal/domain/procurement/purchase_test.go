package procurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveArrivedQuantity(t *testing.T) {
	tests := []struct {
		name    string
		ordered int
		arrived int
		want    int
	}{
		{"arrived within ordered", 100, 80, 80},
		{"arrived over ordered is capped", 100, 120, 100},
		{"arrived equals ordered", 50, 50, 50},
		{"negative arrived counts as zero", 100, -5, 0},
		{"no ordered quantity passes arrived through", 0, 42, 42},
		{"no ordered quantity with negative arrived", 0, -1, 0},
		{"zero everywhere", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveArrivedQuantity(tt.ordered, tt.arrived))
		})
	}
}

func TestMaterialPurchaseIsOrderLinked(t *testing.T) {
	p := &MaterialPurchase{}
	assert.False(t, p.IsOrderLinked())

	nilID := uuid.Nil
	p.ProductionOrder = &nilID
	assert.False(t, p.IsOrderLinked())

	orderID := uuid.New()
	p.ProductionOrder = &orderID
	assert.True(t, p.IsOrderLinked())
}

func TestMaterialPurchaseEffectiveQuantity(t *testing.T) {
	p := &MaterialPurchase{OrderedQuantity: 30, ArrivedQuantity: 45}
	assert.Equal(t, 30, p.EffectiveQuantity())

	p = &MaterialPurchase{OrderedQuantity: 0, ArrivedQuantity: 45}
	assert.Equal(t, 45, p.EffectiveQuantity())
}
