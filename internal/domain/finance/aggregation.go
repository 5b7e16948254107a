package finance

import (
	"sort"

	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNoEligibleRecords is returned when a settlement scope matches no payable work
var ErrNoEligibleRecords = shared.NewDomainError("NO_ELIGIBLE_RECORDS", "No eligible records for settlement")

// SettlementLine is the aggregation of one operator's work on one process
type SettlementLine struct {
	OperatorID   *uuid.UUID
	OperatorName string
	ProcessName  string
	Quantity     int
	UnitPrice    decimal.Decimal
	Amount       decimal.Decimal
}

const unknownPlaceholder = "unknown"

type groupKey struct {
	operator string
	process  string
}

// BuildSettlementLines groups scan events by (operator, process) and sums
// quantity and payable amount. Failed scans and non-positive quantities are
// skipped entirely; events with no price information still count their
// quantity and contribute zero amount. The derived unit price is the
// half-up rounded average amount per piece.
func BuildSettlementLines(events []production.ScanEvent) []SettlementLine {
	groups := make(map[groupKey]*SettlementLine)
	order := make([]groupKey, 0)

	for i := range events {
		e := &events[i]
		if e.Result != production.ScanResultSuccess || e.Quantity <= 0 {
			continue
		}

		operatorName := e.OperatorName
		if operatorName == "" {
			operatorName = unknownPlaceholder
		}
		processName := e.ProcessName
		if processName == "" {
			processName = unknownPlaceholder
		}

		key := groupKey{operator: operatorKey(e.OperatorID, operatorName), process: processName}
		g, ok := groups[key]
		if !ok {
			g = &SettlementLine{
				OperatorID:   e.OperatorID,
				OperatorName: operatorName,
				ProcessName:  processName,
				Amount:       decimal.Zero,
			}
			groups[key] = g
			order = append(order, key)
		}

		g.Quantity += e.Quantity
		g.Amount = g.Amount.Add(e.Contribution())
	}

	lines := make([]SettlementLine, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if g.Quantity > 0 {
			g.UnitPrice = g.Amount.
				Div(decimal.NewFromInt(int64(g.Quantity))).
				Round(2)
		}
		lines = append(lines, *g)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].OperatorName != lines[j].OperatorName {
			return lines[i].OperatorName < lines[j].OperatorName
		}
		return lines[i].ProcessName < lines[j].ProcessName
	})

	return lines
}

func operatorKey(id *uuid.UUID, name string) string {
	if id != nil && *id != uuid.Nil {
		return id.String()
	}
	return "name:" + name
}
