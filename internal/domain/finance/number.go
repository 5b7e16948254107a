package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document number prefixes
const (
	PrefixMaterialReconciliation = "MR"
	PrefixShipmentReconciliation = "SR"
	PrefixPayrollSettlement      = "PS"
	PrefixPaymentRequest         = "WP"
)

const (
	numberSequenceWidth = 4
	maxNumberAttempts   = 25
)

// ErrNumberExhausted is returned when every retry and the clock fallback collided
var ErrNumberExhausted = shared.NewDomainError("NUMBER_EXHAUSTED", "Could not generate a unique document number")

// NumberSource reads the highest existing document number sharing a prefix
type NumberSource interface {
	MaxNumberWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error)
}

// PersistFunc attempts to store the owning document under the candidate
// number. It must surface uniqueness violations as gorm.ErrDuplicatedKey.
type PersistFunc func(ctx context.Context, number string) error

// DocumentNumberGenerator produces collision-resistant human-readable
// document numbers of the form prefix + yyyyMMdd + zero-padded sequence.
// Races between concurrent callers are resolved by bounded retry on the
// store's uniqueness constraint, not by locking.
type DocumentNumberGenerator struct {
	source NumberSource
	now    func() time.Time
}

// NewDocumentNumberGenerator creates a generator backed by the given source
func NewDocumentNumberGenerator(source NumberSource) *DocumentNumberGenerator {
	return &DocumentNumberGenerator{source: source, now: time.Now}
}

// Generate derives the next number for the prefix and calls persist with it.
// On a duplicate-key failure it retries with an incremented sequence up to
// the attempt bound, then falls back once to a clock-derived suffix. Any
// non-duplicate persist error aborts immediately.
func (g *DocumentNumberGenerator) Generate(ctx context.Context, tenantID uuid.UUID, prefix string, persist PersistFunc) (string, error) {
	if prefix == "" {
		return "", shared.NewDomainError("INVALID_PREFIX", "Number prefix cannot be empty")
	}

	datedPrefix := prefix + g.now().Format("20060102")

	max, err := g.source.MaxNumberWithPrefix(ctx, tenantID, datedPrefix)
	if err != nil {
		return "", fmt.Errorf("reading max document number for %s: %w", datedPrefix, err)
	}

	seq := parseTrailingSequence(max, datedPrefix) + 1

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%s%0*d", datedPrefix, numberSequenceWidth, seq+attempt)
		err := persist(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}
	}

	// every sequential candidate collided; trade readability for uniqueness
	fallback := fmt.Sprintf("%s%09d", datedPrefix, g.now().UnixNano()%1_000_000_000)
	if err := persist(ctx, fallback); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrNumberExhausted
		}
		return "", err
	}
	return fallback, nil
}

// parseTrailingSequence extracts the numeric sequence after the dated prefix.
// Malformed or foreign numbers yield zero so generation restarts the day.
func parseTrailingSequence(number, datedPrefix string) int {
	if number == "" || !strings.HasPrefix(number, datedPrefix) {
		return 0
	}
	var seq int
	if _, err := fmt.Sscanf(number[len(datedPrefix):], "%d", &seq); err != nil {
		return 0
	}
	return seq
}
