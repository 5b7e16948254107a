package finance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeNumberStore mimics a table with a uniqueness constraint on the number
type fakeNumberStore struct {
	mu      sync.Mutex
	numbers map[string]bool
}

func newFakeNumberStore() *fakeNumberStore {
	return &fakeNumberStore{numbers: make(map[string]bool)}
}

func (s *fakeNumberStore) MaxNumberWithPrefix(_ context.Context, _ uuid.UUID, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := ""
	for n := range s.numbers {
		if len(n) >= len(prefix) && n[:len(prefix)] == prefix && n > max {
			max = n
		}
	}
	return max, nil
}

func (s *fakeNumberStore) persist(_ context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.numbers[number] {
		return gorm.ErrDuplicatedKey
	}
	s.numbers[number] = true
	return nil
}

func TestDocumentNumberGenerator(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	today := time.Now().Format("20060102")

	t.Run("first number of the day", func(t *testing.T) {
		store := newFakeNumberStore()
		gen := NewDocumentNumberGenerator(store)

		number, err := gen.Generate(ctx, tenantID, PrefixPayrollSettlement, store.persist)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PS%s0001", today), number)
	})

	t.Run("increments past the existing maximum", func(t *testing.T) {
		store := newFakeNumberStore()
		store.numbers[fmt.Sprintf("PS%s0041", today)] = true
		gen := NewDocumentNumberGenerator(store)

		number, err := gen.Generate(ctx, tenantID, PrefixPayrollSettlement, store.persist)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PS%s0042", today), number)
	})

	t.Run("retries over a raced duplicate", func(t *testing.T) {
		store := newFakeNumberStore()
		gen := NewDocumentNumberGenerator(store)

		// a concurrent caller grabbed the next two numbers after our read
		calls := 0
		persist := func(ctx context.Context, number string) error {
			calls++
			if calls <= 2 {
				return gorm.ErrDuplicatedKey
			}
			return store.persist(ctx, number)
		}

		number, err := gen.Generate(ctx, tenantID, PrefixPayrollSettlement, persist)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PS%s0003", today), number)
	})

	t.Run("non-duplicate store error is fatal", func(t *testing.T) {
		store := newFakeNumberStore()
		gen := NewDocumentNumberGenerator(store)
		storeDown := errors.New("connection refused")

		_, err := gen.Generate(ctx, tenantID, PrefixPayrollSettlement, func(context.Context, string) error {
			return storeDown
		})
		assert.ErrorIs(t, err, storeDown)
	})

	t.Run("falls back to clock suffix after exhausting retries", func(t *testing.T) {
		store := newFakeNumberStore()
		gen := NewDocumentNumberGenerator(store)

		calls := 0
		persist := func(ctx context.Context, number string) error {
			calls++
			if calls <= maxNumberAttempts {
				return gorm.ErrDuplicatedKey
			}
			return store.persist(ctx, number)
		}

		number, err := gen.Generate(ctx, tenantID, PrefixPayrollSettlement, persist)
		require.NoError(t, err)
		assert.Len(t, number, len("PS")+8+9)
	})

	t.Run("exhausted fallback is a generation error", func(t *testing.T) {
		store := newFakeNumberStore()
		gen := NewDocumentNumberGenerator(store)

		_, err := gen.Generate(ctx, tenantID, PrefixPayrollSettlement, func(context.Context, string) error {
			return gorm.ErrDuplicatedKey
		})
		assert.ErrorIs(t, err, ErrNumberExhausted)
	})

	t.Run("empty prefix is rejected", func(t *testing.T) {
		store := newFakeNumberStore()
		gen := NewDocumentNumberGenerator(store)

		_, err := gen.Generate(ctx, tenantID, "", store.persist)
		assert.Error(t, err)
	})
}

func TestDocumentNumberGeneratorConcurrent(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	store := newFakeNumberStore()
	gen := NewDocumentNumberGenerator(store)

	const callers = 50
	results := make(chan string, callers)
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := gen.Generate(ctx, tenantID, PrefixPaymentRequest, store.persist)
			if err != nil {
				errs <- err
				return
			}
			results <- number
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent generation failed: %v", err)
	}

	seen := make(map[string]bool)
	for number := range results {
		assert.False(t, seen[number], "duplicate number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, callers)
}
