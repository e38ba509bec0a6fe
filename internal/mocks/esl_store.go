package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bchastanier/esltrack/internal/domain"
	"github.com/bchastanier/esltrack/internal/store"
	"github.com/google/uuid"
)

// MockEslStore implements store.EslStore for testing
type MockEslStore struct {
	// Function fields for customizable behavior
	SaveFn                  func(ctx context.Context, esl *domain.Esl) (*domain.Esl, error)
	FindUnprintedBySerialFn func(ctx context.Context, serial string) ([]*domain.Esl, error)
	MarkPrintedFn           func(ctx context.Context, esl *domain.Esl) (*domain.Esl, error)
	FindByDateRangeFn       func(ctx context.Context, serial, start, end string) ([]*domain.Esl, error)

	// Data for the default in-memory implementation, keyed by objectId
	mu   sync.Mutex
	Esls map[string]*domain.Esl
}

// NewMockEslStore creates a new mock store with initialized defaults
func NewMockEslStore() *MockEslStore {
	return &MockEslStore{
		Esls: make(map[string]*domain.Esl),
	}
}

// Ensure MockEslStore implements store.EslStore interface
var _ store.EslStore = (*MockEslStore)(nil)

// Save implements the EslStore interface
func (m *MockEslStore) Save(ctx context.Context, esl *domain.Esl) (*domain.Esl, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, esl)
	}

	if err := esl.Validate(); err != nil {
		return nil, err
	}
	if esl.Saved() {
		return nil, fmt.Errorf("%w: %s", store.ErrIdentityAssigned, esl.ObjectID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Millisecond)
	saved := *esl
	saved.ObjectID = uuid.New().String()
	saved.CreatedAt = &now

	m.Esls[saved.ObjectID] = &saved
	return &saved, nil
}

// FindUnprintedBySerial implements the EslStore interface
func (m *MockEslStore) FindUnprintedBySerial(ctx context.Context, serial string) ([]*domain.Esl, error) {
	if m.FindUnprintedBySerialFn != nil {
		return m.FindUnprintedBySerialFn(ctx, serial)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	matches := []*domain.Esl{}
	for _, esl := range m.Esls {
		if esl.Serial == serial && !esl.Printed {
			copied := *esl
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

// MarkPrinted implements the EslStore interface
func (m *MockEslStore) MarkPrinted(ctx context.Context, esl *domain.Esl) (*domain.Esl, error) {
	if m.MarkPrintedFn != nil {
		return m.MarkPrintedFn(ctx, esl)
	}

	if !esl.Saved() {
		return nil, store.ErrMissingIdentity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.Esls[esl.ObjectID]
	if !ok {
		return nil, fmt.Errorf("%w: no esl row with objectId %s", store.ErrDatabase, esl.ObjectID)
	}
	stored.Printed = true

	printed := *stored
	return &printed, nil
}

// FindByDateRange implements the EslStore interface
func (m *MockEslStore) FindByDateRange(ctx context.Context, serial, start, end string) ([]*domain.Esl, error) {
	if m.FindByDateRangeFn != nil {
		return m.FindByDateRangeFn(ctx, serial, start, end)
	}

	startAt, err := store.ParseTimestamp(start)
	if err != nil {
		return nil, err
	}
	endAt, err := store.ParseTimestamp(end)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	matches := []*domain.Esl{}
	for _, esl := range m.Esls {
		if esl.Serial != serial || esl.CreatedAt == nil {
			continue
		}
		if esl.CreatedAt.After(startAt) && esl.CreatedAt.Before(endAt) {
			copied := *esl
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}
