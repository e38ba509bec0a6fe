// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations can be reused across test packages. Each mock
// exposes one function field per interface method; a nil field falls back to
// a simple in-memory default so most tests only override what they assert.
//
// Usage:
//
//	eslStore := &mocks.MockEslStore{
//		SaveFn: func(ctx context.Context, esl *domain.Esl) (*domain.Esl, error) {
//			return nil, store.ErrDatabase
//		},
//	}
package mocks
