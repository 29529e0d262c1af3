// Package mocks provides centralized fakes for tests.
//
// The store fakes are in-memory, safe for concurrent use, and honour the
// same contracts as the real backends: email uniqueness on create, set
// semantics for likes, and the store sentinel errors. Every method can be
// overridden with its Fn field.
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id string) (*domain.User, error) {
//	    return nil, errors.New("boom")
//	}
package mocks
