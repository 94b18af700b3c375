package eventmock

import (
	"context"
	"sync"

	domain "github.com/luisvid/nft-lending-protocol/internal/domain/loan"
)

// Store is a function-backed mock satisfying domain.EventStore. With no
// functions set it records appends in memory, which is what most engine tests
// want.
type Store struct {
	AppendFn       func(ctx context.Context, e *domain.Event) error
	ListByLoanIDFn func(ctx context.Context, loanID uint64) ([]domain.Event, error)

	mu       sync.Mutex
	Appended []domain.Event
}

func (s *Store) Append(ctx context.Context, e *domain.Event) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, e)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Appended = append(s.Appended, *e)
	return nil
}

func (s *Store) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Event, error) {
	if s.ListByLoanIDFn != nil {
		return s.ListByLoanIDFn(ctx, loanID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Event
	for _, e := range s.Appended {
		if e.LoanID == loanID {
			out = append(out, e)
		}
	}
	return out, nil
}
