// Package eventstore persists the ledger's append-only audit log through
// gorm. Rows are only ever inserted; there is no update or delete path.
package eventstore

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/luisvid/nft-lending-protocol/internal/domain/loan"
)

type EventRepository struct{ db *gorm.DB }

func New(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

// Migrate creates the loan_events table.
func (r *EventRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.Event{})
}

func (r *EventRepository) Append(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Event, error) {
	var out []domain.Event
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
