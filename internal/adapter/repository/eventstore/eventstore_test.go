package eventstore

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/luisvid/nft-lending-protocol/internal/domain/loan"
)

func newRepo(t *testing.T) *EventRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo := New(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func TestAppendAndList(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	rows := []domain.Event{
		{LoanID: 1, Kind: domain.EventOriginated, Borrower: "b", Principal: "500", DurationHours: 24},
		{LoanID: 2, Kind: domain.EventOriginated, Borrower: "b", Principal: "700", DurationHours: 48},
		{LoanID: 1, Kind: domain.EventRepaid, Borrower: "b", AmountPaid: "506"},
	}
	for i := range rows {
		if err := repo.Append(ctx, &rows[i]); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if rows[i].ID == 0 {
			t.Fatalf("append %d: id not assigned", i)
		}
	}

	got, err := repo.ListByLoanID(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Insertion order is preserved.
	if got[0].Kind != domain.EventOriginated || got[1].Kind != domain.EventRepaid {
		t.Fatalf("kinds = %s, %s", got[0].Kind, got[1].Kind)
	}
	if got[1].AmountPaid != "506" {
		t.Fatalf("amount_paid = %s", got[1].AmountPaid)
	}
}

func TestListUnknownLoanIsEmpty(t *testing.T) {
	repo := newRepo(t)
	got, err := repo.ListByLoanID(context.Background(), 99)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestBigAmountSurvivesRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	// Well beyond int64; stored as a decimal string column.
	huge := "123456789012345678901234567890"
	if err := repo.Append(ctx, &domain.Event{LoanID: 7, Kind: domain.EventLiquidated, UnitPrice: huge, Refund: "0"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := repo.ListByLoanID(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].UnitPrice != huge {
		t.Fatalf("got = %+v", got)
	}
}
