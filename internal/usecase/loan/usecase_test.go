package loan

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/luisvid/nft-lending-protocol/internal/asset/memnft"
	"github.com/luisvid/nft-lending-protocol/internal/asset/memtoken"
	"github.com/luisvid/nft-lending-protocol/internal/asset/oracle"
	domain "github.com/luisvid/nft-lending-protocol/internal/domain/loan"
	"github.com/luisvid/nft-lending-protocol/internal/ledger"
	"github.com/luisvid/nft-lending-protocol/internal/testutil/eventmock"
)

var (
	ownerAcc    = strings.Repeat("a", 32)
	custodyAcc  = strings.Repeat("c", 32)
	borrowerAcc = strings.Repeat("b", 32)
)

func newUsecase(t *testing.T) (*Usecase, *memnft.Registry, *memtoken.Token) {
	t.Helper()
	eng, err := ledger.New(ownerAcc, custodyAcc, ledger.DefaultParams())
	if err != nil {
		t.Fatalf("ledger.New: %v", err)
	}
	token := memtoken.New()
	registry := memnft.New()
	feed := oracle.NewFixed()
	events := &eventmock.Store{}

	token.Mint(custodyAcc, big.NewInt(1_000_000))
	feed.SetPrice("art", big.NewInt(1000))

	eng.SetToken(token)
	eng.SetOracle(feed)
	eng.SetEventStore(events)
	eng.RegisterCollateralClass("art", registry)
	registry.RegisterReceiver(custodyAcc, eng)

	return NewUsecase(eng, events), registry, token
}

func TestOriginate_ReturnsPopulatedDTO(t *testing.T) {
	uc, registry, _ := newUsecase(t)
	registry.Mint(borrowerAcc, 1)
	if err := registry.Approve(borrowerAcc, custodyAcc, 1); err != nil {
		t.Fatalf("approve: %v", err)
	}

	dto, err := uc.Originate(context.Background(), borrowerAcc, OriginateInput{
		CollateralClass: "art",
		CollateralID:    1,
		Principal:       "500",
		DurationHours:   24,
	})
	if err != nil {
		t.Fatalf("originate: %v", err)
	}
	if dto.LoanID != 1 || dto.Borrower != borrowerAcc || dto.Principal != "500" {
		t.Fatalf("dto = %+v", dto)
	}
	if dto.Status != string(domain.StatusActive) {
		t.Fatalf("status = %s", dto.Status)
	}
	if dto.TotalOwed != "500" { // nothing accrued yet
		t.Fatalf("total owed = %s", dto.TotalOwed)
	}
}

func TestOriginate_BadAmountString(t *testing.T) {
	uc, _, _ := newUsecase(t)
	for _, raw := range []string{"", "abc", "-5", "0", "1.5"} {
		_, err := uc.Originate(context.Background(), borrowerAcc, OriginateInput{
			CollateralClass: "art", CollateralID: 1, Principal: raw, DurationHours: 24,
		})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("principal %q: err = %v, want ErrInvalidAmount", raw, err)
		}
	}
}

func TestGet_UnknownLoan(t *testing.T) {
	uc, _, _ := newUsecase(t)
	if _, err := uc.Get(42); !errors.Is(err, domain.ErrInvalidLoanID) {
		t.Fatalf("err = %v, want ErrInvalidLoanID", err)
	}
}

func TestEvents_ValidatesLoanID(t *testing.T) {
	uc, registry, _ := newUsecase(t)
	if _, err := uc.Events(context.Background(), 1); !errors.Is(err, domain.ErrInvalidLoanID) {
		t.Fatalf("err = %v, want ErrInvalidLoanID", err)
	}

	registry.Mint(borrowerAcc, 1)
	_ = registry.Approve(borrowerAcc, custodyAcc, 1)
	if _, err := uc.Originate(context.Background(), borrowerAcc, OriginateInput{
		CollateralClass: "art", CollateralID: 1, Principal: "100", DurationHours: 24,
	}); err != nil {
		t.Fatalf("originate: %v", err)
	}
	events, err := uc.Events(context.Background(), 1)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].Kind != domain.EventOriginated {
		t.Fatalf("events = %+v", events)
	}
}

func TestSetInterestRate_Propagates(t *testing.T) {
	uc, _, _ := newUsecase(t)
	if err := uc.SetInterestRate(borrowerAcc, 100); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if err := uc.SetInterestRate(ownerAcc, 100); err != nil {
		t.Fatalf("owner: %v", err)
	}
}
