package ledger

import (
	"math/big"
	"time"

	"github.com/luisvid/nft-lending-protocol/internal/domain/loan"
)

var basisPoints = big.NewInt(10_000)

const secondsPerHour = 3600

// elapsedSeconds returns the accrual window for a record: interest stops at
// the due date, so settlement later than endTime accrues nothing extra.
func elapsedSeconds(rec *loan.Record, now time.Time) uint64 {
	at := now
	if at.After(rec.EndTime) {
		at = rec.EndTime
	}
	if !at.After(rec.StartTime) {
		return 0
	}
	return uint64(at.Sub(rec.StartTime) / time.Second)
}

// accruedInterest computes principal * rateBps * wholeHours / 10_000. Partial
// hours are not prorated. The multiplications run before the basis-point
// division so small principals still accrue (5 * 500bps * 24h = 6, not 0).
func accruedInterest(principal *big.Int, rateBps, elapsedSecs uint64) *big.Int {
	hours := elapsedSecs / secondsPerHour
	if principal == nil || principal.Sign() <= 0 || rateBps == 0 || hours == 0 {
		return big.NewInt(0)
	}
	interest := new(big.Int).Mul(principal, new(big.Int).SetUint64(rateBps))
	interest.Mul(interest, new(big.Int).SetUint64(hours))
	return interest.Quo(interest, basisPoints)
}

func totalOwed(rec *loan.Record, rateBps uint64, now time.Time) *big.Int {
	owed := accruedInterest(rec.Principal, rateBps, elapsedSeconds(rec, now))
	return owed.Add(owed, rec.Principal)
}
