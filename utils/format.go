package utils

import (
	"fmt"
	"math/big"
	"time"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/shopspring/decimal"
)

// PlancksToTokens converts a balance in the chain's smallest unit into tokens
func PlancksToTokens(amount *big.Int, decimals uint8) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals))
}

// FormatBalance renders a balance with all token decimals and the token symbol
func FormatBalance(amount *big.Int, decimals uint8, symbol string) string {
	return fmt.Sprintf("%s %s", PlancksToTokens(amount, decimals).StringFixed(int32(decimals)), symbol)
}

// BlocksToDuration estimates the wall clock time spanned by a number of blocks
func BlocksToDuration(blocks int64, secondsPerBlock uint64) time.Duration {
	return time.Duration(blocks) * time.Duration(secondsPerBlock) * time.Second
}

// EstimateBlockTime estimates when block target is produced, given that block
// current was produced at now.
func EstimateBlockTime(target, current types.BlockNumber, now time.Time, secondsPerBlock uint64) time.Time {
	return now.Add(BlocksToDuration(int64(target)-int64(current), secondsPerBlock))
}

// FormatRemaining renders a remaining lock duration in days, hours and minutes
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	d = d.Round(time.Minute)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
