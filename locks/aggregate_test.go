package locks

import (
	"math/big"
	"testing"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/stretchr/testify/assert"
)

func votingRecord(amount int64, unlock types.BlockNumber) types.LockRecord {
	return types.LockRecord{
		Account: testAccount,
		Class:   types.LockClassVoting,
		Amount:  big.NewInt(amount),
		Unlock:  types.UnlockPoint{Block: unlock},
	}
}

func TestAggregateMaxAmountThenMaxUnlock(t *testing.T) {
	records := []types.LockRecord{
		votingRecord(10, 100),
		votingRecord(10, 150),
		votingRecord(5, 90),
	}

	agg := Aggregate(testAccount, types.LockClassVoting, records, 120)
	assert.Equal(t, int64(10), agg.Amount.Int64())
	assert.Equal(t, types.UnlockPoint{Block: 150}, agg.Unlock)
	assert.True(t, agg.Active)
	assert.Equal(t, 3, agg.Contributing)
}

func TestAggregateIgnoresLaterSmallerLock(t *testing.T) {
	records := []types.LockRecord{
		votingRecord(5, 900),
		votingRecord(20, 100),
	}
	agg := Aggregate(testAccount, types.LockClassVoting, records, 50)
	assert.Equal(t, int64(20), agg.Amount.Int64())
	assert.Equal(t, types.BlockNumber(100), agg.Unlock.Block)
}

func TestAggregateIndefiniteWinsTie(t *testing.T) {
	indefinite := votingRecord(10, 0)
	indefinite.Unlock = types.UnlockPoint{Indefinite: true}
	records := []types.LockRecord{votingRecord(10, 5000), indefinite, votingRecord(10, 6000)}

	agg := Aggregate(testAccount, types.LockClassVoting, records, 7000)
	assert.True(t, agg.Unlock.Indefinite)
	assert.True(t, agg.Active)
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(testAccount, types.LockClassVoting, nil, 10)
	assert.Zero(t, agg.Amount.Sign())
	assert.False(t, agg.Active)
	assert.Zero(t, agg.Contributing)
}

func TestAggregateExpired(t *testing.T) {
	agg := Aggregate(testAccount, types.LockClassVoting, []types.LockRecord{votingRecord(10, 100)}, 100)
	assert.False(t, agg.Active)
}

func TestAggregateIsIdempotent(t *testing.T) {
	records := []types.LockRecord{votingRecord(3, 30), votingRecord(9, 10), votingRecord(9, 20)}
	first := Aggregate(testAccount, types.LockClassVoting, records, 15)
	second := Aggregate(testAccount, types.LockClassVoting, records, 15)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(9), records[1].Amount.Int64(), "input records must not be modified")
}

func TestAggregateAccountSeparatesClasses(t *testing.T) {
	vesting := types.LockRecord{
		Account: testAccount,
		Class:   types.LockClassVesting,
		Amount:  big.NewInt(1000),
		Unlock:  types.UnlockPoint{Block: 10},
	}
	records := []types.LockRecord{votingRecord(10, 100), vesting}

	voting, vest := AggregateAccount(testAccount, records, 50)
	assert.Equal(t, int64(10), voting.Amount.Int64())
	assert.True(t, voting.Active)
	assert.Equal(t, 1, voting.Contributing)

	assert.Equal(t, int64(1000), vest.Amount.Int64())
	assert.False(t, vest.Active)
	assert.Equal(t, types.LockClassVesting, vest.Class)
}
