package locks

import (
	"math"
	"math/big"
	"testing"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedule(locked, perBlock int64, start types.BlockNumber) types.VestingSchedule {
	return types.VestingSchedule{
		Locked:        big.NewInt(locked),
		PerBlock:      big.NewInt(perBlock),
		StartingBlock: start,
	}
}

func TestComputeVestingLockPartiallyVested(t *testing.T) {
	s := schedule(500, 10, 0)

	record, err := ComputeVestingLock(testAccount, 0, s, 40)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, types.LockClassVesting, record.Class)
	assert.Equal(t, int64(100), record.Amount.Int64())
	assert.Equal(t, types.UnlockPoint{Block: 50}, record.Unlock)

	agg := Aggregate(testAccount, types.LockClassVesting, []types.LockRecord{*record}, 40)
	assert.Equal(t, int64(100), agg.Amount.Int64())
	assert.True(t, agg.Active)
}

func TestComputeVestingLockFullyVested(t *testing.T) {
	s := schedule(500, 10, 100)
	for _, current := range []types.BlockNumber{150, 151, 10000, math.MaxUint32} {
		record, err := ComputeVestingLock(testAccount, 0, s, current)
		require.NoError(t, err)
		assert.Nil(t, record, "current=%d", current)
		assert.Zero(t, VestingRemaining(s, current).Sign())
	}
}

func TestComputeVestingLockNotStarted(t *testing.T) {
	s := schedule(500, 10, 100)
	for _, current := range []types.BlockNumber{0, 99, 100} {
		record, err := ComputeVestingLock(testAccount, 0, s, current)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, int64(500), record.Amount.Int64(), "current=%d", current)
		assert.Equal(t, types.BlockNumber(150), record.Unlock.Block)
	}
}

func TestComputeVestingLockCeilsEndBlock(t *testing.T) {
	// 7 blocks release 21 of 22, the last unit needs an 8th block
	s := schedule(22, 3, 10)
	end, err := VestingEndBlock(s)
	require.NoError(t, err)
	assert.Equal(t, types.BlockNumber(18), end)

	record, err := ComputeVestingLock(testAccount, 0, s, 17)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(1), record.Amount.Int64())
	assert.True(t, record.Unlock.ActiveAt(17))

	record, err = ComputeVestingLock(testAccount, 0, s, 18)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestVestingRemainingMonotonic(t *testing.T) {
	s := schedule(1000, 7, 20)
	prev := VestingRemaining(s, 0)
	for b := types.BlockNumber(1); b < 200; b++ {
		cur := VestingRemaining(s, b)
		assert.LessOrEqual(t, cur.Cmp(prev), 0, "block=%d", b)
		assert.GreaterOrEqual(t, cur.Sign(), 0)
		prev = cur
	}
}

func TestComputeVestingLockZeroRateIsIndefinite(t *testing.T) {
	s := schedule(500, 0, 0)
	record, err := ComputeVestingLock(testAccount, 3, s, 1000)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, record.Unlock.Indefinite)
	assert.Equal(t, 3, record.Source.Schedule)
}

func TestComputeVestingLockOverflow(t *testing.T) {
	s := schedule(math.MaxInt64, 1, 10)
	_, err := ComputeVestingLock(testAccount, 0, s, 11)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	huge := types.VestingSchedule{
		Locked:   new(big.Int).Lsh(big.NewInt(1), 129),
		PerBlock: big.NewInt(1),
	}
	_, err = ComputeVestingLock(testAccount, 0, huge, 1)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}
