package locks

import (
	"fmt"
	"math/big"

	"github.com/lovelaced/polkadot-locks-report/types"
)

// VestingRemaining returns the balance of a schedule that is still locked at block current
func VestingRemaining(schedule types.VestingSchedule, current types.BlockNumber) *big.Int {
	if schedule.Locked == nil || schedule.Locked.Sign() <= 0 {
		return new(big.Int)
	}
	if current <= schedule.StartingBlock || schedule.PerBlock == nil || schedule.PerBlock.Sign() <= 0 {
		return new(big.Int).Set(schedule.Locked)
	}

	elapsed := new(big.Int).SetUint64(uint64(current - schedule.StartingBlock))
	unlocked := elapsed.Mul(elapsed, schedule.PerBlock)
	if unlocked.Cmp(schedule.Locked) >= 0 {
		return new(big.Int)
	}
	return unlocked.Sub(schedule.Locked, unlocked)
}

// VestingEndBlock returns the first block at which the schedule is fully vested
func VestingEndBlock(schedule types.VestingSchedule) (types.BlockNumber, error) {
	if schedule.PerBlock == nil || schedule.PerBlock.Sign() <= 0 {
		return 0, fmt.Errorf("%w: vesting schedule never ends", ErrArithmeticOverflow)
	}
	blocks := ceilDiv(schedule.Locked, schedule.PerBlock)
	if !blocks.IsUint64() {
		return 0, fmt.Errorf("%w: vesting duration %s blocks", ErrArithmeticOverflow, blocks)
	}
	return addBlocks(schedule.StartingBlock, blocks.Uint64())
}

// ComputeVestingLock returns the lock a vesting schedule still holds at block
// current, or nil when the schedule is fully vested. A schedule that releases
// nothing per block stays locked indefinitely.
func ComputeVestingLock(account types.AccountID, index int, schedule types.VestingSchedule, current types.BlockNumber) (*types.LockRecord, error) {
	if schedule.Locked == nil {
		return nil, nil
	}
	if err := checkBalance(schedule.Locked); err != nil {
		return nil, fmt.Errorf("vesting schedule %d locked: %w", index, err)
	}
	if schedule.PerBlock != nil {
		if err := checkBalance(schedule.PerBlock); err != nil {
			return nil, fmt.Errorf("vesting schedule %d per block: %w", index, err)
		}
	}

	remaining := VestingRemaining(schedule, current)
	if remaining.Sign() == 0 {
		return nil, nil
	}

	record := &types.LockRecord{
		Account: account,
		Class:   types.LockClassVesting,
		Amount:  remaining,
		Source: types.LockSource{
			Kind:     types.SourceVesting,
			Schedule: index,
		},
	}
	if schedule.PerBlock == nil || schedule.PerBlock.Sign() == 0 {
		record.Unlock = types.UnlockPoint{Indefinite: true}
		return record, nil
	}

	end, err := VestingEndBlock(schedule)
	if err != nil {
		return nil, fmt.Errorf("vesting schedule %d: %w", index, err)
	}
	record.Unlock = types.UnlockPoint{Block: end}
	return record, nil
}

func ceilDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}
