package report

import (
	"math/big"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lovelaced/polkadot-locks-report/locks"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
)

// NewID returns a fresh report run id
func NewID() string {
	return uuid.NewString()
}

// Build assembles the report of a run. Accounts are ordered by address.
func Build(id string, accounts []locks.AccountLocks, current types.BlockNumber, generatedAt time.Time, chainConfig types.ChainConfig) *types.Report {
	r := &types.Report{
		ID:           id,
		Chain:        chainConfig.ConfigName,
		TokenSymbol:  chainConfig.TokenSymbol,
		CurrentBlock: current,
		GeneratedAt:  generatedAt.UTC(),
		Accounts:     make([]types.AccountReport, 0, len(accounts)),
	}
	for _, a := range accounts {
		r.Accounts = append(r.Accounts, BuildAccount(a, current, generatedAt, chainConfig))
	}
	sort.SliceStable(r.Accounts, func(i, j int) bool {
		return r.Accounts[i].Address < r.Accounts[j].Address
	})
	return r
}

// BuildAccount renders the computed locks of one account
func BuildAccount(a locks.AccountLocks, current types.BlockNumber, generatedAt time.Time, chainConfig types.ChainConfig) types.AccountReport {
	v := view{current: current, generatedAt: generatedAt.UTC(), chain: chainConfig}

	out := types.AccountReport{
		Address:    a.Address,
		Status:     a.Status,
		Records:    make([]types.LockRecordView, 0, len(a.Records)),
		LockTotals: make([]types.BalanceLockView, 0, len(a.Locks)),
	}
	if a.Account != (types.AccountID{}) {
		out.PublicKey = a.Account.Hex()
	}
	for _, f := range a.Failures {
		out.Failures = append(out.Failures, f.String())
	}

	out.Voting = v.lock(a.Voting)
	out.Voting.Authoritative = a.VotingAuthoritative()
	out.Vesting = v.lock(a.Vesting)
	out.Vesting.Authoritative = a.Status != types.StatusFailed

	for _, r := range a.Records {
		unlock := v.unlock(r.Unlock, r.Amount)
		out.Records = append(out.Records, types.LockRecordView{
			Class:           r.Class,
			Source:          r.Source,
			Description:     r.Source.String(),
			Amount:          amountString(r.Amount),
			AmountFormatted: v.format(r.Amount),
			UnlockBlock:     r.Unlock.Block,
			Indefinite:      r.Unlock.Indefinite,
			Active:          r.Unlock.ActiveAt(current),
			EstimatedUnlock: unlock.estimate,
			Remaining:       unlock.remaining,
		})
	}

	out.Liquidity = LiquidityLadder(a.Records, current, chainConfig)

	for _, l := range a.Locks {
		out.LockTotals = append(out.LockTotals, types.BalanceLockView{
			ID:              l.ID,
			Amount:          amountString(l.Amount),
			AmountFormatted: v.format(l.Amount),
		})
	}
	return out
}

type view struct {
	current     types.BlockNumber
	generatedAt time.Time
	chain       types.ChainConfig
}

type unlockEstimate struct {
	estimate  *time.Time
	remaining string
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func (v view) format(amount *big.Int) string {
	return utils.FormatBalance(amount, v.chain.TokenDecimals, v.chain.TokenSymbol)
}

func (v view) unlock(p types.UnlockPoint, amount *big.Int) unlockEstimate {
	switch {
	case amount == nil || amount.Sign() == 0:
		return unlockEstimate{remaining: "none"}
	case p.Indefinite:
		return unlockEstimate{remaining: "indefinite"}
	}
	at := utils.EstimateBlockTime(p.Block, v.current, v.generatedAt, v.chain.SecondsPerBlock)
	return unlockEstimate{
		estimate:  &at,
		remaining: utils.FormatRemaining(at.Sub(v.generatedAt)),
	}
}

func (v view) lock(l types.AggregatedLock) types.LockView {
	unlock := v.unlock(l.Unlock, l.Amount)
	return types.LockView{
		Amount:          amountString(l.Amount),
		AmountFormatted: v.format(l.Amount),
		UnlockBlock:     l.Unlock.Block,
		Indefinite:      l.Unlock.Indefinite,
		Active:          l.Active,
		EstimatedUnlock: unlock.estimate,
		Remaining:       unlock.remaining,
		Contributing:    l.Contributing,
	}
}
