package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lovelaced/polkadot-locks-report/chain"
	"github.com/lovelaced/polkadot-locks-report/locks"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice       = "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"
	bob         = "14E5nqKAp3oAJcmzgZhUD2RcptBeUBScxKHgJKU4HPNcKVf3"
	charlie     = "14Gjs1TD93gnwEBfDMHoCgsuf1s2TVKUP6Z1qKmAZnZ8cW5q"
	aliceKusama = "HNZata7iMYWmk5RvZRTiAsSDhV8366zq2YGb3tLH5Upf74F"
)

const fixtureYml = `
head: 1100
referenda:
  - {id: 5, status: approved, conclusionBlock: 1000}
  - {id: 6, status: ongoing}
  - {id: 7, status: cancelled, conclusionBlock: 900}
accounts:
  - address: ` + alice + `
    votes:
      - {referendum: 5, aye: true, conviction: Locked2x, balance: "1000"}
      - {referendum: 6, class: 33, type: splitAbstain, ayeBalance: "10", nayBalance: "20", abstain: "30"}
      - {referendum: 7, conviction: Locked6x, balance: "5000"}
      - {referendum: 99, conviction: Locked1x, balance: "1"}
    vesting:
      - {locked: "500", perBlock: "10", startingBlock: 0}
  - address: ` + bob + `
    delegations:
      - {class: 0, target: ` + alice + `, conviction: Locked1x, balance: "200"}
    priorLocks:
      - {class: 0, unlockBlock: 1500, balance: "300"}
`

var testChain = types.ChainConfig{
	ConfigName:        "polkadot",
	TokenSymbol:       "DOT",
	TokenDecimals:     10,
	SS58Prefix:        0,
	SecondsPerBlock:   6,
	VoteLockingPeriod: 100,
}

func testFixture(t *testing.T) *chain.FixtureSource {
	t.Helper()
	src, err := chain.ParseFixture([]byte(fixtureYml))
	require.NoError(t, err)
	return src
}

func byAddress(run *Run) map[string]locks.AccountLocks {
	out := make(map[string]locks.AccountLocks, len(run.Accounts))
	for _, a := range run.Accounts {
		out[a.Address] = a
	}
	return out
}

func TestGenerate(t *testing.T) {
	reporter := NewReporter(testFixture(t), testChain, 4, nil)

	run, err := reporter.Generate(context.Background(), []string{bob, alice, charlie, bob})
	require.NoError(t, err)
	assert.Equal(t, types.BlockNumber(1100), run.Head)
	require.Len(t, run.Accounts, 3)
	for i := 1; i < len(run.Accounts); i++ {
		assert.Less(t, run.Accounts[i-1].Address, run.Accounts[i].Address)
	}

	accounts := byAddress(run)

	a := accounts[alice]
	assert.Equal(t, types.StatusIncomplete, a.Status)
	// the larger expired lock of the cancelled referendum wins
	assert.Equal(t, int64(5000), a.Voting.Amount.Int64())
	assert.Equal(t, types.BlockNumber(900), a.Voting.Unlock.Block)
	assert.False(t, a.Voting.Active)
	assert.Equal(t, 5, a.Voting.Contributing)
	assert.Zero(t, a.Vesting.Amount.Sign())

	b := accounts[bob]
	assert.Equal(t, types.StatusOK, b.Status)
	assert.Equal(t, int64(300), b.Voting.Amount.Int64())
	assert.Equal(t, types.BlockNumber(1500), b.Voting.Unlock.Block)
	assert.True(t, b.Voting.Active)

	c := accounts[charlie]
	assert.Equal(t, types.StatusOK, c.Status)
	assert.Empty(t, c.Records)
}

func TestGenerateInvalidAddresses(t *testing.T) {
	reporter := NewReporter(testFixture(t), testChain, 2, nil)

	run, err := reporter.Generate(context.Background(), []string{"nope", aliceKusama})
	require.NoError(t, err)
	require.Len(t, run.Accounts, 2)
	for _, a := range run.Accounts {
		assert.Equal(t, types.StatusFailed, a.Status)
		require.Len(t, a.Failures, 1)
		assert.ErrorIs(t, a.Failures[0].Err, utils.ErrInvalidAddress)
	}
}

type failingSource struct {
	*chain.FixtureSource
	failFor types.AccountID
}

func (s *failingSource) Voting(ctx context.Context, account types.AccountID) (types.VotingState, error) {
	if account == s.failFor {
		return types.VotingState{}, errors.New("storage read failed")
	}
	return s.FixtureSource.Voting(ctx, account)
}

func TestGenerateFetchFailure(t *testing.T) {
	_, bobAccount, err := utils.DecodeSS58(bob)
	require.NoError(t, err)
	src := &failingSource{FixtureSource: testFixture(t), failFor: bobAccount}

	run, err := NewReporter(src, testChain, 1, nil).Generate(context.Background(), []string{alice, bob})
	require.NoError(t, err)

	accounts := byAddress(run)
	assert.Equal(t, types.StatusFailed, accounts[bob].Status)
	assert.Equal(t, bobAccount, accounts[bob].Account)
	assert.Equal(t, types.StatusIncomplete, accounts[alice].Status)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReporter(testFixture(t), testChain, 1, nil).Generate(ctx, []string{alice})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := &Metrics{}
	metrics.Register(registry)
	metrics.Register(registry)

	reporter := NewReporter(testFixture(t), testChain, 2, metrics)
	_, err := reporter.Generate(context.Background(), []string{alice, bob, "nope"})
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.runs))
	assert.Equal(t, float64(1100), testutil.ToFloat64(metrics.head))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.accounts.WithLabelValues(string(types.StatusOK))))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.accounts.WithLabelValues(string(types.StatusIncomplete))))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.accounts.WithLabelValues(string(types.StatusFailed))))
}

func TestLatestBlock(t *testing.T) {
	reporter := NewReporter(testFixture(t), testChain, 1, nil)
	assert.Equal(t, types.BlockNumber(1100), reporter.LatestBlock(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, types.BlockNumber(0), reporter.LatestBlock(ctx))
}
