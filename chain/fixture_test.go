package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceAddress = "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"
	bobAddress   = "14E5nqKAp3oAJcmzgZhUD2RcptBeUBScxKHgJKU4HPNcKVf3"
)

func accountOf(t *testing.T, address string) types.AccountID {
	t.Helper()
	_, account, err := utils.DecodeSS58(address)
	require.NoError(t, err)
	return account
}

func loadTestFixture(t *testing.T) *FixtureSource {
	t.Helper()
	src, err := LoadFixture("testdata/fixture.yml")
	require.NoError(t, err)
	return src
}

func TestLoadFixture(t *testing.T) {
	src := loadTestFixture(t)
	ctx := context.Background()

	head, err := src.CurrentBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.BlockNumber(1100), head)

	voting, err := src.Voting(ctx, accountOf(t, aliceAddress))
	require.NoError(t, err)
	require.Len(t, voting.Votes, 4)
	assert.Equal(t, types.StandardVote{Aye: true, Conviction: types.ConvictionLocked2x, Balance: big.NewInt(1000)}, voting.Votes[0].Ballot)
	assert.Equal(t, types.ClassID(33), voting.Votes[1].Class)
	assert.Equal(t, types.BallotSplitAbstain, voting.Votes[1].Ballot.Kind())

	ref, err := src.Referendum(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, types.ReferendumCancelled, ref.Status)
	assert.Equal(t, types.BlockNumber(900), ref.ConclusionBlock)

	missing, err := src.Referendum(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	bob, err := src.Voting(ctx, accountOf(t, bobAddress))
	require.NoError(t, err)
	require.Len(t, bob.Delegations, 1)
	assert.Equal(t, accountOf(t, aliceAddress), bob.Delegations[0].Target)
	require.Len(t, bob.PriorLocks, 1)
	assert.Equal(t, types.BlockNumber(1500), bob.PriorLocks[0].UnlockBlock)

	locks, err := src.BalanceLocks(ctx, accountOf(t, aliceAddress))
	require.NoError(t, err)
	require.Len(t, locks, 2)
	assert.Equal(t, "vesting ", locks[1].ID)
}

func TestParseFixtureErrors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"unknown status", "referenda:\n  - id: 1\n    status: pending\n"},
		{"bad address", "accounts:\n  - address: nope\n"},
		{"bad balance", "accounts:\n  - address: " + aliceAddress + "\n    vesting:\n      - locked: \"-1\"\n"},
		{"bad conviction", "accounts:\n  - address: " + aliceAddress + "\n    votes:\n      - referendum: 1\n        conviction: Locked9x\n"},
		{"unknown field", "height: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.yml))
			assert.Error(t, err)
		})
	}
}

func TestFixtureUnknownAccountIsEmpty(t *testing.T) {
	src := loadTestFixture(t)
	var nobody types.AccountID

	voting, err := src.Voting(context.Background(), nobody)
	require.NoError(t, err)
	assert.Empty(t, voting.Votes)
}

func TestFixtureCanceledContext(t *testing.T) {
	src := loadTestFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.CurrentBlock(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchAccount(t *testing.T) {
	src := loadTestFixture(t)

	snapshot, err := FetchAccount(context.Background(), src, accountOf(t, aliceAddress), aliceAddress)
	require.NoError(t, err)
	assert.Equal(t, aliceAddress, snapshot.Address)
	assert.Len(t, snapshot.Voting.Votes, 4)
	assert.Len(t, snapshot.Referenda, 3)
	assert.NotContains(t, snapshot.Referenda, types.ReferendumIndex(99))
	assert.Len(t, snapshot.Vesting, 1)
	assert.Len(t, snapshot.Locks, 2)
}

func TestOpenFixture(t *testing.T) {
	cfg := &types.Config{}
	cfg.Chain.Name = "polkadot"
	cfg.Report.FixturePath = "testdata/fixture.yml"
	cfg.Cache.SizeBytes = 1 << 20
	cfg.Cache.ReferendumTTLSeconds = 60

	src, closer, err := Open(cfg)
	require.NoError(t, err)
	defer closer()
	_, ok := src.(*CachedSource)
	assert.True(t, ok)

	head, err := src.CurrentBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.BlockNumber(1100), head)

	cfg.Cache.SizeBytes = 0
	src, _, err = Open(cfg)
	require.NoError(t, err)
	_, ok = src.(*FixtureSource)
	assert.True(t, ok)

	cfg.Report.FixturePath = "testdata/missing.yml"
	_, _, err = Open(cfg)
	assert.Error(t, err)
}
