package keeper_test

import (
	"context"
	"crypto/sha256"
	"sync"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/provability/provability/testutil/keeper"
	"github.com/provability/provability/x/bounty/kernel"
	"github.com/provability/provability/x/bounty/types"
)

const (
	bountyAmount = uint64(1000)
	bountyRows   = uint32(10)
)

var stubVK = []byte("stub verifying key")

// stubVerifier answers every proof with a fixed verdict and records calls.
type stubVerifier struct {
	mu     sync.Mutex
	ok     bool
	err    error
	calls  int
	inputs []types.PublicInputs
}

func (v *stubVerifier) Verify(_ context.Context, vk, proof []byte, in types.PublicInputs) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	v.inputs = append(v.inputs, in)
	return v.ok, v.err
}

func (v *stubVerifier) Calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}

func addr(name string) sdk.AccAddress {
	sum := sha256.Sum256([]byte(name))
	return sdk.AccAddress(sum[:20])
}

func hashOf(s string) types.Hash {
	return sha256.Sum256([]byte(s))
}

func seedOf(s string) types.Seed {
	var seed types.Seed
	copy(seed[:], s)
	return seed
}

func defaultParams(deadline time.Time) types.CreateBountyParams {
	return types.CreateBountyParams{
		Seed:               seedOf("seed-1"),
		Amount:             bountyAmount,
		DeadlineTs:         deadline.Unix(),
		N:                  bountyRows,
		Scale:              1000,
		ThresholdT2:        sdkmath.NewUint(500),
		EvalSpecHash:       hashOf("eval-spec"),
		TestsetCommitment:  hashOf("testset"),
		AllowedMeasurement: types.Measurement(stubVK),
	}
}

// ledger is a funded fixture with one open bounty and one submission.
type ledger struct {
	*keepertest.BountyFixture
	verifier *stubVerifier
	creator  sdk.AccAddress
	solver   sdk.AccAddress
	bounty   types.Bounty
	sub      types.Submission
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	v := &stubVerifier{ok: true}
	f := keepertest.BountyKeeper(t, v)

	l := &ledger{
		BountyFixture: f,
		verifier:      v,
		creator:       addr("creator"),
		solver:        addr("solver"),
	}
	f.Fund(t, l.creator, 5*bountyAmount)

	_, err := f.Keeper.RegisterVerifyingKey(f.Ctx, f.Authority, hashOf("eval-spec"), stubVK)
	require.NoError(t, err)

	l.bounty, err = f.Keeper.CreateBounty(f.Ctx, l.creator, defaultParams(keepertest.GenesisTime.Add(time.Hour)))
	require.NoError(t, err)

	l.sub, err = f.Keeper.Submit(f.Ctx, l.solver, l.bounty.Id, hashOf("predictions"), "ipfs://predictions")
	require.NoError(t, err)
	return l
}

func (l *ledger) payload(t *testing.T, pass bool) []byte {
	t.Helper()
	bz, err := types.NewAttestedResult(l.bounty, l.sub, pass).Marshal()
	require.NoError(t, err)
	return bz
}

func journalFor(t *testing.T, n int) *kernel.Journal {
	t.Helper()
	rows := make([]kernel.Hash, n)
	for i := range rows {
		rows[i] = sha256.Sum256([]byte{byte(i), byte(i >> 8)})
	}
	j, err := kernel.Split(rows, hashOf("split-seed"), kernel.MerkleRoot(rows))
	require.NoError(t, err)
	return j
}

func envelope(t *testing.T, proof []byte, j *kernel.Journal) []byte {
	t.Helper()
	bz, err := types.AttestationEnvelope{Proof: proof, Journal: j.Bytes()}.Marshal()
	require.NoError(t, err)
	return bz
}

func (l *ledger) attestation(t *testing.T) []byte {
	return envelope(t, []byte("proof"), journalFor(t, int(l.bounty.N)))
}

func (l *ledger) finalize(ctx sdk.Context, signer sdk.AccAddress, payload, attestation []byte) error {
	return l.Keeper.FinalizeWithAttestation(ctx, signer, l.bounty.Id, l.sub.Id, payload, attestation)
}
