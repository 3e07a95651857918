package keeper_test

import (
	"crypto/sha256"
	"errors"
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

func TestCreateBountyLocksFunds(t *testing.T) {
	f := keepertest.BountyKeeper(t, &stubVerifier{ok: true})
	creator := addr("creator")
	f.Fund(t, creator, 5000)

	params := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	b, err := f.Keeper.CreateBounty(f.Ctx, creator, params)
	require.NoError(t, err)

	require.Equal(t, types.BountyID(creator, params.Seed), b.Id)
	require.Equal(t, uint8(255), b.VaultBump)
	require.Equal(t, types.VaultAddress(b.Id, 255), b.Vault)
	require.False(t, b.IsPaid)
	require.Equal(t, keepertest.GenesisTime.Unix(), b.CreatedTs)
	require.Equal(t, types.DefaultDenom, b.Denom)

	require.Equal(t, uint64(4000), f.Balance(creator))
	require.Equal(t, bountyAmount, f.Balance(b.Vault))

	stored, err := f.Keeper.GetBounty(f.Ctx, b.Id)
	require.NoError(t, err)
	require.Equal(t, b.Id, stored.Id)
	require.True(t, b.ThresholdT2.Equal(stored.ThresholdT2))
	require.Equal(t, []sdk.AccAddress{b.Id}, f.Keeper.BountiesByCreator(f.Ctx, creator))

	balance, err := f.Keeper.VaultBalance(f.Ctx, b.Id)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewIntFromUint64(bountyAmount), balance.Amount)

	var found bool
	for _, ev := range f.Ctx.EventManager().Events() {
		if ev.Type == types.EventTypeBountyCreated {
			found = true
		}
	}
	require.True(t, found)
}

func TestCreateBountyRejectsBadDeadline(t *testing.T) {
	f := keepertest.BountyKeeper(t, &stubVerifier{ok: true})
	creator := addr("creator")
	f.Fund(t, creator, 5000)

	for _, deadline := range []time.Time{keepertest.GenesisTime, keepertest.GenesisTime.Add(-time.Second)} {
		params := defaultParams(deadline)
		_, err := f.Keeper.CreateBounty(f.Ctx, creator, params)
		require.ErrorIs(t, err, types.ErrBadDeadline)
		require.False(t, f.Keeper.HasBounty(f.Ctx, types.BountyID(creator, params.Seed)))
	}
	require.Equal(t, uint64(5000), f.Balance(creator))
}

func TestCreateBountyRejectsZeroAmount(t *testing.T) {
	f := keepertest.BountyKeeper(t, &stubVerifier{ok: true})
	creator := addr("creator")
	f.Fund(t, creator, 5000)

	params := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	params.Amount = 0
	_, err := f.Keeper.CreateBounty(f.Ctx, creator, params)
	require.ErrorIs(t, err, types.ErrBadAmount)
	require.False(t, f.Keeper.HasBounty(f.Ctx, types.BountyID(creator, params.Seed)))
}

func TestCreateBountyIsAllOrNothing(t *testing.T) {
	f := keepertest.BountyKeeper(t, &stubVerifier{ok: true})
	creator := addr("creator")
	f.Fund(t, creator, 10)

	params := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	_, err := f.Keeper.CreateBounty(f.Ctx, creator, params)
	require.Error(t, err)

	id := types.BountyID(creator, params.Seed)
	require.False(t, f.Keeper.HasBounty(f.Ctx, id))
	require.Empty(t, f.Keeper.BountiesByCreator(f.Ctx, creator))
	require.Equal(t, uint64(10), f.Balance(creator))
	require.Zero(t, f.Balance(types.VaultAddress(id, 255)))
}

func TestCreateBountyRejectsDuplicateSeed(t *testing.T) {
	l := newLedger(t)

	_, err := l.Keeper.CreateBounty(l.Ctx, l.creator, defaultParams(keepertest.GenesisTime.Add(time.Hour)))
	require.ErrorIs(t, err, types.ErrBountyExists)

	other := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	other.Seed = seedOf("seed-2")
	b, err := l.Keeper.CreateBounty(l.Ctx, l.creator, other)
	require.NoError(t, err)
	require.NotEqual(t, l.bounty.Id, b.Id)
	require.Len(t, l.Keeper.BountiesByCreator(l.Ctx, l.creator), 2)
}

func TestCreateBountyRejectsOversizedThreshold(t *testing.T) {
	f := keepertest.BountyKeeper(t, &stubVerifier{ok: true})
	creator := addr("creator")
	f.Fund(t, creator, 5000)

	params := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	params.ThresholdT2 = sdkmath.NewUintFromString("340282366920938463463374607431768211456") // 2^128
	_, err := f.Keeper.CreateBounty(f.Ctx, creator, params)
	require.ErrorIs(t, err, types.ErrInvalidParams)
}

func TestVaultBumpSkipsOccupiedAddress(t *testing.T) {
	f := keepertest.BountyKeeper(t, &stubVerifier{ok: true})
	creator := addr("creator")
	f.Fund(t, creator, 5000)

	params := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	id := types.BountyID(creator, params.Seed)
	squatter := types.VaultAddress(id, 255)
	f.AccountKeeper.SetAccount(f.Ctx, f.AccountKeeper.NewAccountWithAddress(f.Ctx, squatter))

	b, err := f.Keeper.CreateBounty(f.Ctx, creator, params)
	require.NoError(t, err)
	require.Equal(t, uint8(254), b.VaultBump)
	require.Equal(t, types.VaultAddress(id, 254), b.Vault)
	require.Zero(t, f.Balance(squatter))
}

func TestSubmit(t *testing.T) {
	l := newLedger(t)

	require.Equal(t, types.SubmissionID(l.bounty.Id, l.solver), l.sub.Id)
	require.Equal(t, hashOf("predictions"), l.sub.PredsHash)

	byID, err := l.Keeper.GetSubmissionByID(l.Ctx, l.sub.Id)
	require.NoError(t, err)
	require.Equal(t, l.sub.Solver, byID.Solver)

	bySolver, err := l.Keeper.GetSubmission(l.Ctx, l.bounty.Id, l.solver)
	require.NoError(t, err)
	require.Equal(t, l.sub.Id, bySolver.Id)

	// One submission per (bounty, solver).
	_, err = l.Keeper.Submit(l.Ctx, l.solver, l.bounty.Id, hashOf("other"), "ipfs://other")
	require.ErrorIs(t, err, types.ErrSubmissionExists)

	second, err := l.Keeper.Submit(l.Ctx, addr("solver-2"), l.bounty.Id, hashOf("other"), "ipfs://other")
	require.NoError(t, err)

	subs, err := l.Keeper.SubmissionsByBounty(l.Ctx, l.bounty.Id)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.NotEqual(t, l.sub.Id, second.Id)
}

func TestSubmitDeadlineBoundary(t *testing.T) {
	l := newLedger(t)
	deadline := time.Unix(l.bounty.DeadlineTs, 0)

	// now == deadline is still open.
	_, err := l.Keeper.Submit(l.At(deadline), addr("late"), l.bounty.Id, hashOf("p"), "u")
	require.NoError(t, err)

	_, err = l.Keeper.Submit(l.At(deadline.Add(time.Second)), addr("later"), l.bounty.Id, hashOf("p"), "u")
	require.ErrorIs(t, err, types.ErrExpired)
	require.False(t, l.Keeper.HasSubmission(l.Ctx, l.bounty.Id, addr("later")))

	expired, err := l.Keeper.IsExpired(l.At(deadline.Add(time.Second)), l.bounty.Id)
	require.NoError(t, err)
	require.True(t, expired)
}

func TestSubmitValidation(t *testing.T) {
	l := newLedger(t)

	_, err := l.Keeper.Submit(l.Ctx, addr("x"), addr("missing"), hashOf("p"), "u")
	require.ErrorIs(t, err, types.ErrBountyNotFound)

	// An empty artifact URI is accepted.
	sub, err := l.Keeper.Submit(l.Ctx, addr("x"), l.bounty.Id, hashOf("p"), "")
	require.NoError(t, err)
	require.Empty(t, sub.Uri)

	long := make([]byte, types.DefaultMaxURILength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = l.Keeper.Submit(l.Ctx, addr("x"), l.bounty.Id, hashOf("p"), string(long))
	require.ErrorIs(t, err, types.ErrInvalidURI)
}

func TestFinalizePaysSolver(t *testing.T) {
	l := newLedger(t)
	payload := l.payload(t, true)

	require.NoError(t, l.finalize(l.Ctx, l.solver, payload, l.attestation(t)))

	require.Equal(t, bountyAmount, l.Balance(l.solver))
	require.Zero(t, l.Balance(l.bounty.Vault))

	b, err := l.Keeper.GetBounty(l.Ctx, l.bounty.Id)
	require.NoError(t, err)
	require.True(t, b.IsPaid)

	require.Equal(t, 1, l.verifier.Calls())
	in := l.verifier.inputs[0]
	require.Equal(t, types.Hash(sha256.Sum256(payload)), in.PayloadDigest)
	require.Equal(t, l.bounty.EvalSpecHash, in.EvalSpecHash)
	require.Equal(t, l.bounty.TestsetCommitment, in.TestsetCommitment)
	require.True(t, in.Pass)
	require.True(t, l.bounty.ThresholdT2.Equal(in.ThresholdT2))
	j := journalFor(t, int(l.bounty.N))
	require.Equal(t, j.TrainRoot, in.TrainRoot)
	require.Equal(t, j.TestRoot, in.TestRoot)
}

func TestFinalizeAtMostOnce(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.finalize(l.Ctx, l.solver, l.payload(t, true), l.attestation(t)))
	err := l.finalize(l.Ctx, l.solver, l.payload(t, true), l.attestation(t))
	require.ErrorIs(t, err, types.ErrAlreadyPaid)

	require.Equal(t, bountyAmount, l.Balance(l.solver))
	require.Equal(t, 1, l.verifier.Calls())
}

func TestFinalizeAfterDeadline(t *testing.T) {
	l := newLedger(t)
	late := l.At(time.Unix(l.bounty.DeadlineTs+1, 0))

	err := l.finalize(late, l.solver, l.payload(t, true), l.attestation(t))
	require.ErrorIs(t, err, types.ErrExpired)
	require.Zero(t, l.verifier.Calls())
	require.Equal(t, bountyAmount, l.Balance(l.bounty.Vault))
}

func TestFinalizeRejectsBadPayload(t *testing.T) {
	l := newLedger(t)

	err := l.finalize(l.Ctx, l.solver, []byte{1, 2, 3}, l.attestation(t))
	require.ErrorIs(t, err, types.ErrBadPayload)

	mutations := map[string]func(r *types.AttestedResult){
		"bounty":     func(r *types.AttestedResult) { r.Bounty = addr("other bounty") },
		"submission": func(r *types.AttestedResult) { r.Submission = addr("other submission") },
		"solver":     func(r *types.AttestedResult) { r.Solver = addr("other solver") },
		"preds":      func(r *types.AttestedResult) { r.PredsHash = hashOf("other preds") },
		"testset":    func(r *types.AttestedResult) { r.TestsetCommitment = hashOf("other testset") },
		"eval spec":  func(r *types.AttestedResult) { r.EvalSpecHash = hashOf("other spec") },
		"n":          func(r *types.AttestedResult) { r.N++ },
		"scale":      func(r *types.AttestedResult) { r.Scale++ },
		"threshold":  func(r *types.AttestedResult) { r.ThresholdT2 = sdkmath.NewUint(501) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			r := types.NewAttestedResult(l.bounty, l.sub, true)
			mutate(&r)
			bz, err := r.Marshal()
			require.NoError(t, err)
			require.ErrorIs(t, l.finalize(l.Ctx, l.solver, bz, l.attestation(t)), types.ErrBadPayload)
		})
	}

	require.Zero(t, l.verifier.Calls())
	require.Equal(t, bountyAmount, l.Balance(l.bounty.Vault))
}

func TestFinalizeRejectsSubmissionOfAnotherBounty(t *testing.T) {
	l := newLedger(t)

	other := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	other.Seed = seedOf("seed-2")
	b2, err := l.Keeper.CreateBounty(l.Ctx, l.creator, other)
	require.NoError(t, err)

	// A payload naming bounty 2 with the submission made to bounty 1.
	r := types.NewAttestedResult(b2, l.sub, true)
	bz, err := r.Marshal()
	require.NoError(t, err)

	err = l.Keeper.FinalizeWithAttestation(l.Ctx, l.solver, b2.Id, l.sub.Id, bz, l.attestation(t))
	require.ErrorIs(t, err, types.ErrBadPayload)
	require.Equal(t, bountyAmount, l.Balance(b2.Vault))
}

func TestFinalizeRejectsFailingResult(t *testing.T) {
	l := newLedger(t)

	err := l.finalize(l.Ctx, l.solver, l.payload(t, false), l.attestation(t))
	require.ErrorIs(t, err, types.ErrDidNotPass)
	require.Zero(t, l.verifier.Calls())
	require.Equal(t, bountyAmount, l.Balance(l.bounty.Vault))
}

func TestFinalizeRejectsInvalidProof(t *testing.T) {
	l := newLedger(t)
	l.verifier.ok = false

	err := l.finalize(l.Ctx, l.solver, l.payload(t, true), l.attestation(t))
	require.ErrorIs(t, err, types.ErrInvalidProof)

	b, err := l.Keeper.GetBounty(l.Ctx, l.bounty.Id)
	require.NoError(t, err)
	require.False(t, b.IsPaid)
	require.Equal(t, bountyAmount, l.Balance(l.bounty.Vault))

	var rejected bool
	for _, ev := range l.Ctx.EventManager().Events() {
		if ev.Type == types.EventTypeAttestationRejected {
			rejected = true
		}
	}
	require.True(t, rejected)
}

func TestFinalizeRejectsVerifierError(t *testing.T) {
	l := newLedger(t)
	l.verifier.err = errors.New("malformed proof")

	err := l.finalize(l.Ctx, l.solver, l.payload(t, true), l.attestation(t))
	require.ErrorIs(t, err, types.ErrBadAttestation)
	require.Equal(t, bountyAmount, l.Balance(l.bounty.Vault))
}

func TestFinalizeRejectsBadAttestation(t *testing.T) {
	cases := map[string]func(t *testing.T, l *ledger) (signer sdk.AccAddress, attestation []byte){
		"undecodable envelope": func(t *testing.T, l *ledger) (sdk.AccAddress, []byte) {
			return l.solver, []byte("{")
		},
		"empty proof": func(t *testing.T, l *ledger) (sdk.AccAddress, []byte) {
			return l.solver, envelope(t, nil, journalFor(t, int(l.bounty.N)))
		},
		"journal of wrong split size": func(t *testing.T, l *ledger) (sdk.AccAddress, []byte) {
			return l.solver, envelope(t, []byte("proof"), journalFor(t, int(l.bounty.N)+5))
		},
		"truncated journal": func(t *testing.T, l *ledger) (sdk.AccAddress, []byte) {
			j := journalFor(t, int(l.bounty.N)).Bytes()
			bz, err := types.AttestationEnvelope{Proof: []byte("p"), Journal: j[:len(j)-1]}.Marshal()
			require.NoError(t, err)
			return l.solver, bz
		},
		"stranger signer": func(t *testing.T, l *ledger) (sdk.AccAddress, []byte) {
			return addr("stranger"), l.attestation(t)
		},
		"measurement mismatch": func(t *testing.T, l *ledger) (sdk.AccAddress, []byte) {
			_, err := l.Keeper.RegisterVerifyingKey(l.Ctx, l.Authority, l.bounty.EvalSpecHash, []byte("replaced key"))
			require.NoError(t, err)
			return l.solver, l.attestation(t)
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			l := newLedger(t)
			signer, att := tc(t, l)
			err := l.finalize(l.Ctx, signer, l.payload(t, true), att)
			require.ErrorIs(t, err, types.ErrBadAttestation)
			require.Zero(t, l.verifier.Calls())
			require.Equal(t, bountyAmount, l.Balance(l.bounty.Vault))
		})
	}
}

func TestFinalizeWithoutRegisteredKey(t *testing.T) {
	v := &stubVerifier{ok: true}
	f := keepertest.BountyKeeper(t, v)
	creator, solver := addr("creator"), addr("solver")
	f.Fund(t, creator, 5000)

	b, err := f.Keeper.CreateBounty(f.Ctx, creator, defaultParams(keepertest.GenesisTime.Add(time.Hour)))
	require.NoError(t, err)
	sub, err := f.Keeper.Submit(f.Ctx, solver, b.Id, hashOf("p"), "u")
	require.NoError(t, err)

	payload, err := types.NewAttestedResult(b, sub, true).Marshal()
	require.NoError(t, err)
	err = f.Keeper.FinalizeWithAttestation(f.Ctx, solver, b.Id, sub.Id, payload, envelope(t, []byte("p"), journalFor(t, int(b.N))))
	require.ErrorIs(t, err, types.ErrBadAttestation)
	require.Zero(t, v.Calls())
}

func TestFinalizeByAllowedAttester(t *testing.T) {
	v := &stubVerifier{ok: true}
	f := keepertest.BountyKeeper(t, v)
	creator, solver, attester := addr("creator"), addr("solver"), addr("attester")
	f.Fund(t, creator, 5000)
	_, err := f.Keeper.RegisterVerifyingKey(f.Ctx, f.Authority, hashOf("eval-spec"), stubVK)
	require.NoError(t, err)

	params := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	params.AllowedAttester = attester
	b, err := f.Keeper.CreateBounty(f.Ctx, creator, params)
	require.NoError(t, err)
	sub, err := f.Keeper.Submit(f.Ctx, solver, b.Id, hashOf("p"), "u")
	require.NoError(t, err)

	payload, err := types.NewAttestedResult(b, sub, true).Marshal()
	require.NoError(t, err)
	require.NoError(t, f.Keeper.FinalizeWithAttestation(f.Ctx, attester, b.Id, sub.Id, payload, envelope(t, []byte("p"), journalFor(t, int(b.N)))))

	// Value goes to the solver, never to the attester.
	require.Equal(t, bountyAmount, f.Balance(solver))
	require.Zero(t, f.Balance(attester))
}

func TestFinalizeRejectsSolverWhenAttesterConfigured(t *testing.T) {
	v := &stubVerifier{ok: true}
	f := keepertest.BountyKeeper(t, v)
	creator, solver, attester := addr("creator"), addr("solver"), addr("trusted-attester")
	f.Fund(t, creator, 5000)
	_, err := f.Keeper.RegisterVerifyingKey(f.Ctx, f.Authority, hashOf("eval-spec"), stubVK)
	require.NoError(t, err)

	params := defaultParams(keepertest.GenesisTime.Add(time.Hour))
	params.AllowedAttester = attester
	b, err := f.Keeper.CreateBounty(f.Ctx, creator, params)
	require.NoError(t, err)
	sub, err := f.Keeper.Submit(f.Ctx, solver, b.Id, hashOf("garbage predictions"), "u")
	require.NoError(t, err)

	payload, err := types.NewAttestedResult(b, sub, true).Marshal()
	require.NoError(t, err)
	err = f.Keeper.FinalizeWithAttestation(f.Ctx, solver, b.Id, sub.Id, payload, envelope(t, []byte("p"), journalFor(t, int(b.N))))
	require.ErrorIs(t, err, types.ErrBadAttestation)

	require.Zero(t, v.Calls())
	require.Zero(t, f.Balance(solver))
	require.Equal(t, bountyAmount, f.Balance(b.Vault))
	got, err := f.Keeper.GetBounty(f.Ctx, b.Id)
	require.NoError(t, err)
	require.False(t, got.IsPaid)
}

func TestFinalizePaidBountyReportsAlreadyPaid(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.finalize(l.Ctx, l.solver, l.payload(t, true), l.attestation(t)))

	err := l.Keeper.FinalizeWithAttestation(l.Ctx, l.solver, l.bounty.Id, addr("unknown submission"), l.payload(t, true), l.attestation(t))
	require.ErrorIs(t, err, types.ErrAlreadyPaid)

}

func TestFinalizeExpiredBountyReportsExpired(t *testing.T) {
	l := newLedger(t)
	late := l.At(time.Unix(l.bounty.DeadlineTs+1, 0))

	err := l.Keeper.FinalizeWithAttestation(late, l.solver, l.bounty.Id, addr("unknown submission"), l.payload(t, true), l.attestation(t))
	require.ErrorIs(t, err, types.ErrExpired)
}

func TestFinalizeRejectsTamperedVault(t *testing.T) {
	l := newLedger(t)

	tampered := l.bounty
	tampered.Vault = addr("attacker vault")
	require.NoError(t, l.Keeper.SetBounty(l.Ctx, tampered))

	err := l.finalize(l.Ctx, l.solver, l.payload(t, true), l.attestation(t))
	require.ErrorIs(t, err, types.ErrVaultAuthority)

	b, err := l.Keeper.GetBounty(l.Ctx, l.bounty.Id)
	require.NoError(t, err)
	require.False(t, b.IsPaid)
	require.Equal(t, bountyAmount, l.Balance(l.bounty.Vault))
	require.Zero(t, l.Balance(l.solver))
}

func TestFinalizeFirstPasserWins(t *testing.T) {
	l := newLedger(t)
	rival := addr("rival")
	rivalSub, err := l.Keeper.Submit(l.Ctx, rival, l.bounty.Id, hashOf("rival preds"), "ipfs://rival")
	require.NoError(t, err)

	require.NoError(t, l.finalize(l.Ctx, l.solver, l.payload(t, true), l.attestation(t)))

	rivalPayload, err := types.NewAttestedResult(l.bounty, rivalSub, true).Marshal()
	require.NoError(t, err)
	err = l.Keeper.FinalizeWithAttestation(l.Ctx, rival, l.bounty.Id, rivalSub.Id, rivalPayload, l.attestation(t))
	require.ErrorIs(t, err, types.ErrAlreadyPaid)
	require.Zero(t, l.Balance(rival))
}

func TestConcurrentFinalizePaysOnce(t *testing.T) {
	l := newLedger(t)
	payload := l.payload(t, true)
	att := l.attestation(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		paid      int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.finalize(l.Ctx, l.solver, payload, att)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, types.ErrAlreadyPaid):
				paid++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, paid)
	require.Equal(t, bountyAmount, l.Balance(l.solver))
	require.Zero(t, l.Balance(l.bounty.Vault))
}

func TestRegisterVerifyingKeyRequiresAuthority(t *testing.T) {
	f := keepertest.BountyKeeper(t, &stubVerifier{ok: true})

	_, err := f.Keeper.RegisterVerifyingKey(f.Ctx, addr("someone").String(), hashOf("spec"), stubVK)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = f.Keeper.GetVerifyingKey(f.Ctx, hashOf("spec"))
	require.ErrorIs(t, err, types.ErrVerifyingKeyNotFound)

	m, err := f.Keeper.RegisterVerifyingKey(f.Ctx, f.Authority, hashOf("spec"), stubVK)
	require.NoError(t, err)
	require.Equal(t, types.Measurement(stubVK), m)

	vk, err := f.Keeper.GetVerifyingKey(f.Ctx, hashOf("spec"))
	require.NoError(t, err)
	require.Equal(t, stubVK, vk)
}

func TestJournalTrainCountMatchesBounty(t *testing.T) {
	// Guards the count the ledger expects against the kernel's split rule.
	for _, n := range []int{0, 1, 4, 5, 10, 11, 1000} {
		require.Len(t, journalFor(t, n).TrainIndices, kernel.TrainSize(n))
	}
}
