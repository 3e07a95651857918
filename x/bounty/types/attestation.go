package types

import (
	"context"
	"crypto/sha256"
	"encoding/json"

	sdkmath "cosmossdk.io/math"

	"github.com/provability/provability/x/bounty/kernel"
)

// ProofVerifier checks a proof against its public inputs under a verifying
// key. The keeper cannot be built without one: a payload alone never
// authorizes a payout.
type ProofVerifier interface {
	// Verify returns (true, nil) only for a valid proof. A malformed proof or
	// key is reported as an error; a well-formed proof that does not verify is
	// (false, nil).
	Verify(ctx context.Context, vk []byte, proof []byte, inputs PublicInputs) (bool, error)
}

// PublicInputs are the values a finalize proof is bound to. All of them are
// recomputed by the ledger from the payload, the live bounty and the kernel
// journal; none is taken from the prover.
type PublicInputs struct {
	PayloadDigest     Hash
	EvalSpecHash      Hash
	TestsetCommitment Hash
	ThresholdT2       sdkmath.Uint
	Pass              bool
	TrainRoot         Hash
	TestRoot          Hash
}

// NewPublicInputs binds a decoded result and a split journal together.
func NewPublicInputs(payload []byte, r AttestedResult, j *kernel.Journal) PublicInputs {
	return PublicInputs{
		PayloadDigest:     sha256.Sum256(payload),
		EvalSpecHash:      r.EvalSpecHash,
		TestsetCommitment: r.TestsetCommitment,
		ThresholdT2:       r.ThresholdT2,
		Pass:              r.Pass,
		TrainRoot:         j.TrainRoot,
		TestRoot:          j.TestRoot,
	}
}

// AttestationEnvelope is the attestation_proof argument of finalize: the
// Groth16 proof plus the kernel journal whose commitments it is bound to.
type AttestationEnvelope struct {
	Proof   []byte `json:"proof"`
	Journal []byte `json:"journal"`
}

// Marshal encodes the envelope as JSON.
func (e AttestationEnvelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeAttestationEnvelope parses an envelope and its journal. Any failure is
// ErrBadAttestation.
func DecodeAttestationEnvelope(bz []byte) (AttestationEnvelope, *kernel.Journal, error) {
	var env AttestationEnvelope
	if err := json.Unmarshal(bz, &env); err != nil {
		return env, nil, ErrBadAttestation.Wrapf("decode envelope: %v", err)
	}
	if len(env.Proof) == 0 {
		return env, nil, ErrBadAttestation.Wrap("empty proof")
	}
	j, err := kernel.DecodeJournal(env.Journal)
	if err != nil {
		return env, nil, ErrBadAttestation.Wrapf("decode journal: %v", err)
	}
	return env, j, nil
}

// Measurement identifies a verifying key: SHA-256 over its serialized bytes.
func Measurement(vk []byte) Hash {
	return sha256.Sum256(vk)
}

// VerifyingKeyEntry registers the verifying key of one evaluation program.
type VerifyingKeyEntry struct {
	EvalSpecHash Hash   `json:"eval_spec_hash"`
	Key          []byte `json:"key"`
}

// Measurement returns the measurement of the registered key.
func (e VerifyingKeyEntry) Measurement() Hash {
	return Measurement(e.Key)
}
