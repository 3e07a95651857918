package circuits

import (
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/provability/provability/x/bounty/types"
)

// HalfBits is the width of each half of a split 32-byte commitment, and the
// width bound of scores and thresholds.
const HalfBits = 128

// AttestationCircuit binds a pass bit to a private score: the prover knows a
// 128-bit ScoreT2 with Pass == (ScoreT2 <= ThresholdT2), and the proof is tied
// to the payload digest, evaluation program, test set commitment and split
// roots given as public inputs.
//
// The circuit does not evaluate predictions. ScoreT2 is whatever the prover
// asserts, so the score is only as trustworthy as the party that proves it.
// Bounties that need an independent evaluation name an allowed attester.
//
// Every 32-byte value enters as two 128-bit public halves (high, low), so the
// statement is bound to the exact bytes the ledger recomputes.
type AttestationCircuit struct {
	// Public inputs
	PayloadDigest     [2]frontend.Variable `gnark:",public"`
	EvalSpecHash      [2]frontend.Variable `gnark:",public"`
	TestsetCommitment [2]frontend.Variable `gnark:",public"`
	ThresholdT2       frontend.Variable    `gnark:",public"`
	Pass              frontend.Variable    `gnark:",public"`
	TrainRoot         [2]frontend.Variable `gnark:",public"`
	TestRoot          [2]frontend.Variable `gnark:",public"`

	// Private inputs
	ScoreT2 frontend.Variable `gnark:",private"` // Squared-error score at the bounty's scale
}

// Define implements the gnark Circuit interface for the attestation statement.
func (circuit *AttestationCircuit) Define(api frontend.API) error {
	// Commitments are canonical 128-bit halves.
	for _, pair := range [][2]frontend.Variable{
		circuit.PayloadDigest,
		circuit.EvalSpecHash,
		circuit.TestsetCommitment,
		circuit.TrainRoot,
		circuit.TestRoot,
	} {
		api.ToBinary(pair[0], HalfBits)
		api.ToBinary(pair[1], HalfBits)
	}

	// Score and threshold fit the payload's u128 slot.
	api.ToBinary(circuit.ScoreT2, HalfBits)
	api.ToBinary(circuit.ThresholdT2, HalfBits)

	api.AssertIsBoolean(circuit.Pass)

	// Cmp yields 1 only when score > threshold.
	above := api.IsZero(api.Sub(api.Cmp(circuit.ScoreT2, circuit.ThresholdT2), 1))
	api.AssertIsEqual(circuit.Pass, api.Sub(1, above))

	return nil
}

// GetPublicInputCount returns the number of public field elements.
func (circuit *AttestationCircuit) GetPublicInputCount() int {
	return 5*2 + 2
}

// Assignment returns a full witness assignment including the private score.
func Assignment(in types.PublicInputs, scoreT2 *big.Int) *AttestationCircuit {
	c := PublicAssignment(in)
	c.ScoreT2 = new(big.Int).Set(scoreT2)
	return c
}

// PublicAssignment returns an assignment holding only the public inputs.
func PublicAssignment(in types.PublicInputs) *AttestationCircuit {
	pass := 0
	if in.Pass {
		pass = 1
	}
	threshold := new(big.Int)
	if !in.ThresholdT2.IsNil() {
		threshold = in.ThresholdT2.BigInt()
	}
	return &AttestationCircuit{
		PayloadDigest:     splitHash(in.PayloadDigest),
		EvalSpecHash:      splitHash(in.EvalSpecHash),
		TestsetCommitment: splitHash(in.TestsetCommitment),
		ThresholdT2:       threshold,
		Pass:              pass,
		TrainRoot:         splitHash(in.TrainRoot),
		TestRoot:          splitHash(in.TestRoot),
		ScoreT2:           0,
	}
}

// splitHash returns the big-endian high and low 128-bit halves of h.
func splitHash(h types.Hash) [2]frontend.Variable {
	return [2]frontend.Variable{
		new(big.Int).SetBytes(h[:16]),
		new(big.Int).SetBytes(h[16:]),
	}
}
