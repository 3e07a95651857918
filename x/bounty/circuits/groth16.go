package circuits

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/provability/provability/x/bounty/types"
)

var (
	compileOnce sync.Once
	compiledCS  constraint.ConstraintSystem
	compileErr  error
)

// Compile returns the constraint system of AttestationCircuit over BN254.
// The system is compiled once per process.
func Compile() (constraint.ConstraintSystem, error) {
	compileOnce.Do(func() {
		compiledCS, compileErr = frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &AttestationCircuit{})
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile attestation circuit: %w", compileErr)
		}
	})
	return compiledCS, compileErr
}

// Keys is the output of a Groth16 setup for the attestation circuit.
type Keys struct {
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
}

// Setup runs the Groth16 setup for the attestation circuit.
func Setup() (*Keys, error) {
	ccs, err := Compile()
	if err != nil {
		return nil, err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("groth16 setup failed: %w", err)
	}
	return &Keys{ProvingKey: pk, VerifyingKey: vk}, nil
}

// VerifyingKeyBytes serializes the verifying key. Its SHA-256 is the
// measurement a bounty allows.
func (k *Keys) VerifyingKeyBytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := k.VerifyingKey.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize verifying key: %w", err)
	}
	return buf.Bytes(), nil
}

// ProvingKeyBytes serializes the proving key.
func (k *Keys) ProvingKeyBytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := k.ProvingKey.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize proving key: %w", err)
	}
	return buf.Bytes(), nil
}

// Prover produces attestation proofs.
type Prover struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
}

// NewProver returns a prover for the given proving key.
func NewProver(pk groth16.ProvingKey) (*Prover, error) {
	ccs, err := Compile()
	if err != nil {
		return nil, err
	}
	return &Prover{ccs: ccs, pk: pk}, nil
}

// LoadProver reads a serialized proving key.
func LoadProver(pkBytes []byte) (*Prover, error) {
	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return nil, fmt.Errorf("failed to deserialize proving key: %w", err)
	}
	return NewProver(pk)
}

// Prove proves that scoreT2 is consistent with the pass bit of inputs and
// returns the serialized proof.
func (p *Prover) Prove(inputs types.PublicInputs, scoreT2 *big.Int) ([]byte, error) {
	w, err := frontend.NewWitness(Assignment(inputs, scoreT2), ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("failed to create witness: %w", err)
	}
	proof, err := groth16.Prove(p.ccs, p.pk, w)
	if err != nil {
		return nil, fmt.Errorf("failed to generate proof: %w", err)
	}
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize proof: %w", err)
	}
	return buf.Bytes(), nil
}

// vkCacheSize bounds the number of parsed verifying keys kept in memory.
const vkCacheSize = 64

// Groth16Verifier verifies attestation proofs. Parsed verifying keys are
// cached by measurement.
type Groth16Verifier struct {
	keys *lru.Cache[types.Hash, groth16.VerifyingKey]
}

var _ types.ProofVerifier = (*Groth16Verifier)(nil)

// NewGroth16Verifier returns a verifier for AttestationCircuit proofs.
func NewGroth16Verifier() *Groth16Verifier {
	cache, err := lru.New[types.Hash, groth16.VerifyingKey](vkCacheSize)
	if err != nil {
		panic(fmt.Sprintf("verifying key cache: %v", err))
	}
	return &Groth16Verifier{keys: cache}
}

// Verify checks proof against inputs under vk. Undecodable keys or proofs are
// errors; a proof that does not verify is (false, nil).
func (v *Groth16Verifier) Verify(_ context.Context, vkBytes []byte, proofBytes []byte, inputs types.PublicInputs) (bool, error) {
	vk, err := v.verifyingKey(vkBytes)
	if err != nil {
		return false, err
	}

	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return false, fmt.Errorf("failed to deserialize proof: %w", err)
	}

	publicWitness, err := frontend.NewWitness(PublicAssignment(inputs), ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, fmt.Errorf("failed to create public witness: %w", err)
	}

	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return false, nil
	}
	return true, nil
}

func (v *Groth16Verifier) verifyingKey(vkBytes []byte) (groth16.VerifyingKey, error) {
	m := types.Measurement(vkBytes)
	if vk, ok := v.keys.Get(m); ok {
		return vk, nil
	}
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return nil, fmt.Errorf("failed to deserialize verifying key: %w", err)
	}
	v.keys.Add(m, vk)
	return vk, nil
}
