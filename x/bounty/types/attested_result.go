package types

import (
	"encoding/binary"
	"math/big"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// maxAddressLen mirrors the SDK's address length limit.
const maxAddressLen = 255

// AttestedResult is the evaluation claim decoded from a finalize payload. It is
// never stored; it is checked field by field against the live records.
type AttestedResult struct {
	Bounty            sdk.AccAddress
	Submission        sdk.AccAddress
	Solver            sdk.AccAddress
	PredsHash         Hash
	Pass              bool
	TestsetCommitment Hash
	EvalSpecHash      Hash
	N                 uint32
	Scale             uint32
	ThresholdT2       sdkmath.Uint
}

// NewAttestedResult builds the claim a passing evaluation of sub would produce.
func NewAttestedResult(b Bounty, sub Submission, pass bool) AttestedResult {
	return AttestedResult{
		Bounty:            b.Id,
		Submission:        sub.Id,
		Solver:            sub.Solver,
		PredsHash:         sub.PredsHash,
		Pass:              pass,
		TestsetCommitment: b.TestsetCommitment,
		EvalSpecHash:      b.EvalSpecHash,
		N:                 b.N,
		Scale:             b.Scale,
		ThresholdT2:       b.ThresholdT2,
	}
}

// Marshal encodes the result in its fixed little-endian layout:
// three length-prefixed identities, preds hash, pass byte, testset commitment,
// eval spec hash, n, scale and a 16-byte threshold.
func (r AttestedResult) Marshal() ([]byte, error) {
	if err := ValidateThreshold(r.ThresholdT2); err != nil {
		return nil, ErrBadPayload.Wrap(err.Error())
	}

	buf := make([]byte, 0, 3*(4+32)+32+1+32+32+4+4+16)
	for _, addr := range []sdk.AccAddress{r.Bounty, r.Submission, r.Solver} {
		if len(addr) == 0 || len(addr) > maxAddressLen {
			return nil, ErrBadPayload.Wrapf("address of %d bytes", len(addr))
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(addr)))
		buf = append(buf, addr...)
	}

	buf = append(buf, r.PredsHash[:]...)
	if r.Pass {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = append(buf, r.TestsetCommitment[:]...)
	buf = append(buf, r.EvalSpecHash[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, r.N)
	buf = binary.LittleEndian.AppendUint32(buf, r.Scale)
	buf = append(buf, uint128LE(r.ThresholdT2.BigInt())...)

	return buf, nil
}

// DecodeAttestedResult strictly parses a payload produced by Marshal. Any
// truncation, trailing data or non-boolean pass byte is ErrBadPayload.
func DecodeAttestedResult(bz []byte) (AttestedResult, error) {
	var (
		r   AttestedResult
		err error
	)
	d := decoder{buf: bz}

	if r.Bounty, err = d.address("bounty"); err != nil {
		return r, err
	}
	if r.Submission, err = d.address("submission"); err != nil {
		return r, err
	}
	if r.Solver, err = d.address("solver"); err != nil {
		return r, err
	}
	if r.PredsHash, err = d.hash("preds_hash"); err != nil {
		return r, err
	}

	pass, err := d.take(1, "pass")
	if err != nil {
		return r, err
	}
	switch pass[0] {
	case 0:
		r.Pass = false
	case 1:
		r.Pass = true
	default:
		return r, ErrBadPayload.Wrapf("pass byte %d is not a boolean", pass[0])
	}

	if r.TestsetCommitment, err = d.hash("testset_commitment"); err != nil {
		return r, err
	}
	if r.EvalSpecHash, err = d.hash("eval_spec_hash"); err != nil {
		return r, err
	}
	if r.N, err = d.u32("n"); err != nil {
		return r, err
	}
	if r.Scale, err = d.u32("scale"); err != nil {
		return r, err
	}

	t, err := d.take(16, "threshold_t2")
	if err != nil {
		return r, err
	}
	r.ThresholdT2 = sdkmath.NewUintFromBigInt(fromUint128LE(t))

	if len(d.buf) != 0 {
		return r, ErrBadPayload.Wrapf("%d trailing bytes", len(d.buf))
	}
	return r, nil
}

// MatchBounty checks every identifying field of the claim against the live
// records. The first mismatch is reported as ErrBadPayload.
func (r AttestedResult) MatchBounty(b Bounty, sub Submission) error {
	switch {
	case !r.Bounty.Equals(b.Id):
		return ErrBadPayload.Wrap("bounty mismatch")
	case !r.Submission.Equals(sub.Id):
		return ErrBadPayload.Wrap("submission mismatch")
	case !r.Solver.Equals(sub.Solver):
		return ErrBadPayload.Wrap("solver mismatch")
	case r.PredsHash != sub.PredsHash:
		return ErrBadPayload.Wrap("preds hash mismatch")
	case r.TestsetCommitment != b.TestsetCommitment:
		return ErrBadPayload.Wrap("testset commitment mismatch")
	case r.EvalSpecHash != b.EvalSpecHash:
		return ErrBadPayload.Wrap("eval spec hash mismatch")
	case r.N != b.N:
		return ErrBadPayload.Wrap("n mismatch")
	case r.Scale != b.Scale:
		return ErrBadPayload.Wrap("scale mismatch")
	case !r.ThresholdT2.Equal(b.ThresholdT2):
		return ErrBadPayload.Wrap("threshold mismatch")
	}
	return nil
}

type decoder struct {
	buf []byte
}

func (d *decoder) take(n int, field string) ([]byte, error) {
	if len(d.buf) < n {
		return nil, ErrBadPayload.Wrapf("truncated at %s", field)
	}
	out := d.buf[:n]
	d.buf = d.buf[n:]
	return out, nil
}

func (d *decoder) u32(field string) (uint32, error) {
	bz, err := d.take(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bz), nil
}

func (d *decoder) hash(field string) (Hash, error) {
	var h Hash
	bz, err := d.take(len(h), field)
	if err != nil {
		return h, err
	}
	copy(h[:], bz)
	return h, nil
}

func (d *decoder) address(field string) (sdk.AccAddress, error) {
	n, err := d.u32(field)
	if err != nil {
		return nil, err
	}
	if n == 0 || n > maxAddressLen {
		return nil, ErrBadPayload.Wrapf("%s length %d", field, n)
	}
	bz, err := d.take(int(n), field)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(append([]byte(nil), bz...)), nil
}

func uint128LE(v *big.Int) []byte {
	be := make([]byte, 16)
	v.FillBytes(be)
	le := make([]byte, 16)
	for i := range be {
		le[i] = be[15-i]
	}
	return le
}

func fromUint128LE(le []byte) *big.Int {
	be := make([]byte, len(le))
	for i := range le {
		be[i] = le[len(le)-1-i]
	}
	return new(big.Int).SetBytes(be)
}
