package kernel

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed is returned when an input or journal stream cannot be decoded.
var ErrMalformed = errors.New("malformed kernel stream")

// Inputs are the kernel's execution inputs in the order they are read:
// private rows, public seed, public expected root.
type Inputs struct {
	Rows         []Hash
	Seed         Hash
	ExpectedRoot Hash
}

// WriteTo encodes the inputs as u64 row count, rows, seed, expected root.
func (in Inputs) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, 8+len(in.Rows)*HashSize+2*HashSize)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(in.Rows)))
	for _, row := range in.Rows {
		buf = append(buf, row[:]...)
	}
	buf = append(buf, in.Seed[:]...)
	buf = append(buf, in.ExpectedRoot[:]...)

	n, err := w.Write(buf)
	return int64(n), err
}

// ReadInputs decodes inputs written by Inputs.WriteTo.
func ReadInputs(r io.Reader) (Inputs, error) {
	var in Inputs

	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return in, fmt.Errorf("%w: row count: %v", ErrMalformed, err)
	}
	if count > MaxRows {
		return in, ErrTooManyRows
	}

	in.Rows = make([]Hash, 0, min(count, 1<<16))
	for i := uint64(0); i < count; i++ {
		var row Hash
		if _, err := io.ReadFull(r, row[:]); err != nil {
			return in, fmt.Errorf("%w: row %d: %v", ErrMalformed, i, err)
		}
		in.Rows = append(in.Rows, row)
	}

	if _, err := io.ReadFull(r, in.Seed[:]); err != nil {
		return in, fmt.Errorf("%w: seed: %v", ErrMalformed, err)
	}
	if _, err := io.ReadFull(r, in.ExpectedRoot[:]); err != nil {
		return in, fmt.Errorf("%w: expected root: %v", ErrMalformed, err)
	}
	return in, nil
}

// Bytes encodes the journal as train root, test root, u64 index count and the
// indices as u32 values, all little-endian.
func (j *Journal) Bytes() []byte {
	buf := make([]byte, 0, 2*HashSize+8+4*len(j.TrainIndices))
	buf = append(buf, j.TrainRoot[:]...)
	buf = append(buf, j.TestRoot[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(j.TrainIndices)))
	for _, idx := range j.TrainIndices {
		buf = binary.LittleEndian.AppendUint32(buf, idx)
	}
	return buf
}

// DecodeJournal parses journal bytes. The whole buffer must be consumed.
func DecodeJournal(bz []byte) (*Journal, error) {
	if len(bz) < 2*HashSize+8 {
		return nil, fmt.Errorf("%w: journal too short (%d bytes)", ErrMalformed, len(bz))
	}

	j := &Journal{}
	copy(j.TrainRoot[:], bz[:HashSize])
	copy(j.TestRoot[:], bz[HashSize:2*HashSize])

	count := binary.LittleEndian.Uint64(bz[2*HashSize : 2*HashSize+8])
	rest := bz[2*HashSize+8:]
	if count > MaxRows || uint64(len(rest)) != count*4 {
		return nil, fmt.Errorf("%w: journal declares %d indices with %d trailing bytes", ErrMalformed, count, len(rest))
	}

	j.TrainIndices = make([]uint32, count)
	for i := range j.TrainIndices {
		j.TrainIndices[i] = binary.LittleEndian.Uint32(rest[4*i:])
	}
	return j, nil
}

// Execute is the guest entrypoint: it reads Inputs from r, runs Split and
// writes the journal to w. When the split fails nothing is written.
func Execute(r io.Reader, w io.Writer) error {
	in, err := ReadInputs(bufio.NewReader(r))
	if err != nil {
		return err
	}

	j, err := Split(in.Rows, in.Seed, in.ExpectedRoot)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, bytes.NewReader(j.Bytes()))
	return err
}
