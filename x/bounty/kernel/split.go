package kernel

import (
	"errors"
	"fmt"
	"math"
)

// MaxRows bounds the dataset so every index fits in a u32.
const MaxRows = math.MaxUint32

var (
	// ErrRootMismatch is returned when the private rows do not hash to the
	// public expected root. No journal is produced.
	ErrRootMismatch = errors.New("dataset root does not match expected root")

	// ErrTooManyRows is returned when the dataset exceeds MaxRows.
	ErrTooManyRows = errors.New("dataset exceeds maximum row count")

	// ErrPartitionMismatch is returned by VerifyPartition when the supplied rows
	// do not reproduce a journal's roots.
	ErrPartitionMismatch = errors.New("partition roots do not match journal")
)

// Journal is the public output of one kernel execution.
type Journal struct {
	TrainRoot    Hash
	TestRoot     Hash
	TrainIndices []uint32
}

// TrainSize returns floor(0.8 * n), the number of rows assigned to training.
func TrainSize(n int) int {
	return n * 4 / 5
}

// Split runs the kernel. It verifies rows against expectedRoot, shuffles them
// with seed, splits the shuffled sequence 80/20 and commits both partition roots
// and the original indices of the train partition in shuffled order.
//
// On any error the returned journal is nil.
func Split(rows []Hash, seed, expectedRoot Hash) (*Journal, error) {
	if uint64(len(rows)) > MaxRows {
		return nil, ErrTooManyRows
	}

	if actual := MerkleRoot(rows); actual != expectedRoot {
		return nil, fmt.Errorf("%w: computed %s, expected %s", ErrRootMismatch, actual, expectedRoot)
	}

	shuffled, indices, err := Shuffle(rows, seed)
	if err != nil {
		return nil, err
	}

	cut := TrainSize(len(shuffled))
	train, test := shuffled[:cut], shuffled[cut:]

	trainIndices := make([]uint32, cut)
	copy(trainIndices, indices[:cut])

	return &Journal{
		TrainRoot:    MerkleRoot(train),
		TestRoot:     MerkleRoot(test),
		TrainIndices: trainIndices,
	}, nil
}

// Partition reconstructs the train and test row sets described by a journal.
// Test rows keep their original relative order because the journal does not
// reveal the shuffled test order.
func Partition(rows []Hash, j *Journal) (train, test []Hash, err error) {
	if TrainSize(len(rows)) != len(j.TrainIndices) {
		return nil, nil, fmt.Errorf("journal has %d train indices, dataset of %d rows needs %d",
			len(j.TrainIndices), len(rows), TrainSize(len(rows)))
	}

	inTrain := make([]bool, len(rows))
	train = make([]Hash, 0, len(j.TrainIndices))
	for _, idx := range j.TrainIndices {
		if int64(idx) >= int64(len(rows)) {
			return nil, nil, fmt.Errorf("train index %d out of range", idx)
		}
		if inTrain[idx] {
			return nil, nil, fmt.Errorf("train index %d repeated", idx)
		}
		inTrain[idx] = true
		train = append(train, rows[idx])
	}

	test = make([]Hash, 0, len(rows)-len(train))
	for i, row := range rows {
		if !inTrain[i] {
			test = append(test, row)
		}
	}
	return train, test, nil
}

// VerifyPartition audits a published journal: the train root must be
// reproduced from rows picked by TrainIndices, and the test root must match a
// re-execution of the split under seed.
func VerifyPartition(rows []Hash, seed Hash, j *Journal) error {
	train, _, err := Partition(rows, j)
	if err != nil {
		return err
	}
	if MerkleRoot(train) != j.TrainRoot {
		return fmt.Errorf("%w: train root", ErrPartitionMismatch)
	}

	recomputed, err := Split(rows, seed, MerkleRoot(rows))
	if err != nil {
		return err
	}
	if recomputed.TestRoot != j.TestRoot {
		return fmt.Errorf("%w: test root", ErrPartitionMismatch)
	}
	return nil
}
