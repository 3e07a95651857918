package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/provability/provability/x/bounty/types"
)

// BountyKey returns the store key for a bounty
func BountyKey(bountyID sdk.AccAddress) []byte {
	return append(cloneBytes(types.BountyKeyPrefix), address.MustLengthPrefix(bountyID)...)
}

// SubmissionKey returns the store key for the submission of solver to a bounty.
// The key is unique per (bounty, solver) pair.
func SubmissionKey(bountyID, solver sdk.AccAddress) []byte {
	key := append(cloneBytes(types.SubmissionKeyPrefix), address.MustLengthPrefix(bountyID)...)
	return append(key, address.MustLengthPrefix(solver)...)
}

// SubmissionsByBountyPrefix returns the prefix of all submissions to a bounty
func SubmissionsByBountyPrefix(bountyID sdk.AccAddress) []byte {
	return append(cloneBytes(types.SubmissionKeyPrefix), address.MustLengthPrefix(bountyID)...)
}

// SubmissionIDKey returns the index key mapping a submission id to its primary key
func SubmissionIDKey(submissionID sdk.AccAddress) []byte {
	return append(cloneBytes(types.SubmissionIDKeyPrefix), address.MustLengthPrefix(submissionID)...)
}

// VerifyingKeyKey returns the registry key for an evaluation program
func VerifyingKeyKey(evalSpecHash types.Hash) []byte {
	return append(cloneBytes(types.VerifyingKeyPrefix), evalSpecHash[:]...)
}

// BountyByCreatorKey returns the index key for a bounty opened by creator
func BountyByCreatorKey(creator, bountyID sdk.AccAddress) []byte {
	key := append(cloneBytes(types.BountiesByCreatorIndex), address.MustLengthPrefix(creator)...)
	return append(key, address.MustLengthPrefix(bountyID)...)
}

// BountiesByCreatorPrefix returns the index prefix of all bounties of creator
func BountiesByCreatorPrefix(creator sdk.AccAddress) []byte {
	return append(cloneBytes(types.BountiesByCreatorIndex), address.MustLengthPrefix(creator)...)
}

func cloneBytes(bz []byte) []byte {
	return append([]byte(nil), bz...)
}
