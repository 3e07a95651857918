package types

const (
	// ModuleName defines the module name
	ModuleName = "bounty"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for bounty
	RouterKey = ModuleName

	// DefaultDenom is the denom locked in bounty vaults unless params override it
	DefaultDenom = "uprov"
)

// Derivation labels. Every address the module controls is derived from one of
// these labels plus the identities it belongs to.
var (
	BountyLabel     = []byte("bounty_state")
	VaultLabel      = []byte("vault")
	SubmissionLabel = []byte("submission")
)

// Store key prefixes
var (
	ParamsKey              = []byte{0x01}
	BountyKeyPrefix        = []byte{0x02}
	SubmissionKeyPrefix    = []byte{0x03}
	SubmissionIDKeyPrefix  = []byte{0x04}
	VerifyingKeyPrefix     = []byte{0x05}
	BountiesByCreatorIndex = []byte{0x06}
)
