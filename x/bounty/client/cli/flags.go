package cli

// Flag constants for bounty tooling commands
const (
	// Kernel flags
	FlagSeed = "seed"
	FlagRoot = "root"

	// Attestation flags
	FlagProvingKey = "pk"
	FlagJournal    = "journal"
	FlagPayload    = "payload"
	FlagScore      = "score"

	// I/O flags
	FlagIn  = "in"
	FlagOut = "out"
)

const (
	// ProvingKeyFile and VerifyingKeyFile are the file names written by attest setup.
	ProvingKeyFile   = "proving_key.bin"
	VerifyingKeyFile = "verifying_key.bin"
)
