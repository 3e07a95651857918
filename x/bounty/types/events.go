package types

// Event types for the bounty module
const (
	EventTypeBountyCreated        = "bounty_created"
	EventTypeSubmission           = "bounty_submission"
	EventTypeBountyFinalized      = "bounty_finalized"
	EventTypeAttestationRejected  = "bounty_attestation_rejected"
	EventTypeVerifyingKeyRegister = "bounty_verifying_key_registered"
)

// Event attribute keys for the bounty module
const (
	AttributeKeyBountyID     = "bounty_id"
	AttributeKeyCreator      = "creator"
	AttributeKeyVault        = "vault"
	AttributeKeyAmount       = "amount"
	AttributeKeyDeadline     = "deadline"
	AttributeKeySolver       = "solver"
	AttributeKeySubmissionID = "submission_id"
	AttributeKeyPredsHash    = "preds_hash"
	AttributeKeyURI          = "uri"
	AttributeKeyReason       = "reason"
	AttributeKeyEvalSpecHash = "eval_spec_hash"
	AttributeKeyMeasurement  = "measurement"
	AttributeKeyTrainRoot    = "train_root"
	AttributeKeyTestRoot     = "test_root"
)
