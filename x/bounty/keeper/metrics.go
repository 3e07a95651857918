package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BountyMetrics holds all Prometheus metrics for the bounty module
type BountyMetrics struct {
	// Ledger metrics
	BountiesCreated    prometheus.Counter
	SubmissionsCreated prometheus.Counter
	BountiesFinalized  prometheus.Counter
	TransitionsFailed  *prometheus.CounterVec
	ValueLocked        prometheus.Counter
	ValueReleased      prometheus.Counter

	// Attestation metrics
	AttestationsRejected  *prometheus.CounterVec
	ProofVerificationTime prometheus.Histogram

	// Registry metrics
	VerifyingKeysRegistered prometheus.Counter
}

var (
	bountyMetricsOnce sync.Once
	bountyMetrics     *BountyMetrics
)

// NewBountyMetrics creates and registers bounty metrics (singleton pattern)
func NewBountyMetrics() *BountyMetrics {
	bountyMetricsOnce.Do(func() {
		bountyMetrics = &BountyMetrics{
			BountiesCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "bounties_created_total",
					Help:      "Total bounties created",
				},
			),
			SubmissionsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "submissions_total",
					Help:      "Total submissions accepted",
				},
			),
			BountiesFinalized: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "bounties_finalized_total",
					Help:      "Total bounties paid out",
				},
			),
			TransitionsFailed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "transitions_failed_total",
					Help:      "Total rejected ledger transitions",
				},
				[]string{"transition", "reason"},
			),
			ValueLocked: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "value_locked_total",
					Help:      "Base units locked into vaults",
				},
			),
			ValueReleased: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "value_released_total",
					Help:      "Base units released from vaults",
				},
			),
			AttestationsRejected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "attestations_rejected_total",
					Help:      "Total attestations rejected by the verifier",
				},
				[]string{"reason"},
			),
			ProofVerificationTime: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "proof_verification_seconds",
					Help:      "Attestation proof verification time in seconds",
					Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
				},
			),
			VerifyingKeysRegistered: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "provability",
					Subsystem: "bounty",
					Name:      "verifying_keys_registered_total",
					Help:      "Total verifying keys registered",
				},
			),
		}
	})
	return bountyMetrics
}
