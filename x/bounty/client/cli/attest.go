package cli

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/provability/provability/x/bounty/circuits"
	"github.com/provability/provability/x/bounty/kernel"
	"github.com/provability/provability/x/bounty/types"
)

// GetAttestCmd returns the attestation key management commands.
func GetAttestCmd() *cobra.Command {
	attestCmd := &cobra.Command{
		Use:                        "attest",
		Short:                      "Attestation circuit key subcommands",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	attestCmd.AddCommand(
		CmdAttestSetup(),
		CmdAttestMeasurement(),
		CmdAttestProve(),
	)

	return attestCmd
}

// CmdAttestSetup runs the Groth16 setup for the attestation circuit.
func CmdAttestSetup() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Generate attestation proving and verifying keys",
		Long: `Run the Groth16 setup for the attestation circuit and write the proving
and verifying keys to --out. The printed measurement is what a bounty pins as its
allowed measurement.

Example:
  $ provd attest setup --out ./keys`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString(FlagOut)
			if dir == "" {
				return fmt.Errorf("--%s is required", FlagOut)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			keys, err := circuits.Setup()
			if err != nil {
				return err
			}
			pk, err := keys.ProvingKeyBytes()
			if err != nil {
				return err
			}
			vk, err := keys.VerifyingKeyBytes()
			if err != nil {
				return err
			}

			if err := os.WriteFile(filepath.Join(dir, ProvingKeyFile), pk, 0o600); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(dir, VerifyingKeyFile), vk, 0o644); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), types.Measurement(vk))
			return err
		},
	}

	cmd.Flags().String(FlagOut, "", "Directory to write the keys to")

	return cmd
}

// CmdAttestMeasurement prints the measurement of a verifying key file.
func CmdAttestMeasurement() *cobra.Command {
	return &cobra.Command{
		Use:   "measurement [vk-file]",
		Short: "Print the SHA-256 measurement of a verifying key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vk, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if len(vk) == 0 {
				return fmt.Errorf("%s: empty verifying key", args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), types.Measurement(vk))
			return err
		},
	}
}

// CmdAttestProve proves an attested result and emits the finalize envelope.
func CmdAttestProve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Prove an attested result and emit its attestation envelope",
		Long: `Prove that --score yields the pass bit of the attested result in --payload,
bound to the split journal in --journal. The printed envelope is the attestation
argument of finalize.

Example:
  $ provd attest prove --pk keys/proving_key.bin --payload result.bin \
      --journal journal.bin --score 420 --out envelope.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()

			rawScore, _ := flags.GetString(FlagScore)
			if rawScore == "" {
				return fmt.Errorf("--%s is required", FlagScore)
			}
			score, ok := new(big.Int).SetString(rawScore, 10)
			if !ok || score.Sign() < 0 || score.BitLen() > circuits.HalfBits {
				return fmt.Errorf("invalid --%s: want an unsigned 128-bit integer", FlagScore)
			}

			payload, err := fileFlag(flags, FlagPayload)
			if err != nil {
				return err
			}
			result, err := types.DecodeAttestedResult(payload)
			if err != nil {
				return err
			}
			if pass := score.Cmp(result.ThresholdT2.BigInt()) <= 0; pass != result.Pass {
				return fmt.Errorf("score %s gives pass=%t under threshold %s, payload claims pass=%t",
					score, pass, result.ThresholdT2, result.Pass)
			}

			journalBytes, err := fileFlag(flags, FlagJournal)
			if err != nil {
				return err
			}
			journal, err := kernel.DecodeJournal(journalBytes)
			if err != nil {
				return err
			}

			pk, err := fileFlag(flags, FlagProvingKey)
			if err != nil {
				return err
			}
			prover, err := circuits.LoadProver(pk)
			if err != nil {
				return err
			}

			proof, err := prover.Prove(types.NewPublicInputs(payload, result, journal), score)
			if err != nil {
				return err
			}
			env, err := types.AttestationEnvelope{Proof: proof, Journal: journalBytes}.Marshal()
			if err != nil {
				return err
			}
			return writeOutput(cmd, env)
		},
	}

	cmd.Flags().String(FlagProvingKey, "", "Proving key file written by attest setup")
	cmd.Flags().String(FlagPayload, "", "Encoded attested result")
	cmd.Flags().String(FlagJournal, "", "Encoded kernel journal")
	cmd.Flags().String(FlagScore, "", "Squared-error score at the bounty's scale")
	cmd.Flags().String(FlagOut, "", "Write the envelope to this file instead of stdout")

	return cmd
}
