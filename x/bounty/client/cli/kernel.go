package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/provability/provability/x/bounty/kernel"
)

// GetKernelCmd returns the offline dataset-split kernel commands.
func GetKernelCmd() *cobra.Command {
	kernelCmd := &cobra.Command{
		Use:                        "kernel",
		Short:                      "Dataset commitment and split kernel subcommands",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	kernelCmd.AddCommand(
		CmdKernelRoot(),
		CmdKernelSplit(),
		CmdKernelVerify(),
		CmdKernelInputs(),
		CmdKernelExecute(),
	)

	return kernelCmd
}

// CmdKernelRoot prints the Merkle root of a rows file.
func CmdKernelRoot() *cobra.Command {
	return &cobra.Command{
		Use:   "root [rows-file]",
		Short: "Print the Merkle root of a rows file",
		Long: `Print the Merkle root committing to a dataset. The rows file holds one
hex encoded 32-byte row hash per line.

Example:
  $ provd kernel root testset.rows`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRows(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), kernel.MerkleRoot(rows))
			return err
		},
	}
}

// CmdKernelSplit runs the split kernel over a rows file.
func CmdKernelSplit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split [rows-file]",
		Short: "Run the split kernel and print the journal",
		Long: `Shuffle the dataset under the seed, split it 80/20 and print the resulting
journal. The rows must hash to --root or no journal is produced. With --out the
encoded journal is also written to a file.

Example:
  $ provd kernel split testset.rows --seed <hex> --root <hex> --out journal.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRows(args[0])
			if err != nil {
				return err
			}
			seed, err := hashFlag(cmd.Flags(), FlagSeed)
			if err != nil {
				return err
			}
			root, err := hashFlag(cmd.Flags(), FlagRoot)
			if err != nil {
				return err
			}

			j, err := kernel.Split(rows, seed, root)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString(FlagOut)
			if out != "" {
				if err := os.WriteFile(out, j.Bytes(), 0o644); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "train_root: %s\n", j.TrainRoot)
			fmt.Fprintf(w, "test_root: %s\n", j.TestRoot)
			fmt.Fprintf(w, "train_count: %d\n", len(j.TrainIndices))
			_, err = fmt.Fprintf(w, "test_count: %d\n", len(rows)-len(j.TrainIndices))
			return err
		},
	}

	cmd.Flags().String(FlagSeed, "", "Hex encoded 32-byte shuffle seed")
	cmd.Flags().String(FlagRoot, "", "Hex encoded expected dataset root")
	cmd.Flags().String(FlagOut, "", "Write the encoded journal to this file")

	return cmd
}

// CmdKernelVerify audits a published journal against the dataset it claims to split.
func CmdKernelVerify() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [rows-file] [journal-file]",
		Short: "Audit a journal against a rows file",
		Long: `Check that the journal's train root is reproduced by the rows its indices
pick, and that its test root matches a fresh split under --seed.

Example:
  $ provd kernel verify testset.rows journal.bin --seed <hex>`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRows(args[0])
			if err != nil {
				return err
			}
			bz, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			j, err := kernel.DecodeJournal(bz)
			if err != nil {
				return err
			}
			seed, err := hashFlag(cmd.Flags(), FlagSeed)
			if err != nil {
				return err
			}

			if err := kernel.VerifyPartition(rows, seed, j); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "journal ok")
			return err
		},
	}

	cmd.Flags().String(FlagSeed, "", "Hex encoded 32-byte shuffle seed")

	return cmd
}

// CmdKernelInputs encodes a rows file and its public parameters as kernel inputs.
func CmdKernelInputs() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inputs [rows-file]",
		Short: "Encode a rows file as kernel execution inputs",
		Long: `Encode the rows, --seed and --root in the order the kernel reads them. The
result is the input stream of "provd kernel execute".

Example:
  $ provd kernel inputs testset.rows --seed <hex> --root <hex> --out inputs.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRows(args[0])
			if err != nil {
				return err
			}
			seed, err := hashFlag(cmd.Flags(), FlagSeed)
			if err != nil {
				return err
			}
			root, err := hashFlag(cmd.Flags(), FlagRoot)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			in := kernel.Inputs{Rows: rows, Seed: seed, ExpectedRoot: root}
			if _, err := in.WriteTo(&buf); err != nil {
				return err
			}
			return writeOutput(cmd, buf.Bytes())
		},
	}

	cmd.Flags().String(FlagSeed, "", "Hex encoded 32-byte shuffle seed")
	cmd.Flags().String(FlagRoot, "", "Hex encoded expected dataset root")
	cmd.Flags().String(FlagOut, "", "Write the inputs to this file instead of stdout")

	return cmd
}

// CmdKernelExecute runs the kernel entrypoint over an encoded input stream.
func CmdKernelExecute() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Run the kernel over encoded inputs and emit the journal",
		Long: `Read kernel inputs from --in (or stdin), run the split and write the encoded
journal to --out (or stdout). Nothing is written when the split fails.

Example:
  $ provd kernel inputs testset.rows --seed <hex> --root <hex> | provd kernel execute > journal.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.Reader = cmd.InOrStdin()
			if path, _ := cmd.Flags().GetString(FlagIn); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var journal bytes.Buffer
			if err := kernel.Execute(r, &journal); err != nil {
				return err
			}
			return writeOutput(cmd, journal.Bytes())
		},
	}

	cmd.Flags().String(FlagIn, "", "Read the inputs from this file instead of stdin")
	cmd.Flags().String(FlagOut, "", "Write the journal to this file instead of stdout")

	return cmd
}

// writeOutput writes bz to the --out file, or to the command's output.
func writeOutput(cmd *cobra.Command, bz []byte) error {
	if out, _ := cmd.Flags().GetString(FlagOut); out != "" {
		return os.WriteFile(out, bz, 0o644)
	}
	_, err := cmd.OutOrStdout().Write(bz)
	return err
}
