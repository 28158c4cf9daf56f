// Command wishctl holds operator utilities for a Wishkeeper deployment.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wishkeeper/wishkeeper-go/internal/crypto"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "wishctl",
		Short:        "Operator utilities for Wishkeeper",
		SilenceUsage: true,
	}
	root.AddCommand(newHashPasswordCmd(), newGenSecretCmd())
	return root
}

func newHashPasswordCmd() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Hash the admin password for ADMIN_PASSWORD_HASH",
		Long: "Hash the admin password. The password is read from the first argument, " +
			"or from the first line of stdin when no argument is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = line
			}

			hash, err := crypto.HashPassword(password, crypto.Algorithm(algorithm))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ADMIN_PASSWORD_HASH=%q\n", hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", string(crypto.Argon2id), "hash algorithm: argon2id or bcrypt")
	return cmd
}

func newGenSecretCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "gen-secret",
		Short: "Generate a random SESSION_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := crypto.GenerateSecret(size)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SESSION_SECRET=%s\n", secret)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "bytes", crypto.DefaultSecretBytes, "number of random bytes")
	return cmd
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
