package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyrechain/LyreWallet/keypair"
)

func demoCmd() *cobra.Command {
	var dangerous bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through generate, print and scrub of a throwaway keypair",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			var kp keypair.KeyPair
			defer kp.Destroy()
			fmt.Fprintln(w, kp)

			if err := kp.Regenerate(); err != nil {
				return err
			}
			fmt.Fprintln(w, kp)
			if dangerous {
				kp.DangerousDebugFprint(w)
			}

			outcome := kp.ZeroPrivateKey()
			fmt.Fprintln(w, outcome)
			if dangerous {
				kp.DangerousDebugFprint(w)
			}
			if outcome != keypair.ZeroingCompleted {
				return errors.New("private key was not zeroed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dangerous, "dangerous", false, "also print the unredacted private key")
	return cmd
}
