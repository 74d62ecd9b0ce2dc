package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyrechain/LyreWallet/keypair"
)

func (c *cli) generateCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a keypair and save it unencrypted (debug only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := keypair.Generate()
			if err != nil {
				return err
			}
			defer kp.Destroy()

			outcome, err := c.store.SavePlaintext(kp, out)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %s\n", outcome, out)
			fmt.Fprintf(w, "Public key:  %s\n", kp.PublicKeyBase58())
			fmt.Fprintf(w, "Fingerprint: %s\n", kp.Fingerprint())
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "path of the new key file (must not exist)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
