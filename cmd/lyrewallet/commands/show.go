package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyrechain/LyreWallet/keystore"
)

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show PATH",
		Short: "Load a key file and print the redacted keypair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := c.store.Load(args[0])
			if err != nil {
				return err
			}
			defer kp.Destroy()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %v\n", keystore.LoadedKeyPair, kp)
			fmt.Fprintf(w, "Public key:  %s\n", kp.PublicKeyBase58())
			fmt.Fprintf(w, "Fingerprint: %s\n", kp.Fingerprint())
			return nil
		},
	}
}

func (c *cli) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PATH",
		Short: "Print a key file's cipher tag and public key without loading the private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.store.Inspect(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Cipher:      %s, supported: %t\n", rec.Cipher.Describe(rec.Tag), rec.Cipher.Supported())
			fmt.Fprintf(w, "Public key:  %x\n", rec.PublicKey[:])
			return nil
		},
	}
}
