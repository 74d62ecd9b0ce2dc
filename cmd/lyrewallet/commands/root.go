package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lyrechain/LyreWallet/keystore"
)

// cli holds the state shared by one root command and its subcommands.
type cli struct {
	logLevel string
	noSync   bool
	store    *keystore.KeyStore
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "lyrewallet",
		Short:        "Generate and store LyreWallet signing keypairs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(c.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())

			opts := keystore.NewOptions()
			opts.SyncOnSave = !c.noSync
			c.store = keystore.NewKeyStore(opts)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&c.noSync, "no-sync", false, "skip fsync after saving a record")

	root.AddCommand(c.generateCmd(), c.showCmd(), c.inspectCmd(), demoCmd())
	return root
}
