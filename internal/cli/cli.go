package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tcfw/didanchor/internal/config"
	"github.com/tcfw/didanchor/internal/utils/logging"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:               "didanchor",
		Short:             "Mint, inspect and store ledger anchored DID documents",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase verbosity")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	regCommands()
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	logging.SetOutput(cmd.ErrOrStderr())

	c, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	cfg = c
	return nil
}
