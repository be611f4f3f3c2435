// Package cmd berisi perintah CLI sensus-jemaat.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/config"
	"github.com/gmit-kupang/sensus-jemaat/pkg/logger"
)

const serviceName = "sensus-jemaat"

var (
	cfg *config.Config
	log *zap.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          "sensus-jemaat",
		Short:        "Layanan formulir sensus jemaat GMIT",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.LoadConfig()
			l, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	serve := serveCmd()
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, migrateCmd(), adminCmd())
	return root.Execute()
}
