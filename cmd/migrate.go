package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gmit-kupang/sensus-jemaat/pkg/storage/mariadb"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Membuat tabel congregants, admins dan form_drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := mariadb.Connect(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := mariadb.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info("Migrasi selesai")
			return nil
		},
	}
}
