package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/manajemen/services"
	"github.com/gmit-kupang/sensus-jemaat/pkg/storage/mariadb"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Pengelolaan akun admin",
	}

	var username, nama, password, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Membuat akun admin baru",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := mariadb.Connect(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			id, err := services.NewAdminService(db).CreateAdmin(cmd.Context(), username, nama, password, role)
			if err != nil {
				return err
			}
			log.Info("Admin dibuat", zap.Int64("id", id), zap.String("username", username))
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s dibuat (id %d)\n", username, id)
			return nil
		},
	}
	create.Flags().StringVar(&username, "username", "", "username admin")
	create.Flags().StringVar(&nama, "nama", "", "nama lengkap")
	create.Flags().StringVar(&password, "password", "", "password")
	create.Flags().StringVar(&role, "role", "admin", "role")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
