package main

import "github.com/spf13/cobra"

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables (SQL) or indexes (Mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStores(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.close() }()

			if err := st.migrate(ctx); err != nil {
				return err
			}
			logger.Info("migration complete", "driver", cfg.StoreDriver)
			return nil
		},
	}
}
