package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kezzyngotho/aura/internal/analytics"
	"github.com/kezzyngotho/aura/internal/classify"
	"github.com/kezzyngotho/aura/internal/kv"
	"github.com/kezzyngotho/aura/internal/platform"
)

var (
	purgeExpired  bool
	classifyUser  string
	analyticsDays int
)

// migrateCmd creates the KV table and optionally drops expired rows
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the key-value table in the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.KVDriver != kv.DriverPostgres && cfg.KVDriver != kv.DriverSQLite {
			return fmt.Errorf("KV_DRIVER %q has nothing to migrate", cfg.KVDriver)
		}

		store, closeStore, err := platform.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ migrated "+cfg.KVDriver+" store"))

		if !purgeExpired {
			return nil
		}
		sqlStore, ok := store.(*kv.SQLStore)
		if !ok {
			return errors.New("store does not support purging")
		}
		n, err := sqlStore.PurgeExpired(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("purged %d expired keys", n)))
		return nil
	},
}

// templatesCmd prints the squad templates
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List squad templates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), renderTemplates(classify.Templates()))
	},
}

// classifyCmd runs a query through the classifier
var classifyCmd = &cobra.Command{
	Use:   "classify <query>",
	Short: "Classify a query and suggest a squad",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, closeStore, err := platform.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		client, err := platform.NewLLMClient(cmd.Context(), cfg.LLM)
		if err != nil {
			return err
		}

		svc := classify.NewService(client, analytics.NewService(store, logger), logger)
		result, err := svc.Dispatch(cmd.Context(), classifyUser, strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), renderResult(result))
		return nil
	},
}

// analyticsCmd prints platform metrics
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show query and token metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, closeStore, err := platform.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		metrics, err := analytics.NewService(store, logger).GetMetrics(cmd.Context(), analyticsDays)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), renderMetrics(metrics))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&purgeExpired, "purge", false, "Also delete expired keys")
	classifyCmd.Flags().StringVarP(&classifyUser, "user", "u", "squadctl", "User id recorded in analytics")
	analyticsCmd.Flags().IntVarP(&analyticsDays, "days", "d", 7, "Days to aggregate (max 30)")
}
