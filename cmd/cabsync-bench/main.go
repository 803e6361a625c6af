// README: Smoke and load runner against a running cabsync API; checks HTTP, DB and Redis and prints results.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseURL        string
	Token          string
	DSN            string
	RedisAddr      string
	MigrationPath  string
	ApplyMigration bool
	Live           bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg Config
	cmd := &cobra.Command{
		Use:          "cabsync-bench",
		Short:        "Run smoke checks and a decode load test against a cabsync deployment",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			results := NewRunner(cfg).RunAll(ctx)

			fmt.Fprintln(cmd.OutOrStdout(), "\n== Summary ==")
			counts := map[string]int{}
			for _, r := range results {
				counts[r.Status]++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PASS=%d FAIL=%d PENDING=%d SKIP=%d\n",
				counts[StatusPass], counts[StatusFail], counts[StatusPending], counts[StatusSkip])
			if counts[StatusFail] > 0 {
				return fmt.Errorf("%d checks failed", counts[StatusFail])
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "base-url", envOrDefault("CABSYNC_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	f.StringVar(&cfg.Token, "token", os.Getenv("CABSYNC_BENCH_TOKEN"), "Firebase ID token sent as Bearer")
	f.StringVar(&cfg.DSN, "dsn", os.Getenv("CABSYNC_DB_DSN"), "Postgres DSN (empty skips DB checks)")
	f.StringVar(&cfg.RedisAddr, "redis", os.Getenv("CABSYNC_REDIS_ADDR"), "Redis address (empty skips Redis checks)")
	f.StringVar(&cfg.MigrationPath, "migration", "migrations/0001_rapido_payloads.sql", "Migration SQL path")
	f.BoolVar(&cfg.ApplyMigration, "apply-migration", false, "Apply migration SQL before the checks")
	f.BoolVar(&cfg.Live, "live", false, "Also request a live quote from the upstream")
	f.DurationVar(&cfg.Timeout, "timeout", 60*time.Second, "Total timeout")
	f.IntVar(&cfg.Concurrency, "concurrency", 20, "Workers for the load test")
	f.DurationVar(&cfg.Duration, "duration", 10*time.Second, "Load test duration")
	return cmd
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
