package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bassista/go_restate/internal/resource"
	"github.com/bassista/go_restate/internal/scheduler"
)

var (
	flagWatchParams   []string
	flagWatchInterval time.Duration
)

const fallbackWatchInterval = 30 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch <key>...",
	Short: "Periodically refresh archives and print them as they change",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseParams(flagWatchParams)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runWatch(ctx, args, resource.StaticQuery(params), watchInterval(flagWatchInterval))
	},
}

func init() {
	watchCmd.Flags().StringArrayVar(&flagWatchParams, "param", nil, "query parameter as key=value (repeatable)")
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 0, "refresh interval (default from config)")
}

// watchInterval resolves the refresh interval: flag, then config, then a
// built-in fallback.
func watchInterval(flagVal time.Duration) time.Duration {
	if flagVal > 0 {
		return flagVal
	}
	if cfg != nil && cfg.Client.RefreshInterval > 0 {
		return cfg.Client.RefreshInterval
	}
	return fallbackWatchInterval
}

// runWatch registers the archives, starts the refresher and prints the
// watched archives after every settled refresh. It blocks until ctx is
// canceled.
func runWatch(ctx context.Context, keys []string, spec resource.QuerySpec, interval time.Duration) error {
	for _, key := range keys {
		handler.RegisterArchive(key, spec)
	}

	unsub := st.Subscribe(func() {
		state := resourceState()
		if state.LoadingArchive != "" {
			return
		}
		watched := map[string][]resource.Entity{}
		for _, key := range keys {
			if entities := resource.GetArchive(state, key); entities != nil {
				watched[key] = entities
			}
		}
		if len(watched) > 0 {
			_ = printJSON(watched)
		}
	})
	defer unsub()

	r := scheduler.NewArchiveRefresher(handler, st, st, keys, interval)
	r.Start(ctx)

	<-ctx.Done()
	return nil
}
