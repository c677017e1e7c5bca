package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frustration-list/internal/config"
	"frustration-list/internal/model"
	web "frustration-list/internal/server"
	"frustration-list/internal/session"
	"frustration-list/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:   "frustrations",
	Short: "FrustrationList - " + model.Tagline,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyFlags(cmd); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var err error
		if cfg.LogFormat == config.LogFormatJSON {
			logger, err = zap.NewProduction()
		} else {
			logger, err = zap.NewDevelopment()
		}
		return err
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog session and web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Setup Signal Handling (Ctrl+C)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		// Setup Manual 'q' input handling
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if scanner.Text() == "q" {
					fmt.Println(" 'q' pressed. Stopping...")
					cancel()
					return
				}
			}
		}()

		go func() {
			select {
			case <-sigChan:
				logger.Info("Shutting down...")
				cancel()
			case <-ctx.Done():
			}
		}()

		st, err := store.Open(cfg.Backend, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			logger.Error("Failed to init store", zap.Error(err))
			return err
		}
		defer st.Close()

		sess := session.New(st, logger, session.WithNotifyDelay(cfg.NotifyDelay))
		sessErr := make(chan error, 1)
		go func() { sessErr <- sess.Run(ctx) }()

		srv, err := web.NewServer(sess, logger)
		if err != nil {
			return err
		}
		srvErr := make(chan error, 1)
		go func() { srvErr <- srv.Start(cfg.Addr) }()

		logger.Info("Server running.", zap.String("backend", cfg.Backend))
		fmt.Println("Press 'q' + Enter or Ctrl+C to stop.")

		var runErr error
		select {
		case <-ctx.Done():
		case err := <-srvErr:
			if !errors.Is(err, http.ErrServerClosed) {
				runErr = err
			}
		case err := <-sessErr:
			runErr = err
		}
		cancel()

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("Web server shutdown failed", zap.Error(err))
		}
		<-sess.Done()

		if runErr != nil {
			logger.Error("Stopped with error", zap.Error(runErr))
			return runErr
		}
		logger.Info("Goodbye!")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Print the catalog published on startup",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, item := range model.SeedItems(time.Now()) {
			fmt.Fprintf(out, "%-7s %2d/10  %s  %s\n",
				item.Category, item.Impact, item.CreatedAt.Format(time.DateTime), item.Text)
		}
	},
}

// applyFlags overrides the loaded config with the flags the user actually set.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("addr") {
		cfg.Addr, err = flags.GetString("addr")
	}
	if err == nil && flags.Changed("backend") {
		cfg.Backend, err = flags.GetString("backend")
	}
	if err == nil && flags.Changed("redis") {
		cfg.RedisAddr, err = flags.GetString("redis")
	}
	if err == nil && flags.Changed("redis-prefix") {
		cfg.RedisPrefix, err = flags.GetString("redis-prefix")
	}
	if err == nil && flags.Changed("notify-delay") {
		cfg.NotifyDelay, err = flags.GetDuration("notify-delay")
	}
	if err == nil && flags.Changed("log-format") {
		cfg.LogFormat, err = flags.GetString("log-format")
	}
	return err
}

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().String("backend", cfg.Backend, "Item store: memory, badger (in-memory) or redis")
	rootCmd.PersistentFlags().String("redis", cfg.RedisAddr, "Address of Redis server")
	rootCmd.PersistentFlags().String("redis-prefix", cfg.RedisPrefix, "Key prefix for the redis backend")
	rootCmd.PersistentFlags().Duration("notify-delay", cfg.NotifyDelay, "How long notifications stay visible")
	rootCmd.PersistentFlags().String("log-format", cfg.LogFormat, "Log output: console or json")
	serveCmd.Flags().String("addr", cfg.Addr, "HTTP listen address")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)

	err = rootCmd.Execute()
	if logger != nil {
		logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}
