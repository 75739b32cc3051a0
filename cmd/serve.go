package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/secrets"
	"github.com/spigell/resume-ranker/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ranking HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("token-file", "", "file with the bearer token required by the API. Default is unset.")
	serveCmd.Flags().Int("max-upload-mb", 0, "maximum upload size in megabytes (default 16)")
	serveCmd.Flags().Int("max-sessions", 0, "maximum number of live sessions (default 1000)")
	serveCmd.Flags().Duration("session-ttl", 0, "drop sessions idle for longer than this (default 1h)")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.token-file", serveCmd.Flags().Lookup("token-file"))
	viper.BindPFlag("server.max-upload-mb", serveCmd.Flags().Lookup("max-upload-mb"))
	viper.BindPFlag("server.max-sessions", serveCmd.Flags().Lookup("max-sessions"))
	viper.BindPFlag("server.session-ttl", serveCmd.Flags().Lookup("session-ttl"))
}

func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker server", zap.String("version", version))

	mode, err := keywords.ParseMatchMode(config.KeywordMatch)
	if err != nil {
		logger.Fatal("parsing keyword match mode", zap.Error(err))
	}

	token, err := secrets.Optional(secrets.Source{
		Name: "api token",
		File: config.Server.TokenFile,
		Env:  "RANKER_TOKEN",
	})
	if err != nil {
		logger.Fatal(
			"loading api token",
			zap.Error(err),
			zap.String("hint", "set RANKER_TOKEN_FILE environment variable or the 'server.token-file' key in the configuration file"),
		)
	}

	if token == "" {
		logger.Warn("api token is not configured, the API is open to everyone")
	}

	srv := server.New(server.Config{
		Addr:        config.Server.Addr,
		Token:       token,
		MaxUploadMB: config.Server.MaxUploadMB,
		MaxSessions: config.Server.MaxSessions,
		SessionTTL:  config.Server.SessionTTL,
		Workers:     config.Workers,
		MatchMode:   mode,
	}, logger, metrics.New())

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serving", zap.Error(err))
	}

	logger.Info("server stopped")
}
