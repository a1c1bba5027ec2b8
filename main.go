package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ternarybob/arbor"

	"pdftools/api"
	"pdftools/common"
	"pdftools/pdf"
)

// configPaths is a flag that may be given more than once
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	serverPort  = flag.Int("port", 0, "Server port (overrides config)")
	serverHost  = flag.String("host", "", "Server host (overrides config)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if len(configFiles) == 0 {
		if _, err := os.Stat("pdftools.toml"); err == nil {
			configFiles = append(configFiles, "pdftools.toml")
		}
	}

	// Load configuration
	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		arbor.NewLogger().Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	common.ApplyFlagOverrides(config, *serverPort, *serverHost)

	logger := common.InitLogger(config)

	processor := pdf.NewProcessor(pdf.NewConfiguration(config.PDF.StrictValidation()), logger)

	r := gin.Default()

	api.SetupRoutes(r, &api.Config{
		MaxFileSize:  config.Files.MaxFileSize,
		TempDir:      config.Files.TempDir,
		CleanupDelay: common.Duration(config.Files.CleanupDelay),
		Processor:    processor,
		Logger:       logger,
	})

	// Create HTTP server with timeout settings
	srv := &http.Server{
		Addr:         config.Addr(),
		Handler:      r,
		ReadTimeout:  common.Duration(config.Server.ReadTimeout),
		WriteTimeout: common.Duration(config.Server.WriteTimeout),
		IdleTimeout:  common.Duration(config.Server.IdleTimeout),
	}

	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Int64("max_file_size", config.Files.MaxFileSize).
			Str("temp_dir", config.Files.TempDir).
			Str("validation_mode", config.PDF.ValidationMode).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), common.Duration(config.Server.GracefulShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
