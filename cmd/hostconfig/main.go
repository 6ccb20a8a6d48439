package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/hostconfig/internal/server"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override environment
	port := flag.String("port", cfg.Server.Port, "Inspection server port")
	settingsFile := flag.String("settings", cfg.Settings.File, "Persisted settings file (yaml, toml or json)")
	flagsFile := flag.String("flags", cfg.Flags.File, "Feature flag snapshot file (json)")
	flagsURL := flag.String("flags-url", cfg.Flags.URL, "Remote feature flag endpoint")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	printOnly := flag.Bool("print", false, "Print resolved options as JSON and exit")
	modeName := flag.String("mode", "", "Print the resolved mode of one namespace.name setting and exit")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Settings.File = *settingsFile
	cfg.Flags.File = *flagsFile
	cfg.Flags.URL = *flagsURL
	cfg.Logging.Development = *dev

	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		var err error
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Logging.Level
		logger, err = logging.New(logCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", cfg.Logging.Level, err)
			os.Exit(2)
		}
	}

	// Room for every flag fetch attempt
	startup := time.Duration(cfg.Flags.Retries+1)*cfg.Flags.Timeout + time.Second
	startCtx, cancel := context.WithTimeout(context.Background(), startup)
	srv, err := server.New(startCtx, cfg, server.Deps{Logger: logger})
	cancel()
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	if *modeName != "" {
		mode, err := srv.ModeFor(*modeName)
		if err != nil {
			logger.Fatal("Failed to resolve mode", zap.Error(err))
		}
		fmt.Println(mode)
		return
	}

	if *printOnly {
		out, err := sonic.ConfigStd.MarshalIndent(srv.Report(), "", "  ")
		if err != nil {
			logger.Fatal("Failed to encode report", zap.Error(err))
		}
		fmt.Println(string(out))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case <-sigChan:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}
}
