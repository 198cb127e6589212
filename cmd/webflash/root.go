package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/webflash/webflash"
	"github.com/webflash/webflash/pkg/core"
)

var (
	verbose    bool
	configPath string
	dataDir    string
	adapter    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webflash",
	Short: "Capture web content as flashcards, then browse, study, and export them",
	Long: `webflash turns captured web pages and text selections into Q&A flashcards.
Cards live in local storage (a JSON slot file or a BoltDB database) and can be
generated automatically from page content via a completion service, with an
illustrative page image matched by embedding similarity.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Secrets come from the environment; a local .env is convenient
		// in development and harmless when absent.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default webflash.yaml in the data dir)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory (default ~/.webflash)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs or bolt")
}

// loadConfig resolves the effective configuration from defaults, the
// config file, the environment, and command-line flags (strongest last).
func loadConfig() (webflash.Config, error) {
	dir := dataDir
	if dir == "" {
		if v := os.Getenv(webflash.EnvDataDir); v != "" {
			dir = v
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return webflash.Config{}, fmt.Errorf("cannot determine home directory: %w", err)
			}
			dir = filepath.Join(home, ".webflash")
		}
	}

	path := configPath
	if path == "" {
		path = filepath.Join(dir, "webflash.yaml")
	}

	cfg, err := webflash.LoadConfig(path)
	if err != nil {
		return webflash.Config{}, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	if adapter != "" {
		cfg.Adapter = adapter
	}
	return cfg, nil
}

// openService wires a flashcard service from the effective config.
func openService() (*core.Service, webflash.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, webflash.Config{}, err
	}
	svc, err := webflash.New(cfg.DataDir,
		webflash.WithAdapter(cfg.Adapter),
		webflash.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, webflash.Config{}, err
	}
	return svc, cfg, nil
}
