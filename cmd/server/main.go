package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/mcp-showcase/internal/api"
	"github.com/good-yellow-bee/mcp-showcase/internal/api/health"
	"github.com/good-yellow-bee/mcp-showcase/internal/blog"
	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/highlight"
	"github.com/good-yellow-bee/mcp-showcase/internal/logging"
	"github.com/good-yellow-bee/mcp-showcase/internal/metrics"
	"github.com/good-yellow-bee/mcp-showcase/internal/newsletter"
	"github.com/good-yellow-bee/mcp-showcase/internal/server"
	"github.com/good-yellow-bee/mcp-showcase/internal/storage"
	"github.com/good-yellow-bee/mcp-showcase/internal/web"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/handlers"
	"github.com/good-yellow-bee/mcp-showcase/pkg/version"
)

var (
	configFile  string
	envFile     string
	httpAddr    string
	catalogPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "showcase-server",
	Short: "MCP Showcase - project catalog, blog and API server",
	Long: `MCP Showcase serves the project catalog as a website and a JSON API,
together with the blog and the newsletter signup.`,
	SilenceUsage: true,
	RunE:         runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get().String("showcase-server"))
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and catalog, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := loadCatalog(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		fmt.Printf("config ok, catalog has %d projects\n", c.Len())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: XDG config dir if present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading SHOWCASE_* variables")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP listen address")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default: embedded catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration in order: defaults, file, .env and
// SHOWCASE_* variables, then flags.
func loadConfig() (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	path := configFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath()); err == nil {
			path = DefaultConfigPath()
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	// Override with CLI flags
	if httpAddr != "" {
		cfg.Server.HTTPAddress = httpAddr
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	cfg.Verbose = verbose
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	logging.SetDefault(logger)

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	holder := catalog.NewHolder(cat)
	metrics.CatalogProjects.Set(float64(cat.Len()))
	metrics.SetBuildInfo(version.Version, version.Commit, version.BuildTime)

	posts, err := blog.Default()
	if err != nil {
		return fmt.Errorf("load blog: %w", err)
	}

	store := storage.NewSQLiteStorage(cfg.Database.Path)
	if err := store.Open(); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	schema, err := store.SchemaVersion(cmd.Context())
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.Info("database initialized", "path", cfg.Database.Path, "schema", schema)

	csrfKey := cfg.Security.CSRFKey
	if csrfKey == "" {
		csrfKey, err = randomKey()
		if err != nil {
			return fmt.Errorf("generate csrf key: %w", err)
		}
		logger.Warn("security.csrf_key not set, using a per-process key; forms break across restarts")
	}

	highlighter := highlight.New(cfg.Highlight.Style, duration(cfg.Highlight.CacheTTL))
	subscriptions := newsletter.NewService(store.Subscribers(), logger.With("component", "newsletter"))

	site, err := web.NewServer(handlers.Deps{
		Catalog:       holder,
		Blog:          posts,
		Newsletter:    subscriptions,
		Highlighter:   highlighter,
		BaseURL:       cfg.Server.BaseURL,
		SecureCookies: cfg.Security.SecureCookies,
		Version:       version.Version,
		Logger:        logger.With("component", "web"),
	}, csrfKey)
	if err != nil {
		return fmt.Errorf("create web server: %w", err)
	}
	defer site.Close()

	apiServer, err := api.New(&api.Config{
		Address:            cfg.Server.HTTPAddress,
		ReadTimeout:        duration(cfg.Server.ReadTimeout),
		WriteTimeout:       duration(cfg.Server.WriteTimeout),
		RateLimitPerMinute: cfg.API.RateLimitPerMinute,
		CORSOrigins:        cfg.API.CORSOrigins,
		Verbose:            cfg.Verbose,
		Version:            version.Version,
	}, api.Deps{
		Catalog:    holder,
		Blog:       posts,
		Newsletter: subscriptions,
		Web:        site.Routes(),
		Logger:     logger.With("component", "http"),
	})
	if err != nil {
		return fmt.Errorf("create http server: %w", err)
	}
	apiServer.RegisterHealthChecker(health.NewSQLiteChecker(store.DB()))

	var watcher *catalog.Watcher
	if cfg.Catalog.Watch {
		watcher, err = catalog.NewWatcher(cfg.Catalog.Path, holder, logger)
		if err != nil {
			return fmt.Errorf("create catalog watcher: %w", err)
		}
	}

	srv, err := server.New(&server.Config{MetricsAddress: cfg.Server.MetricsAddress}, server.Deps{
		HTTP:        apiServer,
		Watcher:     watcher,
		Highlighter: highlighter,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting showcase-server",
		"version", version.Version,
		"http", cfg.Server.HTTPAddress,
		"metrics", cfg.Server.MetricsAddress,
		"projects", cat.Len(),
		"watch", cfg.Catalog.Watch,
	)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}

func randomKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
