package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/zhenghao/billsnap/internal/common"
	"github.com/zhenghao/billsnap/internal/config"
	"github.com/zhenghao/billsnap/internal/engine"
	"github.com/zhenghao/billsnap/internal/llm"
	"github.com/zhenghao/billsnap/internal/service"
	"github.com/zhenghao/billsnap/internal/storage"
)

// initStorage opens the correction store with proper path expansion.
func initStorage(ctx context.Context) (service.CorrectionStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/billsnap/billsnap.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open correction store at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, common.NewUserError("failed to prepare correction store", err)
	}

	return store, nil
}

// initEngine builds a classification engine. The external classifier is only
// constructed when withExternal is set; local classification needs no
// provider credentials.
func initEngine(ctx context.Context, withExternal bool) (*engine.Engine, service.CorrectionStore, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	var classifier engine.Classifier
	if withExternal {
		classifier, err = createClassifier()
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
	}

	return engine.New(store, classifier), store, nil
}

// createClassifier creates the external classifier from configuration.
func createClassifier() (engine.Classifier, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "openai"
	}

	cfg := llm.Config{
		Provider:    provider,
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RetryDelay:  viper.GetDuration("llm.retry_delay"),
		CacheTTL:    viper.GetDuration("llm.cache_ttl"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 60
	}

	switch provider {
	case "openai":
		cfg.APIKey = viper.GetString("llm.openai_api_key")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set llm.openai_api_key or OPENAI_API_KEY", common.ErrMissingConfig)
		}
	case "anthropic":
		cfg.APIKey = viper.GetString("llm.anthropic_api_key")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set llm.anthropic_api_key or ANTHROPIC_API_KEY", common.ErrMissingConfig)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported llm provider %q", common.ErrInvalidConfig, provider)
	}

	return llm.NewClassifier(cfg, slog.Default())
}
