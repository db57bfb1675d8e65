package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"dinneragent"
	"dinneragent/completion/bedrock"
	"dinneragent/completion/mock"
	"dinneragent/completion/openai"
	"dinneragent/httpserver"
	"dinneragent/notion"
	"dinneragent/planner"
	"dinneragent/sqlitestore"
	"dinneragent/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var storeCfg dinneragent.StoreConfig
	if err := envdecode.Decode(&storeCfg); err != nil {
		log.Fatalf("Failed to decode store config: %s", err)
	}
	var modelCfg dinneragent.ModelConfig
	if err := envdecode.Decode(&modelCfg); err != nil {
		log.Fatalf("Failed to decode model config: %s", err)
	}
	var templateCfg dinneragent.TemplateConfig
	if err := envdecode.Decode(&templateCfg); err != nil {
		log.Fatalf("Failed to decode template config: %s", err)
	}
	var serverCfg dinneragent.ServerConfig
	if err := envdecode.Decode(&serverCfg); err != nil {
		log.Fatalf("Failed to decode server config: %s", err)
	}

	_, _, otelShutdown, err := dinneragent.InitOtel(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %s", err)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	inventory, runs, err := newStores(storeCfg)
	if err != nil {
		log.Fatalf("Failed to set up record store: %s", err)
	}
	slog.Info("SETUP: Record store initialized", "driver", storeCfg.Driver)

	llm, err := newCompletionClient(ctx, modelCfg)
	if err != nil {
		log.Fatalf("Failed to set up completion backend: %s", err)
	}
	slog.Info("SETUP: Completion backend initialized", "provider", modelCfg.Provider, "model", modelCfg.ModelID)

	templates, err := newTemplateSource(ctx, templateCfg)
	if err != nil {
		log.Fatalf("Failed to set up prompt template source: %s", err)
	}

	p := planner.NewPlanner(planner.PlannerOpts{
		Inventory: inventory,
		Runs:      runs,
		LLM:       llm,
		Templates: templates,
		Logger:    dinneragent.NewStdoutInvocationLogger(),
	})

	srv := httpserver.New(serverCfg.Addr, p)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %s", err)
		}
	case <-ctx.Done():
		slog.Info("SERVER: Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("SERVER: Shutdown failed", "error", err)
		}
	}
}

func newStores(cfg dinneragent.StoreConfig) (dinneragent.InventoryStore, dinneragent.RunStore, error) {
	switch cfg.Driver {
	case "notion":
		client := notion.NewClient(notion.ClientOpts{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			Version:    cfg.Version,
			HTTPClient: &http.Client{Timeout: 30 * time.Second},
		})
		return notion.NewInventoryStore(client, cfg.InventoryDB), notion.NewRunStore(client, cfg.RunLogDB), nil

	case "sqlite":
		store, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func newCompletionClient(ctx context.Context, cfg dinneragent.ModelConfig) (dinneragent.CompletionClient, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewClient(openai.ClientOpts{
			APIURL:      cfg.APIURL,
			APIKey:      cfg.APIKey,
			ModelID:     cfg.ModelID,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			HTTPClient:  &http.Client{Timeout: 120 * time.Second},
		}), nil

	case "bedrock":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return bedrock.NewClient(bedrockruntime.NewFromConfig(awsCfg), bedrock.ClientOpts{
			ModelID:     cfg.ModelID,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}), nil

	case "mock":
		return mock.NewClient(), nil

	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

func newTemplateSource(ctx context.Context, cfg dinneragent.TemplateConfig) (storage.TemplateSource, error) {
	switch {
	case cfg.Template != "":
		return storage.NewStaticTemplateSource(cfg.Template), nil

	case cfg.Path != "":
		return storage.NewFileTemplateSource(cfg.Path), nil

	case cfg.S3Bucket != "" && cfg.S3Key != "":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return storage.NewS3TemplateSource(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Key), nil

	default:
		fmt.Fprintln(os.Stderr, "missing prompt template: set PROMPT_TEMPLATE, PROMPT_TEMPLATE_PATH or the PROMPT_TEMPLATE_S3_* pair")
		return nil, fmt.Errorf("no prompt template configured")
	}
}
