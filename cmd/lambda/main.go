package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"dinneragent"
	"dinneragent/completion/openai"
	"dinneragent/notion"
	"dinneragent/planner"
	"dinneragent/storage"
)

type Params struct {
	// Action selects the pipeline: "generate" (default) or "cook".
	Action string `json:"action"`
	MealID string `json:"meal_id,omitempty"`
}

type Results struct {
	Output any `json:"output"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
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

		httpClient := &http.Client{Timeout: 120 * time.Second}

		client := notion.NewClient(notion.ClientOpts{
			BaseURL:    storeCfg.BaseURL,
			APIKey:     storeCfg.APIKey,
			Version:    storeCfg.Version,
			HTTPClient: httpClient,
		})

		templates, err := newTemplateSource(ctx, templateCfg)
		if err != nil {
			slog.Error("SETUP: Failed to set up template source", "error", err)
			return Results{}, err
		}

		p := planner.NewPlanner(planner.PlannerOpts{
			Inventory: notion.NewInventoryStore(client, storeCfg.InventoryDB),
			Runs:      notion.NewRunStore(client, storeCfg.RunLogDB),
			LLM: openai.NewClient(openai.ClientOpts{
				APIURL:      modelCfg.APIURL,
				APIKey:      modelCfg.APIKey,
				ModelID:     modelCfg.ModelID,
				Temperature: modelCfg.Temperature,
				MaxTokens:   modelCfg.MaxTokens,
				HTTPClient:  httpClient,
			}),
			Templates: templates,
			Logger:    dinneragent.NewStdoutInvocationLogger(),
		})

		switch params.Action {
		case "", "generate":
			out, err := p.Generate(ctx)
			if err != nil {
				return Results{}, err
			}
			return Results{Output: out}, nil

		case "cook":
			out, err := p.Cook(ctx, params.MealID)
			if err != nil {
				return Results{}, err
			}
			return Results{Output: out}, nil

		default:
			return Results{}, fmt.Errorf("unknown action %q", params.Action)
		}
	}

	lambda.Start(fn)
}

func newTemplateSource(ctx context.Context, cfg dinneragent.TemplateConfig) (storage.TemplateSource, error) {
	switch {
	case cfg.Template != "":
		return storage.NewStaticTemplateSource(cfg.Template), nil

	case cfg.S3Bucket != "" && cfg.S3Key != "":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return storage.NewS3TemplateSource(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Key), nil

	default:
		return nil, fmt.Errorf("no prompt template configured")
	}
}
