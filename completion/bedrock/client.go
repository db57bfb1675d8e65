// Package bedrock implements the completion backend on the Bedrock Converse
// API, for deployments that keep inference inside AWS.
package bedrock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

const (
	// defaultModelID is an inference profile ID, not a foundation model ID.
	// See https://docs.aws.amazon.com/bedrock/latest/userguide/inference-profiles.html.
	defaultModelID = "us.anthropic.claude-3-7-sonnet-20250219-v1:0"

	defaultMaxTokens   = 900
	defaultTemperature = 0.4
	defaultTopP        = 0.9
)

type bedrockRuntimeClient interface {
	Converse(context.Context, *bedrockruntime.ConverseInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type ClientOpts struct {
	ModelID     string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

type Client struct {
	brc  bedrockRuntimeClient
	opts ClientOpts
}

func NewClient(brc bedrockRuntimeClient, opts ClientOpts) *Client {
	if opts.ModelID == "" {
		opts.ModelID = defaultModelID
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.TopP == 0 {
		opts.TopP = defaultTopP
	}
	return &Client{brc: brc, opts: opts}
}

// Complete sends the prompt as one user turn and returns the assistant text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "model", c.opts.ModelID, "prompt_len", len(prompt))

	in := &bedrockruntime.ConverseInput{
		ModelId: &c.opts.ModelID,
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: prompt},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(c.opts.MaxTokens),
			Temperature: aws.Float32(c.opts.Temperature),
			TopP:        aws.Float32(c.opts.TopP),
		},
	}

	out, err := c.brc.Converse(ctx, in)
	if err != nil {
		slog.Error("LLM_CLIENT: Bedrock invoke failed", "error", err)
		return "", err
	}

	slog.Info("LLM_CLIENT: Bedrock invoke succeeded",
		"stop_reason", out.StopReason,
		"latency_ms", aws.ToInt64(out.Metrics.LatencyMs),
		"input_tokens", aws.ToInt32(out.Usage.InputTokens),
		"output_tokens", aws.ToInt32(out.Usage.OutputTokens),
	)

	switch out.StopReason {
	case "max_tokens":
		return "", fmt.Errorf("model hit MaxTokens limit; consider increasing MaxTokens")
	case "safety", "content_filtered":
		return "", fmt.Errorf("model response blocked by Bedrock safety filters")
	default:
		return textFromOutput(out), nil
	}
}

// textFromOutput joins all assistant text blocks with newlines. The reply
// layout (date line, bullets, trailing JSON) must survive intact for the
// parser, so no block is preferred over another.
func textFromOutput(out *bedrockruntime.ConverseOutput) string {
	if out == nil || out.Output == nil {
		return ""
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || len(msg.Value.Content) == 0 {
		return ""
	}

	texts := make([]string, 0, len(msg.Value.Content))
	for _, cb := range msg.Value.Content {
		if t, ok := cb.(*types.ContentBlockMemberText); ok && t.Value != "" {
			texts = append(texts, t.Value)
		}
	}
	return strings.Join(texts, "\n")
}
