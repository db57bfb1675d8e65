package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"dinneragent"
	"dinneragent/storage"
)

// Planner owns both pipelines. All collaborators are injected; nothing here
// reads the environment.
type Planner struct {
	inventory dinneragent.InventoryStore
	runs      dinneragent.RunStore
	llm       dinneragent.CompletionClient
	templates storage.TemplateSource
	logger    dinneragent.InvocationLogger
	clock     func() time.Time

	runsWritten metric.Int64Counter
}

type PlannerOpts struct {
	Inventory dinneragent.InventoryStore
	Runs      dinneragent.RunStore
	LLM       dinneragent.CompletionClient
	Templates storage.TemplateSource
	Logger    dinneragent.InvocationLogger

	// Clock defaults to time.Now; tests pin it for stable run titles.
	Clock func() time.Time
}

func NewPlanner(opts PlannerOpts) *Planner {
	if opts.Logger == nil {
		opts.Logger = dinneragent.NewNoOpInvocationLogger()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	runsWritten, err := otel.Meter(dinneragent.MeterName).Int64Counter(
		"runs_written",
		metric.WithDescription("Run records appended to the run log, by status."),
	)
	if err != nil {
		slog.Warn("PLANNER: Failed to create runs_written counter", "error", err)
	}

	return &Planner{
		inventory:   opts.Inventory,
		runs:        opts.Runs,
		llm:         opts.LLM,
		templates:   opts.Templates,
		logger:      opts.Logger,
		clock:       opts.Clock,
		runsWritten: runsWritten,
	}
}

// PlanResult is what the plan generator reports back to its caller.
type PlanResult struct {
	DateLine      string
	Meals         []string
	Encouragement string
}

// Generate runs the full plan pipeline and appends exactly one run record:
// an OK run on success, a best-effort ERROR run on any failure past the
// empty-inventory precondition. It never touches existing runs.
func (p *Planner) Generate(ctx context.Context) (PlanResult, error) {
	ctx, span := otel.Tracer(dinneragent.TracerNamePlanner).Start(ctx, "Planner.Generate")
	defer span.End()

	inv := dinneragent.InvocationLog{Pipeline: "generate-dinner", Timestamp: p.clock()}

	result, err := p.generate(ctx, &inv)
	if err != nil {
		inv.Status = string(dinneragent.RunStatusError)
		inv.Error = err.Error()
		p.logInvocation(inv)

		// Empty inventory is a precondition failure, not a run worth
		// recording.
		if !errors.Is(err, dinneragent.ErrNoItemsInStock) {
			p.writeErrorRun(ctx, err)
		}
		return PlanResult{}, err
	}

	inv.Status = string(dinneragent.RunStatusOK)
	p.logInvocation(inv)
	return result, nil
}

func (p *Planner) generate(ctx context.Context, inv *dinneragent.InvocationLog) (PlanResult, error) {
	items, err := p.inventory.InStock(ctx)
	if err != nil {
		return PlanResult{}, fmt.Errorf("load inventory: %w", err)
	}
	if len(items) == 0 {
		return PlanResult{}, dinneragent.ErrNoItemsInStock
	}
	slog.Info("PLANNER: Inventory loaded", "items", len(items))

	template, err := p.templates.Load(ctx)
	if err != nil {
		return PlanResult{}, fmt.Errorf("load prompt template: %w", err)
	}

	prompt := BuildPrompt(template, FormatInventory(items))
	inv.PromptSize = len(prompt)

	reply, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		return PlanResult{}, fmt.Errorf("completion call: %w", err)
	}
	inv.ReplySize = len(reply)
	slog.Info("PLANNER: Completion received", "reply_len", len(reply))

	parsed, err := ParseResponse(reply)
	if err != nil {
		return PlanResult{}, err
	}

	run := dinneragent.Run{
		Title:         p.runTitle(),
		Status:        dinneragent.RunStatusOK,
		DateLine:      parsed.DateLine,
		Meal1:         parsed.Meal1,
		Meal2:         parsed.Meal2,
		Meal3:         parsed.Meal3,
		Encouragement: parsed.Encouragement,
		RawJSON:       parsed.RawJSON,
	}
	if err := p.runs.Create(ctx, run); err != nil {
		return PlanResult{}, fmt.Errorf("persist run: %w", err)
	}
	p.countRun(ctx, dinneragent.RunStatusOK)
	slog.Info("PLANNER: Run persisted", "title", run.Title, "meals", len(parsed.Plan.Meals))

	return PlanResult{
		DateLine:      parsed.DateLine,
		Meals:         []string{parsed.Meal1, parsed.Meal2, parsed.Meal3},
		Encouragement: parsed.Encouragement,
	}, nil
}

// writeErrorRun appends an ERROR run so failures are visible in the run log.
// It is best-effort: a secondary storage failure is logged and swallowed so
// the original error always wins.
func (p *Planner) writeErrorRun(ctx context.Context, cause error) {
	run := dinneragent.Run{
		Title:         p.runTitle() + " [ERROR]",
		Status:        dinneragent.RunStatusError,
		Encouragement: "Oops — " + cause.Error(),
	}
	if err := p.runs.Create(ctx, run); err != nil {
		slog.Warn("PLANNER: Failed to write error run", "error", err, "cause", cause)
		return
	}
	p.countRun(ctx, dinneragent.RunStatusError)
}

func (p *Planner) runTitle() string {
	return "Run – " + p.clock().UTC().Format("2006-01-02 15:04")
}

func (p *Planner) countRun(ctx context.Context, status dinneragent.RunStatus) {
	if p.runsWritten == nil {
		return
	}
	p.runsWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
}

func (p *Planner) logInvocation(inv dinneragent.InvocationLog) {
	if err := p.logger.LogInvocation(inv); err != nil {
		slog.Error("PLANNER: Failed to log invocation", "error", err)
	}
}
