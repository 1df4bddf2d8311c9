package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"golang.org/x/sync/errgroup"

	"github.com/fintel-lab/pentarisk/pkg/domain/interfaces"
	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
	"github.com/fintel-lab/pentarisk/pkg/service/archive"
	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
	"github.com/fintel-lab/pentarisk/pkg/service/report"
	"github.com/fintel-lab/pentarisk/pkg/service/slack"
	"github.com/fintel-lab/pentarisk/pkg/utils/logging"
)

//go:embed prompt/category_system.md
var categorySystemPromptTmpl string

//go:embed prompt/synthesis_system.md
var synthesisSystemPromptTmpl string

var promptFuncs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"inc":   func(i int) int { return i + 1 },
}

var (
	categorySystemPrompt = template.Must(
		template.New("category_system").Funcs(promptFuncs).Parse(categorySystemPromptTmpl))
	synthesisSystemPrompt = template.Must(
		template.New("synthesis_system").Funcs(promptFuncs).Parse(synthesisSystemPromptTmpl))
)

// llmServiceName is the tracker key for model API calls
const llmServiceName = "gemini"

// AnalysisUseCase runs the multi-agent risk analysis: five category agents
// in parallel, a synthesis agent over their reports, and post-processing of
// the synthesis output into an AggregateResult.
type AnalysisUseCase struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient
	tools     []gollem.Tool
	profile   *model.RiskProfile
	notifier  slack.Service
	archiver  archive.Service
	tracker   *ratelimit.Tracker
}

// NewAnalysisUseCase creates a new AnalysisUseCase instance. notifier,
// archiver, and tracker are optional and may be nil.
func NewAnalysisUseCase(
	repo interfaces.Repository,
	llmClient gollem.LLMClient,
	tools []gollem.Tool,
	profile *model.RiskProfile,
	notifier slack.Service,
	archiver archive.Service,
	tracker *ratelimit.Tracker,
) *AnalysisUseCase {
	if profile == nil {
		profile = model.DefaultRiskProfile()
	}
	return &AnalysisUseCase{
		repo:      repo,
		llmClient: llmClient,
		tools:     tools,
		profile:   profile,
		notifier:  notifier,
		archiver:  archiver,
		tracker:   tracker,
	}
}

// StartAnalysis creates a report in the running state. The actual analysis
// is executed separately via RunReport.
func (uc *AnalysisUseCase) StartAnalysis(ctx context.Context, target model.Target) (*model.Report, error) {
	if target.Company == "" {
		return nil, goerr.New("target company is required")
	}

	rep := model.NewReport(target)
	if err := uc.repo.Report().Create(ctx, rep); err != nil {
		return nil, goerr.Wrap(err, "failed to create report")
	}

	return rep, nil
}

// RunReport executes the analysis for a previously created report and
// persists the outcome. A failed run marks the report as failed; the
// error is returned either way.
func (uc *AnalysisUseCase) RunReport(ctx context.Context, id types.ReportID) error {
	logger := logging.From(ctx)

	rep, err := uc.repo.Report().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get report", goerr.V("reportID", id))
	}
	if rep == nil {
		return goerr.New("report not found", goerr.V("reportID", id))
	}

	result, err := uc.Analyze(ctx, rep.Target)
	if err != nil {
		failed := rep.Fail(err.Error())
		if uerr := uc.repo.Report().Update(ctx, failed); uerr != nil {
			logger.Error("failed to mark report as failed",
				"report_id", id, "error", uerr.Error())
		}
		return goerr.Wrap(err, "analysis failed", goerr.V("reportID", id))
	}

	completed := rep.Complete(result)
	if err := uc.repo.Report().Update(ctx, completed); err != nil {
		return goerr.Wrap(err, "failed to store result", goerr.V("reportID", id))
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyReport(ctx, completed); err != nil {
			logger.Error("failed to notify report", "report_id", id, "error", err.Error())
		}
	}

	if uc.archiver != nil {
		path, err := uc.archiver.Archive(ctx, completed)
		if err != nil {
			logger.Error("failed to archive report", "report_id", id, "error", err.Error())
		} else {
			logger.Info("report archived", "report_id", id, "path", path)
		}
	}

	return nil
}

// Analyze runs the full analysis for a target and returns the aggregate
// result without touching the repository.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, target model.Target) (*model.AggregateResult, error) {
	logger := logging.From(ctx)
	categories := types.Categories()

	results := make([]model.CategoryResult, len(categories))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, category := range categories {
		eg.Go(func() error {
			res, err := uc.analyzeCategory(egCtx, target, category)
			if err != nil {
				// A failed category agent degrades to a zero score
				// instead of failing the whole run.
				logger.Error("category analysis failed",
					"category", category, "error", err.Error())
				res = model.NewCategoryResult(category, "", 0)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "category analysis aborted")
	}

	synthesis, err := uc.synthesize(ctx, target, results)
	if err != nil {
		return nil, goerr.Wrap(err, "synthesis failed")
	}

	fallback := make(map[types.RiskCategory]model.CategoryResult, len(results))
	for _, res := range results {
		fallback[res.Name] = res
	}

	result := report.Aggregate(synthesis, fallback)
	if err := result.Validate(); err != nil {
		return nil, goerr.Wrap(err, "aggregation produced an invalid result")
	}

	logger.Info("analysis completed",
		"company", target.Company, "final_risk_score", result.FinalRiskScore)

	return result, nil
}

// categoryPromptData holds all data for the category system prompt template
type categoryPromptData struct {
	Company    string
	Ticker     string
	Label      string
	Parameters []string
	Keywords   []model.Keyword
}

func (uc *AnalysisUseCase) analyzeCategory(ctx context.Context, target model.Target, category types.RiskCategory) (model.CategoryResult, error) {
	profile := uc.profile.For(category)

	var buf bytes.Buffer
	data := categoryPromptData{
		Company:    target.Company,
		Ticker:     target.Ticker,
		Label:      category.Label(),
		Parameters: profile.Parameters,
		Keywords:   profile.Keywords,
	}
	if err := categorySystemPrompt.Execute(&buf, data); err != nil {
		return model.CategoryResult{}, goerr.Wrap(err, "failed to render category prompt",
			goerr.V("category", category))
	}

	agent := gollem.New(uc.llmClient,
		gollem.WithSystemPrompt(buf.String()),
		gollem.WithTools(uc.tools...),
	)

	if uc.tracker != nil {
		uc.tracker.LogCall(llmServiceName)
	}

	task := fmt.Sprintf("Analyze the current %s exposure of %s.", category.Label(), target.Company)
	resp, err := agent.Execute(ctx, gollem.Text(task))
	if err != nil {
		return model.CategoryResult{}, goerr.Wrap(err, "agent execution failed",
			goerr.V("category", category))
	}

	summary, score := report.Extract(strings.Join(resp.Texts, "\n"))
	summary = report.Truncate(summary, report.DefaultMaxSummaryChars)

	return model.NewCategoryResult(category, summary, score), nil
}

// synthesisPromptData holds all data for the synthesis system prompt template
type synthesisPromptData struct {
	Company string
	Labels  []string
}

func (uc *AnalysisUseCase) synthesize(ctx context.Context, target model.Target, results []model.CategoryResult) (string, error) {
	labels := make([]string, 0, len(results))
	for _, res := range results {
		labels = append(labels, res.Label)
	}

	var buf bytes.Buffer
	data := synthesisPromptData{Company: target.Company, Labels: labels}
	if err := synthesisSystemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render synthesis prompt")
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal category results")
	}

	agent := gollem.New(uc.llmClient, gollem.WithSystemPrompt(buf.String()))

	if uc.tracker != nil {
		uc.tracker.LogCall(llmServiceName)
	}

	resp, err := agent.Execute(ctx, gollem.Text(string(payload)))
	if err != nil {
		return "", goerr.Wrap(err, "synthesis agent execution failed")
	}

	return strings.Join(resp.Texts, "\n"), nil
}
