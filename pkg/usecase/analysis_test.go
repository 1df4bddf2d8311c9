package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
	"github.com/fintel-lab/pentarisk/pkg/repository/memory"
	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
	"github.com/fintel-lab/pentarisk/pkg/usecase"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"Summary: nothing notable\nImpact Score: 0.1"}}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// inputText joins the text parts of a GenerateContent input
func inputText(input ...gollem.Input) string {
	var parts []string
	for _, in := range input {
		if txt, ok := in.(gollem.Text); ok {
			parts = append(parts, string(txt))
		}
	}
	return strings.Join(parts, "\n")
}

var categoryScores = map[types.RiskCategory]float64{
	types.CategoryMarket:      0.8,
	types.CategoryCredit:      0.6,
	types.CategoryLiquidity:   0.4,
	types.CategoryOperational: 0.9,
	types.CategoryRegulatory:  0.5,
}

// synthesisOutput mimics a well-behaved supervisor response for the
// categoryScores above
func synthesisOutput() string {
	var sb strings.Builder
	for i, category := range types.Categories() {
		fmt.Fprintf(&sb, "%d. The %s outlook is driven by recent events.\n", i+1, category.Label())
	}
	sb.WriteString("\n| Risk Name | Impact Score |\n")
	for _, category := range types.Categories() {
		fmt.Fprintf(&sb, "| %s | %.1f |\n", category.Label(), categoryScores[category])
	}
	sb.WriteString("\nFinal Risk Score: 0.64\n")
	return sb.String()
}

// scriptedLLMClient answers category agent tasks with per-category scores
// and the synthesis task with synthesisOutput
func scriptedLLMClient(failCategory types.RiskCategory) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					text := inputText(input...)

					// The synthesis agent receives the category results as JSON
					if strings.HasPrefix(strings.TrimSpace(text), "[") {
						return &gollem.Response{Texts: []string{synthesisOutput()}}, nil
					}

					for category, score := range categoryScores {
						if strings.Contains(text, category.Label()) {
							if category == failCategory {
								return nil, goerr.New("model overloaded")
							}
							out := fmt.Sprintf("Summary: %s signals detected.\nImpact Score: %.1f",
								category.Label(), score)
							return &gollem.Response{Texts: []string{out}}, nil
						}
					}

					return nil, goerr.New("unexpected task: " + text)
				},
			}, nil
		},
	}
}

func TestAnalysisUseCase_Analyze(t *testing.T) {
	repo := memory.New()
	tracker := ratelimit.New()
	uc := usecase.New(repo, scriptedLLMClient(""), usecase.WithTracker(tracker))

	result, err := uc.Analysis.Analyze(context.Background(), model.Target{
		Company: "UBS Group AG",
		Ticker:  "UBS",
	})
	gt.NoError(t, err).Required()

	gt.NoError(t, result.Validate())
	gt.Array(t, result.Risks).Length(5)
	gt.Value(t, result.FinalRiskScore).Equal(types.Score(0.64))

	for i, category := range types.Categories() {
		gt.Value(t, result.Risks[i].Name).Equal(category)
		gt.Value(t, result.Risks[i].ImpactScore).Equal(types.Score(categoryScores[category]))
		gt.S(t, result.Risks[i].Summary).Contains(category.Label())
	}

	// Five category agents plus one synthesis agent
	gt.Value(t, tracker.Count("gemini")).Equal(6)
}

func TestAnalysisUseCase_CategoryFailureDegrades(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo, scriptedLLMClient(types.CategoryCredit))

	result, err := uc.Analysis.Analyze(context.Background(), model.Target{
		Company: "UBS Group AG",
	})
	gt.NoError(t, err).Required()

	gt.NoError(t, result.Validate())
	gt.Array(t, result.Risks).Length(5)
	// The synthesis output still carries a table, so scores come from it
	gt.Value(t, result.FinalRiskScore).Equal(types.Score(0.64))
}

func TestAnalysisUseCase_SynthesisFailure(t *testing.T) {
	client := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					text := inputText(input...)
					if strings.HasPrefix(strings.TrimSpace(text), "[") {
						return nil, goerr.New("model overloaded")
					}
					return &gollem.Response{Texts: []string{"Summary: fine\nImpact Score: 0.1"}}, nil
				},
			}, nil
		},
	}

	uc := usecase.New(memory.New(), client)
	_, err := uc.Analysis.Analyze(context.Background(), model.Target{Company: "UBS Group AG"})
	gt.Error(t, err)
}

func TestAnalysisUseCase_RunReport(t *testing.T) {
	repo := memory.New()
	notifier := &mockNotifier{}
	archiver := &mockArchiver{}
	uc := usecase.New(repo, scriptedLLMClient(""),
		usecase.WithNotifier(notifier),
		usecase.WithArchiver(archiver),
	)
	ctx := context.Background()

	rep, err := uc.Analysis.StartAnalysis(ctx, model.Target{
		Company: "UBS Group AG",
		Ticker:  "UBS",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, rep.Status).Equal(types.RunStatusRunning)

	gt.NoError(t, uc.Analysis.RunReport(ctx, rep.ID)).Required()

	stored, err := repo.Report().Get(ctx, rep.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.Status).Equal(types.RunStatusCompleted)
	gt.Value(t, stored.Result.FinalRiskScore).Equal(types.Score(0.64))

	gt.Array(t, notifier.notified).Length(1)
	gt.Value(t, notifier.notified[0].ID).Equal(rep.ID)
	gt.Array(t, archiver.archived).Length(1)
}

func TestAnalysisUseCase_RunReportFailure(t *testing.T) {
	repo := memory.New()
	client := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return nil, goerr.New("model overloaded")
				},
			}, nil
		},
	}
	uc := usecase.New(repo, client)
	ctx := context.Background()

	rep, err := uc.Analysis.StartAnalysis(ctx, model.Target{Company: "UBS Group AG"})
	gt.NoError(t, err).Required()
	gt.Error(t, uc.Analysis.RunReport(ctx, rep.ID))

	stored, err := repo.Report().Get(ctx, rep.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.Status).Equal(types.RunStatusFailed)
	gt.S(t, stored.Error).Contains("overloaded")
}

func TestAnalysisUseCase_StartAnalysisRequiresCompany(t *testing.T) {
	uc := usecase.New(memory.New(), &mockLLMClient{})
	_, err := uc.Analysis.StartAnalysis(context.Background(), model.Target{})
	gt.Error(t, err)
}

func TestAnalysisUseCase_RunReportUnknownID(t *testing.T) {
	uc := usecase.New(memory.New(), &mockLLMClient{})
	gt.Error(t, uc.Analysis.RunReport(context.Background(), types.NewReportID()))
}

// ----- mock notifier / archiver -----

type mockNotifier struct {
	notified []*model.Report
}

func (m *mockNotifier) NotifyReport(ctx context.Context, report *model.Report) error {
	m.notified = append(m.notified, report)
	return nil
}

type mockArchiver struct {
	archived []*model.Report
}

func (m *mockArchiver) Archive(ctx context.Context, report *model.Report) (string, error) {
	m.archived = append(m.archived, report)
	return "gs://test-bucket/reports/" + report.ID.String() + ".json", nil
}
