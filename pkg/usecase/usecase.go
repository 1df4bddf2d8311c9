package usecase

import (
	"github.com/m-mizutani/gollem"

	"github.com/fintel-lab/pentarisk/pkg/domain/interfaces"
	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/service/archive"
	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
	"github.com/fintel-lab/pentarisk/pkg/service/slack"
)

type UseCases struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient
	tools     []gollem.Tool
	profile   *model.RiskProfile
	notifier  slack.Service
	archiver  archive.Service
	tracker   *ratelimit.Tracker

	Analysis *AnalysisUseCase
}

type Option func(*UseCases)

// WithTools sets the data-gathering tools available to the category agents
func WithTools(tools []gollem.Tool) Option {
	return func(uc *UseCases) {
		uc.tools = tools
	}
}

// WithProfile overrides the built-in risk research profile
func WithProfile(profile *model.RiskProfile) Option {
	return func(uc *UseCases) {
		uc.profile = profile
	}
}

// WithNotifier enables Slack notification of completed reports
func WithNotifier(notifier slack.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

// WithArchiver enables report archival to object storage
func WithArchiver(archiver archive.Service) Option {
	return func(uc *UseCases) {
		uc.archiver = archiver
	}
}

// WithTracker records model and tool API calls for rate observation
func WithTracker(tracker *ratelimit.Tracker) Option {
	return func(uc *UseCases) {
		uc.tracker = tracker
	}
}

func New(repo interfaces.Repository, llmClient gollem.LLMClient, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		llmClient: llmClient,
		profile:   model.DefaultRiskProfile(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Analysis = NewAnalysisUseCase(uc.repo, uc.llmClient, uc.tools, uc.profile,
		uc.notifier, uc.archiver, uc.tracker)

	return uc
}

// Repository exposes the underlying repository for read paths
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}
