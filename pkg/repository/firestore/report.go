package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

type categoryResultDocument struct {
	Category    string  `firestore:"category"`
	Label       string  `firestore:"label"`
	Summary     string  `firestore:"summary"`
	ImpactScore float64 `firestore:"impact_score"`
}

type resultDocument struct {
	Risks          []categoryResultDocument `firestore:"risks"`
	FinalRiskScore float64                  `firestore:"final_risk_score"`
}

type reportDocument struct {
	ID        string          `firestore:"id"`
	Company   string          `firestore:"company"`
	Ticker    string          `firestore:"ticker"`
	Status    string          `firestore:"status"`
	Result    *resultDocument `firestore:"result"`
	Error     string          `firestore:"error"`
	CreatedAt time.Time       `firestore:"created_at"`
	UpdatedAt time.Time       `firestore:"updated_at"`
}

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *reportRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_reports"
	}
	return "reports"
}

func toDocument(report *model.Report) *reportDocument {
	doc := &reportDocument{
		ID:        report.ID.String(),
		Company:   report.Target.Company,
		Ticker:    report.Target.Ticker,
		Status:    string(report.Status),
		Error:     report.Error,
		CreatedAt: report.CreatedAt,
		UpdatedAt: report.UpdatedAt,
	}

	if report.Result != nil {
		result := &resultDocument{
			FinalRiskScore: report.Result.FinalRiskScore.Float(),
		}
		for _, risk := range report.Result.Risks {
			result.Risks = append(result.Risks, categoryResultDocument{
				Category:    risk.Name.String(),
				Label:       risk.Label,
				Summary:     risk.Summary,
				ImpactScore: risk.ImpactScore.Float(),
			})
		}
		doc.Result = result
	}

	return doc
}

func toModel(doc *reportDocument) *model.Report {
	report := &model.Report{
		ID: types.ReportID(doc.ID),
		Target: model.Target{
			Company: doc.Company,
			Ticker:  doc.Ticker,
		},
		Status:    types.RunStatus(doc.Status),
		Error:     doc.Error,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}

	if doc.Result != nil {
		result := &model.AggregateResult{
			FinalRiskScore: types.Score(doc.Result.FinalRiskScore),
		}
		for _, risk := range doc.Result.Risks {
			result.Risks = append(result.Risks, model.CategoryResult{
				Name:        types.RiskCategory(risk.Category),
				Label:       risk.Label,
				Summary:     risk.Summary,
				ImpactScore: types.Score(risk.ImpactScore),
			})
		}
		report.Result = result
	}

	return report
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	docRef := r.client.Collection(r.collection()).Doc(report.ID.String())
	if _, err := docRef.Create(ctx, toDocument(report)); err != nil {
		return goerr.Wrap(err, "failed to create report", goerr.V("id", report.ID))
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	var reportDoc reportDocument
	if err := doc.DataTo(&reportDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("id", id))
	}

	return toModel(&reportDoc), nil
}

func (r *reportRepository) List(ctx context.Context) ([]*model.Report, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var reports []*model.Report
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate reports")
		}

		var reportDoc reportDocument
		if err := doc.DataTo(&reportDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("doc", doc.Ref.ID))
		}
		reports = append(reports, toModel(&reportDoc))
	}

	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, report *model.Report) error {
	docRef := r.client.Collection(r.collection()).Doc(report.ID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.New("report not found", goerr.V("id", report.ID))
		}
		return goerr.Wrap(err, "failed to get report", goerr.V("id", report.ID))
	}

	if _, err := docRef.Set(ctx, toDocument(report)); err != nil {
		return goerr.Wrap(err, "failed to update report", goerr.V("id", report.ID))
	}

	return nil
}
