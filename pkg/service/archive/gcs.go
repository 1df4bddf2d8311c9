// Package archive stores serialized analysis reports in object storage.
package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
)

// Service archives completed reports
type Service interface {
	// Archive stores the serialized report and returns the object path
	Archive(ctx context.Context, report *model.Report) (string, error)
}

// gcsService implements Service on a Google Cloud Storage bucket
type gcsService struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS creates an archive service writing to the given GCS bucket.
// Objects are named <prefix>/<report ID>.json.
func NewGCS(ctx context.Context, bucket, prefix string) (Service, error) {
	if bucket == "" {
		return nil, goerr.New("GCS bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client", goerr.V("bucket", bucket))
	}

	return &gcsService{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Archive stores the serialized report and returns the object path
func (s *gcsService) Archive(ctx context.Context, report *model.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal report", goerr.V("reportID", report.ID))
	}

	name := fmt.Sprintf("%s.json", report.ID)
	if s.prefix != "" {
		name = s.prefix + "/" + name
	}

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write report object",
			goerr.V("bucket", s.bucket), goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize report object",
			goerr.V("bucket", s.bucket), goerr.V("object", name))
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, name), nil
}
