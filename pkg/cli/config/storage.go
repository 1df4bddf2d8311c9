package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintel-lab/pentarisk/pkg/service/archive"
)

// Storage holds configuration for report archival to Cloud Storage
type Storage struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket for report archival (empty disables archival)",
			Category:    "Archive",
			Sources:     cli.EnvVars("PENTARISK_ARCHIVE_BUCKET"),
			Destination: &s.bucket,
		},
		&cli.StringFlag{
			Name:        "archive-prefix",
			Usage:       "Object name prefix for archived reports",
			Value:       "reports",
			Category:    "Archive",
			Sources:     cli.EnvVars("PENTARISK_ARCHIVE_PREFIX"),
			Destination: &s.prefix,
		},
	}
}

// Configure creates the archive service. Returns nil when no bucket is set.
func (s *Storage) Configure(ctx context.Context) (archive.Service, error) {
	if s.bucket == "" {
		return nil, nil
	}

	svc, err := archive.NewGCS(ctx, s.bucket, s.prefix)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize archive service")
	}
	return svc, nil
}
