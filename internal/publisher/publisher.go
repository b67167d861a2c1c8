// Where: internal/publisher/publisher.go
// What: Upload scan reports to S3 and record them in DynamoDB.
// Why: Let CI keep a history of candidate commands per project.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/discovery"
	"github.com/poruru-code/domd/internal/logging"
	"github.com/poruru-code/domd/internal/report"
)

const (
	contentTypeJSON = "application/json"
	keyTimeLayout   = "20060102T150405Z"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Target is where a report is published.
type Target struct {
	Bucket   string
	Prefix   string
	Table    string
	Endpoint string
	Region   string
	// CreateBucket creates the bucket when it is missing, for local
	// S3-compatible endpoints.
	CreateBucket bool
}

// Receipt describes a completed publish.
type Receipt struct {
	Bucket   string
	Key      string
	Table    string
	Recorded bool
	Commands int
	Warnings int
}

// Publisher uploads reports through a client factory.
type Publisher struct {
	Factory ClientFactory
	Logger  *log.Logger
}

// Publish uploads rep as JSON and, when a table is set, writes a history item.
func (p Publisher) Publish(ctx context.Context, rep discovery.Report, target Target) (Receipt, error) {
	if p.Factory == nil {
		return Receipt{}, errors.New("client factory is required")
	}
	bucket := strings.TrimSpace(target.Bucket)
	if bucket == "" {
		return Receipt{}, errors.New("bucket is required")
	}
	logger := p.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	body, err := report.Marshal(rep)
	if err != nil {
		return Receipt{}, fmt.Errorf("encode report: %w", err)
	}

	s3Client, err := p.Factory.S3(ctx, target)
	if err != nil {
		return Receipt{}, fmt.Errorf("create s3 client: %w", err)
	}
	if target.CreateBucket {
		if err := ensureBucket(ctx, s3Client, bucket); err != nil {
			return Receipt{}, err
		}
	}

	key := ObjectKey(target.Prefix, rep)
	if err := s3Client.PutObject(ctx, ObjectInput{
		Bucket:      bucket,
		Key:         key,
		ContentType: contentTypeJSON,
		Body:        body,
	}); err != nil {
		return Receipt{}, fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}
	logger.Info("uploaded report", "bucket", bucket, "key", key)

	receipt := Receipt{
		Bucket:   bucket,
		Key:      key,
		Commands: len(rep.Commands()),
		Warnings: len(rep.AllDiagnostics()),
	}

	table := strings.TrimSpace(target.Table)
	if table == "" {
		return receipt, nil
	}
	history, err := p.Factory.History(ctx, target)
	if err != nil {
		return receipt, fmt.Errorf("create dynamodb client: %w", err)
	}
	item := HistoryItem{
		Project:         ProjectName(rep.ProjectRoot),
		GeneratedAt:     rep.GeneratedAt.UTC().Format(time.RFC3339),
		ObjectKey:       key,
		CommandCount:    receipt.Commands,
		DiagnosticCount: receipt.Warnings,
	}
	if err := history.PutItem(ctx, table, item); err != nil {
		return receipt, fmt.Errorf("record history in %s: %w", table, err)
	}
	logger.Info("recorded scan history", "table", table, "project", item.Project)
	receipt.Table = table
	receipt.Recorded = true
	return receipt, nil
}

func ensureBucket(ctx context.Context, client S3API, bucket string) error {
	names, err := client.ListBuckets(ctx)
	if err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	for _, name := range names {
		if name == bucket {
			return nil
		}
	}
	if err := client.CreateBucket(ctx, bucket); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// ProjectName derives a key-safe project name from the project root.
func ProjectName(root string) string {
	name := unsafeKeyChars.ReplaceAllString(filepath.Base(filepath.Clean(root)), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "project"
	}
	return name
}

// ObjectKey returns <prefix>/<project>/<timestamp>.json.
func ObjectKey(prefix string, rep discovery.Report) string {
	generated := rep.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	name := generated.UTC().Format(keyTimeLayout) + ".json"
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	return path.Join(prefix, ProjectName(rep.ProjectRoot), name)
}
