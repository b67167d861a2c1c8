// Where: internal/publisher/ports.go
// What: Storage ports used by the publisher.
// Why: Keep AWS SDK types out of the publish flow so it can be faked.
package publisher

import "context"

// S3API is the object storage surface used to upload reports.
type S3API interface {
	ListBuckets(ctx context.Context) ([]string, error)
	CreateBucket(ctx context.Context, name string) error
	PutObject(ctx context.Context, input ObjectInput) error
}

// HistoryAPI records one item per published scan.
type HistoryAPI interface {
	PutItem(ctx context.Context, table string, item HistoryItem) error
}

// ClientFactory builds storage clients for a target.
type ClientFactory interface {
	S3(ctx context.Context, target Target) (S3API, error)
	History(ctx context.Context, target Target) (HistoryAPI, error)
}

// ObjectInput describes one object upload.
type ObjectInput struct {
	Bucket      string
	Key         string
	ContentType string
	Body        []byte
}

// HistoryItem is the scan-history record written to DynamoDB.
type HistoryItem struct {
	Project         string
	GeneratedAt     string
	ObjectKey       string
	CommandCount    int
	DiagnosticCount int
}
