package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/poruru-code/domd/internal/publisher"
)

type recordingS3 struct {
	puts []publisher.ObjectInput
}

func (r *recordingS3) ListBuckets(_ context.Context) ([]string, error) { return nil, nil }

func (r *recordingS3) CreateBucket(_ context.Context, _ string) error { return nil }

func (r *recordingS3) PutObject(_ context.Context, input publisher.ObjectInput) error {
	r.puts = append(r.puts, input)
	return nil
}

type recordingHistory struct {
	items []publisher.HistoryItem
}

func (r *recordingHistory) PutItem(_ context.Context, _ string, item publisher.HistoryItem) error {
	r.items = append(r.items, item)
	return nil
}

type recordingFactory struct {
	s3      *recordingS3
	history *recordingHistory
	target  publisher.Target
}

func (f *recordingFactory) S3(_ context.Context, target publisher.Target) (publisher.S3API, error) {
	f.target = target
	return f.s3, nil
}

func (f *recordingFactory) History(_ context.Context, _ publisher.Target) (publisher.HistoryAPI, error) {
	return f.history, nil
}

func TestRunPublish(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, map[string]string{
		"domd.yaml":      "publish:\n  bucket: from-config\n  table: history\n  region: eu-west-1\n",
		"web/Dockerfile": "FROM nginx\n",
	})
	factory := &recordingFactory{s3: &recordingS3{}, history: &recordingHistory{}}

	var out bytes.Buffer
	deps := testDeps(root, &out)
	deps.Publish = PublishDeps{Factory: factory}

	exitCode := Run([]string{"publish", "--bucket", "from-flag", "--endpoint", "http://localhost:9000"}, deps)
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if factory.target.Bucket != "from-flag" || factory.target.Region != "eu-west-1" {
		t.Fatalf("unexpected target: %+v", factory.target)
	}
	if factory.target.Endpoint != "http://localhost:9000" || factory.target.Prefix != "domd" {
		t.Fatalf("unexpected target: %+v", factory.target)
	}
	if len(factory.s3.puts) != 1 || len(factory.history.items) != 1 {
		t.Fatalf("expected one object and one history item")
	}
	if factory.history.items[0].CommandCount != 3 {
		t.Fatalf("expected 3 commands recorded, got %d", factory.history.items[0].CommandCount)
	}
	if !strings.Contains(out.String(), "✅ Published s3://from-flag/domd/") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunPublishRequiresBucket(t *testing.T) {
	clearEnv(t)
	root := writeProject(t, map[string]string{"Dockerfile": "FROM nginx\n"})
	factory := &recordingFactory{s3: &recordingS3{}, history: &recordingHistory{}}

	var out bytes.Buffer
	deps := testDeps(root, &out)
	deps.Publish = PublishDeps{Factory: factory}

	if exitCode := Run([]string{"publish"}, deps); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "bucket is required") {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if len(factory.s3.puts) != 0 {
		t.Fatalf("expected no upload")
	}
}
