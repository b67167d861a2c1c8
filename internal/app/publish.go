// Where: internal/app/publish.go
// What: publish command implementation.
// Why: Upload a scan report to S3 and record it in DynamoDB.
package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/poruru-code/domd/internal/publisher"
	"github.com/poruru-code/domd/internal/ui"
)

// PublishDeps holds the storage client factory.
type PublishDeps struct {
	Factory publisher.ClientFactory
}

type PublishCmd struct {
	Path         string   `arg:"" optional:"" help:"Project directory (default: current directory)"`
	Bucket       string   `help:"Destination S3 bucket"`
	Prefix       string   `help:"Object key prefix"`
	Table        string   `help:"DynamoDB table for scan history"`
	Endpoint     string   `help:"Custom S3/DynamoDB endpoint URL"`
	Region       string   `help:"AWS region"`
	CreateBucket bool     `name:"create-bucket" help:"Create the bucket when missing"`
	Parser       []string `short:"p" name:"parser" help:"Only run the named parser (repeatable)"`
	Exclude      []string `short:"x" help:"Extra exclude pattern (repeatable)"`
}

func runPublish(cli CLI, deps Dependencies, out io.Writer) int {
	cmd := cli.Publish
	ctxInfo, err := resolveCommandContext(cli, cmd.Path, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	target := publishTarget(cmd, ctxInfo)
	if target.Bucket == "" {
		return exitWithError(out, fmt.Errorf("bucket is required (use --bucket or DOMD_S3_BUCKET)"))
	}

	factory := deps.Publish.Factory
	if factory == nil {
		factory = publisher.NewAWSClientFactory()
	}

	scanner, err := newScanner(ctxInfo, deps, cmd.Parser, cmd.Exclude)
	if err != nil {
		return exitWithError(out, err)
	}
	rep, err := scanner.Scan(deps.Context, ctxInfo.ProjectDir)
	if err != nil {
		return exitWithError(out, fmt.Errorf("scan %s: %w", ctxInfo.ProjectDir, err))
	}

	receipt, err := publisher.Publisher{Factory: factory, Logger: ctxInfo.Logger}.Publish(deps.Context, rep, target)
	if err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	console.Success(fmt.Sprintf("Published s3://%s/%s", receipt.Bucket, receipt.Key))
	console.Item("Commands", receipt.Commands)
	console.Item("Diagnostics", receipt.Warnings)
	if receipt.Recorded {
		console.Item("History", receipt.Table)
	}
	return 0
}

// publishTarget layers flags over the resolved config.
func publishTarget(cmd PublishCmd, ctxInfo commandContext) publisher.Target {
	cfg := ctxInfo.Config.Publish
	pick := func(flag, fallback string) string {
		if value := strings.TrimSpace(flag); value != "" {
			return value
		}
		return strings.TrimSpace(fallback)
	}
	return publisher.Target{
		Bucket:       pick(cmd.Bucket, cfg.Bucket),
		Prefix:       pick(cmd.Prefix, cfg.Prefix),
		Table:        pick(cmd.Table, cfg.Table),
		Endpoint:     pick(cmd.Endpoint, cfg.Endpoint),
		Region:       pick(cmd.Region, cfg.Region),
		CreateBucket: cmd.CreateBucket,
	}
}
