// Where: internal/publisher/aws_clients.go
// What: AWS SDK adapters for S3 and DynamoDB.
// Why: Map publisher ports to SDK calls.
package publisher

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type awsS3Client struct {
	client *s3.Client
}

func (c awsS3Client) ListBuckets(ctx context.Context) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	resp, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Buckets))
	for _, bucket := range resp.Buckets {
		names = append(names, aws.ToString(bucket.Name))
	}
	return names, nil
}

func (c awsS3Client) CreateBucket(ctx context.Context, name string) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(name)})
	return err
}

func (c awsS3Client) PutObject(ctx context.Context, input ObjectInput) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(input.Bucket),
		Key:           aws.String(input.Key),
		ContentType:   aws.String(input.ContentType),
		ContentLength: aws.Int64(int64(len(input.Body))),
		Body:          bytes.NewReader(input.Body),
	})
	return err
}

type awsDynamoClient struct {
	client *dynamodb.Client
}

func (c awsDynamoClient) PutItem(ctx context.Context, table string, item HistoryItem) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      historyAttributes(item),
	})
	return err
}

func historyAttributes(item HistoryItem) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"project":          &types.AttributeValueMemberS{Value: item.Project},
		"generated_at":     &types.AttributeValueMemberS{Value: item.GeneratedAt},
		"object_key":       &types.AttributeValueMemberS{Value: item.ObjectKey},
		"command_count":    &types.AttributeValueMemberN{Value: strconv.Itoa(item.CommandCount)},
		"diagnostic_count": &types.AttributeValueMemberN{Value: strconv.Itoa(item.DiagnosticCount)},
	}
}
