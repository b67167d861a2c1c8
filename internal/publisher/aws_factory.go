// Where: internal/publisher/aws_factory.go
// What: AWS client factory for S3 uploads and DynamoDB history.
// Why: Encapsulate SDK configuration, including local endpoints.
package publisher

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru-code/domd/internal/envutil"
)

const defaultAWSRegion = "us-east-1"

// NewAWSClientFactory returns the SDK-backed factory.
func NewAWSClientFactory() ClientFactory {
	return awsClientFactory{}
}

type awsClientFactory struct{}

func (awsClientFactory) S3(ctx context.Context, target Target) (S3API, error) {
	cfg, err := loadAWSConfig(ctx, target.Region)
	if err != nil {
		return nil, err
	}
	endpoint := strings.TrimSpace(target.Endpoint)
	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
	return awsS3Client{client: client}, nil
}

func (awsClientFactory) History(ctx context.Context, target Target) (HistoryAPI, error) {
	cfg, err := loadAWSConfig(ctx, target.Region)
	if err != nil {
		return nil, err
	}
	endpoint := strings.TrimSpace(target.Endpoint)
	client := dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
	return awsDynamoClient{client: client}, nil
}

// loadAWSConfig uses the default credential chain unless DOMD_AWS_ACCESS_KEY_ID
// and DOMD_AWS_SECRET_ACCESS_KEY are both set.
func loadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		region = defaultAWSRegion
	}
	options := []func(*config.LoadOptions) error{config.WithRegion(region)}

	accessKey := envutil.GetHostEnv("AWS_ACCESS_KEY_ID")
	secretKey := envutil.GetHostEnv("AWS_SECRET_ACCESS_KEY")
	if accessKey != "" && secretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
		options = append(options, config.WithCredentialsProvider(creds))
	}
	return config.LoadDefaultConfig(ctx, options...)
}
