// internal/common/aws/ses.go

// Package aws wraps the AWS SDK clients the application uses. Only SES is
// wired today; credentials come from the default provider chain.
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// SESClient sends email through Amazon SES in the configured region.
type SESClient struct {
	client *ses.Client
}

// NewSESClient resolves credentials from the environment and returns a
// ready-to-use SES client for the region.
func NewSESClient(ctx context.Context, region string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESClient{client: ses.NewFromConfig(cfg)}, nil
}

// SendEmail forwards the request to SES.
func (s *SESClient) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return s.client.SendEmail(ctx, input)
}
