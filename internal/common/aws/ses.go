// internal/common/aws/ses.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESService is the subset of the SES API the service uses, kept as an
// interface for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailClient sends transactional email through SES.
type EmailClient struct {
	client    SESService
	fromEmail string
}

func NewEmailClient(ctx context.Context, region, fromEmail string) (*EmailClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &EmailClient{client: ses.NewFromConfig(cfg), fromEmail: fromEmail}, nil
}

// NewEmailClientWithService wires a pre-built SES service, used by tests.
func NewEmailClientWithService(svc SESService, fromEmail string) *EmailClient {
	return &EmailClient{client: svc, fromEmail: fromEmail}
}

func (c *EmailClient) Send(ctx context.Context, to, subject, body string) error {
	_, err := c.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(c.fromEmail),
	})
	return err
}
