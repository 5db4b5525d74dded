// internal/common/aws/sns.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSService is the subset of the SNS API the service uses, kept as an
// interface for mocking.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSClient sends SMS through SNS.
type SMSClient struct {
	client   SNSService
	senderID string
}

func NewSMSClient(ctx context.Context, region, senderID string) (*SMSClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SMSClient{client: sns.NewFromConfig(cfg), senderID: senderID}, nil
}

// NewSMSClientWithService wires a pre-built SNS service, used by tests.
func NewSMSClientWithService(svc SNSService, senderID string) *SMSClient {
	return &SMSClient{client: svc, senderID: senderID}
}

func (c *SMSClient) Send(ctx context.Context, to, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if c.senderID != "" {
		input.MessageAttributes = senderIDAttribute(c.senderID)
	}
	_, err := c.client.Publish(ctx, input)
	return err
}
