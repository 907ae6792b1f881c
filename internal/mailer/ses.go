package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
)

// SESSender delivers messages through AWS SES (SDK v2). Credentials come
// from the default chain: env vars locally, the task role on ECS.
type SESSender struct {
	client *sesv2.Client
}

// NewSESSender creates an SES sender for the given region.
func NewSESSender(ctx context.Context, region string) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESSender{client: sesv2.NewFromConfig(cfg)}, nil
}

// Send delivers a single email through SES, classifying API errors into
// permanent and transient failures.
func (s *SESSender) Send(ctx context.Context, msg Message) error {
	from := msg.FromEmail
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, msg.FromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if msg.TextBody != "" {
		input.Content.Simple.Body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return classify(err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	logger.Debug("ses send accepted", "to", msg.To, "message_id", messageID)
	return nil
}

// classify maps SES API errors onto the failure taxonomy. Rejected
// messages and unverified senders never succeed on retry; throttles and
// internal errors do.
func classify(err error) error {
	var (
		rejected   *types.MessageRejected
		notVerif   *types.MailFromDomainNotVerifiedException
		badReq     *types.BadRequestException
		suspended  *types.AccountSuspendedException
		paused     *types.SendingPausedException
		throttled  *types.TooManyRequestsException
		overLimit  *types.LimitExceededException
		internal   *types.InternalServiceErrorException
	)
	switch {
	case errors.As(err, &rejected),
		errors.As(err, &notVerif),
		errors.As(err, &badReq):
		return Permanent(err)
	case errors.As(err, &suspended),
		errors.As(err, &paused),
		errors.As(err, &throttled),
		errors.As(err, &overLimit),
		errors.As(err, &internal):
		return Transient(err)
	default:
		// Network blips, timeouts, anything unrecognized: retryable.
		return Transient(err)
	}
}
