// Package notify publishes callback-ready notifications. After the message
// router persists a callback response to the event store, an optional
// notifier tells the external system that the record is ready to poll,
// instead of leaving it to poll blindly.
package notify

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/michael-genson/usl-alexa-skill/types"
)

// sqsClient is the subset of the SQS API the notifier uses.
type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// notification is the message body published for each persisted callback
// event. It intentionally carries only the store key, not the response
// data; consumers fetch the full record from the event store.
type notification struct {
	EventSource string `json:"event_source"`
	EventID     string `json:"event_id"`
}

// SQS publishes callback notifications to an SQS queue. For FIFO queues the
// message group ID is the event source and a deduplication ID is derived
// from a SHA-256 hash of the store key, so webhook-style redeliveries of the
// same message do not fan out into duplicate notifications.
//
// Create an SQS notifier with [New] and call [SQS.Init] once before
// publishing. Init is not thread-safe; all other methods are safe for
// concurrent use after Init returns.
type SQS struct {
	client      sqsClient
	queueURL    string
	awsCfg      *aws.Config
	logger      types.Logger
	initialized bool
}

// New creates a notifier that publishes to the queue at queueURL.
//
// New does not connect to AWS. Call [SQS.Init] before publishing.
func New(awsCfg *aws.Config, queueURL string, logger types.Logger) *SQS {
	return &SQS{
		awsCfg:   awsCfg,
		queueURL: queueURL,
		logger:   logger.WithField("component", "notify"),
	}
}

// newWithClient creates a notifier with a custom SQS client. This
// constructor is intended for testing purposes.
func newWithClient(client sqsClient, queueURL string, logger types.Logger) *SQS {
	return &SQS{
		client:      client,
		queueURL:    queueURL,
		logger:      logger,
		initialized: true,
	}
}

// Init initializes the notifier by constructing the underlying SQS client
// from the AWS configuration supplied to [New]. It returns the receiver so
// that initialization can be chained:
//
//	notifier, err := notify.New(&awsCfg, queueURL, logger).Init(ctx)
//
// Init is idempotent; subsequent calls on an already-initialized notifier
// are no-ops.
func (n *SQS) Init(_ context.Context) (*SQS, error) {
	if n.initialized {
		return n, nil
	}

	if n.queueURL == "" {
		return nil, errors.New("queue URL cannot be empty")
	}

	n.client = sqs.NewFromConfig(*n.awsCfg)
	n.initialized = true

	return n, nil
}

// Notify publishes a callback-ready notification for event. Only the store
// key fields of event are sent.
func (n *SQS) Notify(ctx context.Context, event types.CallbackEvent) error {
	if !n.initialized {
		return errors.New("SQS notifier not initialized")
	}

	body, err := json.Marshal(notification{
		EventSource: event.EventSource,
		EventID:     event.EventID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal callback notification: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    &n.queueURL,
		MessageBody: aws.String(string(body)),
	}

	if strings.HasSuffix(n.queueURL, ".fifo") {
		input.MessageGroupId = aws.String(event.EventSource)
		input.MessageDeduplicationId = aws.String(hash(event.EventSource, event.EventID))
	}

	if _, err := n.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("failed to send callback notification: %w", err)
	}

	n.logger.Debugf("Callback notification sent for %s/%s", event.EventSource, event.EventID)

	return nil
}

func hash(input ...string) string {
	h := sha256.New()

	for _, s := range input {
		h.Write([]byte(s))
		h.Write([]byte{0}) // null byte delimiter to prevent hash collisions
	}

	bs := h.Sum(nil)

	return base64.URLEncoding.EncodeToString(bs)
}
