package eventstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/michael-genson/usl-alexa-skill/types"
)

const (
	// PartitionKey is the DynamoDB partition key attribute name: the source
	// system that sent the original message (e.g. "Alexa" or an external
	// integration name).
	PartitionKey = "event_source"

	// SortKey is the DynamoDB sort key attribute name: the event id supplied
	// by the message source.
	SortKey = "event_id"

	// DataAttr is the attribute name used to store the serialized response
	// body.
	DataAttr = "data"

	// DefaultTTLAttr is the default attribute name for DynamoDB TTL-based
	// expiration. The table must have TTL enabled on this attribute (or on
	// the one configured via [WithTTLAttribute]).
	DefaultTTLAttr = "expires"
)

// API is the subset of the DynamoDB API the store uses. It exists so tests
// and callers with custom configurations can inject their own client via
// [WithAPI].
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoDB is the DynamoDB-backed implementation of [Store]. Records live in
// a single table keyed by (event_source, event_id) with the serialized
// response body and a UNIX-timestamp TTL attribute.
//
// Use [NewDynamoDB] to create a store and [DynamoDB.Connect] to initialize
// the underlying DynamoDB connection. A connected store is safe for
// concurrent use.
type DynamoDB struct {
	client    API
	tableName string
	awsCfg    *aws.Config
	opts      *Options
}

// NewDynamoDB creates a store backed by the given DynamoDB table. Call
// [DynamoDB.Connect] on the returned store before use.
func NewDynamoDB(awsCfg *aws.Config, tableName string, opts ...Option) *DynamoDB {
	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	return &DynamoDB{
		awsCfg:    awsCfg,
		tableName: tableName,
		opts:      options,
	}
}

// Connect initializes the DynamoDB client from the AWS config provided to
// [NewDynamoDB]. It must be called before any other method, and must
// complete before the store is used concurrently.
func (s *DynamoDB) Connect() error {
	if s.tableName == "" {
		return errors.New("table name cannot be empty")
	}

	if err := s.opts.validate(); err != nil {
		return fmt.Errorf("invalid event store options: %w", err)
	}

	// Use injected DynamoDB API if provided (useful for testing).
	if s.opts.dynamoDBAPI != nil {
		s.client = s.opts.dynamoDBAPI
	} else {
		s.client = dynamodb.NewFromConfig(*s.awsCfg)
	}

	return nil
}

// Put writes a callback event, overwriting any previous record under the
// same (event source, event id) key. When ttl is greater than zero the TTL
// attribute is set to the current time plus ttl, in UNIX seconds.
func (s *DynamoDB) Put(ctx context.Context, event types.CallbackEvent, ttl time.Duration) error {
	if event.EventSource == "" {
		return errors.New("event source cannot be empty")
	}

	if event.EventID == "" {
		return errors.New("event id cannot be empty")
	}

	attributes := map[string]dynamodbtypes.AttributeValue{
		PartitionKey: &dynamodbtypes.AttributeValueMemberS{Value: event.EventSource},
		SortKey:      &dynamodbtypes.AttributeValueMemberS{Value: event.EventID},
		DataAttr:     &dynamodbtypes.AttributeValueMemberS{Value: event.Data},
	}

	if ttl > 0 {
		expires := strconv.FormatInt(s.opts.clock().Add(ttl).Unix(), 10)
		attributes[s.opts.ttlAttribute] = &dynamodbtypes.AttributeValueMemberN{Value: expires}
	}

	input := &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item:      attributes,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to write callback event to DynamoDB table %s: %w", s.tableName, err)
	}

	return nil
}

// Get returns the callback event stored under (source, eventID), or
// [ErrNotFound] when no record exists.
func (s *DynamoDB) Get(ctx context.Context, source, eventID string) (types.CallbackEvent, error) {
	if source == "" {
		return types.CallbackEvent{}, errors.New("event source cannot be empty")
	}

	if eventID == "" {
		return types.CallbackEvent{}, errors.New("event id cannot be empty")
	}

	input := &dynamodb.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]dynamodbtypes.AttributeValue{
			PartitionKey: &dynamodbtypes.AttributeValueMemberS{Value: source},
			SortKey:      &dynamodbtypes.AttributeValueMemberS{Value: eventID},
		},
	}

	output, err := s.client.GetItem(ctx, input)
	if err != nil {
		return types.CallbackEvent{}, fmt.Errorf("failed to get callback event from DynamoDB table %s: %w", s.tableName, err)
	}

	if len(output.Item) == 0 {
		return types.CallbackEvent{}, ErrNotFound
	}

	event := types.CallbackEvent{
		EventSource: getStringValue(output.Item[PartitionKey]),
		EventID:     getStringValue(output.Item[SortKey]),
		Data:        getStringValue(output.Item[DataAttr]),
	}

	if attr, ok := output.Item[s.opts.ttlAttribute].(*dynamodbtypes.AttributeValueMemberN); ok {
		expires, err := strconv.ParseInt(attr.Value, 10, 64)
		if err != nil {
			return types.CallbackEvent{}, fmt.Errorf("failed to parse expiration for callback event %s/%s: %w", source, eventID, err)
		}

		event.Expires = expires
	}

	return event, nil
}

// getStringValue extracts the string value from a DynamoDB AttributeValue.
// It returns an empty string if the AttributeValue is not of type
// AttributeValueMemberS.
func getStringValue(attr dynamodbtypes.AttributeValue) string {
	if attrValue, ok := attr.(*dynamodbtypes.AttributeValueMemberS); ok {
		return attrValue.Value
	}

	return ""
}
