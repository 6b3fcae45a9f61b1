// Package secrets fetches the skill's API client credentials from AWS
// Secrets Manager. Secrets are stored as flat JSON objects and decoded into
// string maps.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// API is the subset of the Secrets Manager API the manager uses. It exists
// so tests can inject a mock via [WithAPI].
type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Manager reads JSON secrets from AWS Secrets Manager.
//
// Use [New] to create a Manager and [Manager.Connect] to initialize the
// underlying client. A connected Manager is safe for concurrent use.
type Manager struct {
	client API
	awsCfg *aws.Config
	api    API // Optional: injected API for testing
}

// Option is a functional option for configuring a [Manager].
type Option func(*Manager)

// WithAPI sets a custom [API] implementation, useful for injecting mocks in
// tests.
func WithAPI(api API) Option {
	return func(m *Manager) {
		m.api = api
	}
}

// New creates a Manager. Call [Manager.Connect] on the returned Manager
// before use.
func New(awsCfg *aws.Config, opts ...Option) *Manager {
	m := &Manager{awsCfg: awsCfg}

	for _, o := range opts {
		o(m)
	}

	return m
}

// Connect initializes the Secrets Manager client from the AWS config
// provided to [New].
func (m *Manager) Connect() error {
	if m.api != nil {
		m.client = m.api
	} else {
		m.client = secretsmanager.NewFromConfig(*m.awsCfg)
	}

	return nil
}

// Get fetches the secret with the given id and decodes its secret string as
// a flat JSON object.
func (m *Manager) Get(ctx context.Context, secretID string) (map[string]string, error) {
	if secretID == "" {
		return nil, errors.New("secret id cannot be empty")
	}

	output, err := m.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", secretID, err)
	}

	if output.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no secret string", secretID)
	}

	values := make(map[string]string)
	if err := json.Unmarshal([]byte(*output.SecretString), &values); err != nil {
		return nil, fmt.Errorf("failed to parse secret %s: %w", secretID, err)
	}

	return values, nil
}
