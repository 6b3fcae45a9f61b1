// The lambda command is the AWS Lambda entrypoint for the Unified Shopping
// List Alexa skill.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/michael-genson/usl-alexa-skill/config"
	"github.com/michael-genson/usl-alexa-skill/eventstore"
	"github.com/michael-genson/usl-alexa-skill/logging"
	"github.com/michael-genson/usl-alexa-skill/notify"
	"github.com/michael-genson/usl-alexa-skill/router"
	"github.com/michael-genson/usl-alexa-skill/secrets"
	"github.com/michael-genson/usl-alexa-skill/skill"
	"github.com/michael-genson/usl-alexa-skill/translator"
	"github.com/michael-genson/usl-alexa-skill/usl"
)

func main() {
	sk, err := build(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize skill: %v", err)
	}

	lambda.Start(sk.Handle)
}

func build(ctx context.Context) (*skill.Skill, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.App.LogLevel)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	store, err := buildStore(&awsCfg, cfg)
	if err != nil {
		return nil, err
	}

	secretsManager := secrets.New(&awsCfg)
	if err := secretsManager.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to secrets manager: %w", err)
	}

	credentials, err := secretsManager.Get(ctx, cfg.AWS.SecretID)
	if err != nil {
		return nil, err
	}

	routerOpts := []router.Option{router.WithCallbackTTL(cfg.Callback.TTL)}

	if cfg.Callback.QueueURL != "" {
		queue, err := notify.New(&awsCfg, cfg.Callback.QueueURL, logger).Init(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize callback queue: %w", err)
		}

		routerOpts = append(routerOpts, router.WithNotifier(queue))
	}

	return skill.New(
		skill.Config{
			USLBaseURL:   cfg.USL.BaseURL,
			LinkRoute:    cfg.USL.LinkRoute,
			UnlinkRoute:  cfg.USL.UnlinkRoute,
			ClientID:     credentials["client_id"],
			ClientSecret: credentials["client_secret"],
		},
		store,
		logger,
		skill.WithRouterOptions(routerOpts...),
		skill.WithTranslatorOptions(translator.WithDebounceDelay(cfg.App.DebounceDelay)),
		skill.WithUSLClientFactory(func(baseURL, token string) (skill.USLClient, error) {
			return usl.New(baseURL, token,
				usl.WithTimeout(cfg.USL.Timeout),
				usl.WithMaxAttempts(cfg.USL.MaxAttempts),
				usl.WithRetryDelay(cfg.USL.RetryDelay),
				usl.WithRoutes(cfg.USL.ValidateRoute, cfg.USL.CreateListItemsRoute, cfg.USL.ItemEventsRoute),
			)
		}),
	)
}

func buildStore(awsCfg *aws.Config, cfg *config.Config) (eventstore.Store, error) {
	if cfg.Callback.UseRedis() {
		store, err := eventstore.NewRedis(eventstore.RedisConfig{
			Addr:      cfg.Callback.RedisAddr,
			Password:  cfg.Callback.RedisPassword,
			DB:        cfg.Callback.RedisDB,
			KeyPrefix: cfg.Callback.RedisKeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		return store, nil
	}

	store := eventstore.NewDynamoDB(awsCfg, cfg.Callback.TableName,
		eventstore.WithTTLAttribute(cfg.Callback.TTLAttribute))
	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to dynamodb: %w", err)
	}

	return store, nil
}
