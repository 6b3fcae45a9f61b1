package main

import (
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"github.com/michael-genson/usl-alexa-skill/eventstore"
)

func newCallbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "callback",
		Short: "Inspect persisted callback responses",
	}

	cmd.AddCommand(newCallbackGetCmd())

	return cmd
}

func newCallbackGetCmd() *cobra.Command {
	var (
		tableName string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "get <event-source> <event-id>",
		Short: "Fetch a callback response by source and event id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := buildStore(cmd, tableName, redisAddr)
			if err != nil {
				return err
			}

			event, err := store.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			output, err := json.MarshalIndent(event, "", "  ")
			if err != nil {
				return err
			}

			cmd.Println(string(output))

			return nil
		},
	}

	cmd.Flags().StringVar(&tableName, "table", "alexa-callback-events", "DynamoDB callback event table")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address; overrides the DynamoDB backend when set")

	return cmd
}

func buildStore(cmd *cobra.Command, tableName, redisAddr string) (eventstore.Store, error) {
	if redisAddr != "" {
		return eventstore.NewRedis(eventstore.RedisConfig{Addr: redisAddr})
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	store := eventstore.NewDynamoDB(&awsCfg, tableName)
	if err := store.Connect(); err != nil {
		return nil, err
	}

	return store, nil
}
