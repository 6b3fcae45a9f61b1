package main

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/michael-genson/usl-alexa-skill/listmanagement"
	"github.com/michael-genson/usl-alexa-skill/logging"
	"github.com/michael-genson/usl-alexa-skill/router"
	"github.com/michael-genson/usl-alexa-skill/types"
)

func newMessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Route ad-hoc skill messages against the List Management API",
	}

	cmd.AddCommand(newMessageSendCmd())

	return cmd
}

func newMessageSendCmd() *cobra.Command {
	var (
		endpoint   string
		token      string
		operation  string
		objectType string
		objectData string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single CRUD request through the message router",
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg := types.Message{
				Source:  "uslctl",
				EventID: uuid.NewString(),
				Requests: []types.MessageRequest{{
					Operation:  types.Operation(operation),
					ObjectType: types.ObjectType(objectType),
					ObjectData: json.RawMessage(objectData),
				}},
			}

			if err := msg.Validate(); err != nil {
				return err
			}

			logger := logging.NewNop()
			if verbose {
				logger = logging.New("debug")
			}

			rt, err := router.New(listmanagement.New(endpoint, token), nil, logger)
			if err != nil {
				return err
			}

			response := rt.Route(cmd.Context(), msg)

			output, err := json.MarshalIndent(response, "", "  ")
			if err != nil {
				return err
			}

			cmd.Println(string(output))

			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "https://api.amazonalexa.com", "Alexa API endpoint")
	cmd.Flags().StringVar(&token, "token", "", "Alexa API access token")
	cmd.Flags().StringVar(&operation, "operation", "", "operation to run (create, read, read_all, update, delete)")
	cmd.Flags().StringVar(&objectType, "object-type", "", "object type to operate on (list, list_item)")
	cmd.Flags().StringVar(&objectData, "object-data", "{}", "JSON object data for the request")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("operation")
	_ = cmd.MarkFlagRequired("object-type")

	return cmd
}
