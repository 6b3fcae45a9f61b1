package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/michael-genson/usl-alexa-skill/usl"
)

func newValidateCmd() *cobra.Command {
	var (
		baseURL string
		token   string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check whether a USL credential and configuration are valid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := usl.New(baseURL, token)
			if err != nil {
				return err
			}

			if !client.Validate(cmd.Context()) {
				return errors.New("USL configuration is not valid")
			}

			cmd.Println("USL configuration is valid")

			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "USL API base URL")
	cmd.Flags().StringVar(&token, "token", "", "USL API bearer token")
	_ = cmd.MarkFlagRequired("base-url")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}
