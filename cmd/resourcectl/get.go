package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stantonwjones/resourceful/internal/domain"
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Fetch a resource and print its attributes as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := buildEnv(ctx)
		if err != nil {
			return err
		}
		defer e.shutdown(ctx)

		resource, err := e.service.Fetch(ctx, normalizePath(args[0]), &domain.ResourceConfig{
			TypeName:        typeName,
			KnownAttributes: attributes,
		})
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(resource.Attributes(), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding attributes: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
