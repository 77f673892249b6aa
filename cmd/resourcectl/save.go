package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stantonwjones/resourceful/internal/domain"
)

var (
	saveAttrsFile  string
	saveUpdateOnly bool
)

var saveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Create or update a resource from a JSON attribute file",
	Long: `Save submits a resource to the API. New resources are created with a
full representation; resources marked update-only are sent as a partial
update. Validation failures are printed per field and exit with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(saveAttrsFile)
		if err != nil {
			return fmt.Errorf("reading attributes file: %w", err)
		}

		var attrs map[string]any
		if err := json.Unmarshal(data, &attrs); err != nil {
			return fmt.Errorf("parsing attributes file: %w", err)
		}

		e, err := buildEnv(ctx)
		if err != nil {
			return err
		}
		defer e.shutdown(ctx)

		resource := domain.NewResource(&domain.ResourceConfig{
			TypeName:        typeName,
			KnownAttributes: attributes,
			UpdateOnly:      saveUpdateOnly,
		})
		for key, value := range attrs {
			resource.Set(key, value)
		}

		saved, err := e.service.Save(ctx, normalizePath(args[0]), resource)
		if err != nil {
			return err
		}

		if !saved {
			for _, msg := range resource.Errors().FullMessages() {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}
			return errors.New("resource was not saved")
		}

		out, err := json.MarshalIndent(resource.Attributes(), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding attributes: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	saveCmd.Flags().StringVarP(&saveAttrsFile, "file", "f", "",
		"JSON file containing the resource attributes")
	saveCmd.Flags().BoolVar(&saveUpdateOnly, "update-only", false,
		"always send a partial update, even for unsaved resources")

	if err := saveCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(saveCmd)
}
