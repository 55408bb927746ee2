package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateOpts syncOptions

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and API credentials",
	Long: `Parses the configuration and makes a test API call to verify the
integration token. Remember that the integration must be explicitly
shared with every page or database it should read.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateOpts.token, "token", "", "Notion integration token")
	validateCmd.Flags().StringVar(&validateOpts.pageIDs, "page-ids", "", "comma-separated page ids")
	validateCmd.Flags().StringVar(&validateOpts.databaseIDs, "database-ids", "", "comma-separated database ids")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := validateOpts.resolve(cmd)
	if err != nil {
		return err
	}

	connector, err := buildConnector(cfg)
	if err != nil {
		return err
	}
	defer connector.Close()

	if err := connector.Validate(cmd.Context()); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	cmd.Println("Configuration and credentials look good.")
	return nil
}
