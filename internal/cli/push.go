package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/snoody/tft-tierlist/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "push <draft>...",
		Short: "Create compositions on a running server",
		Long:  "Log in as an admin and post each draft to the compositions API. With --id a single draft replaces an existing composition.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPush,
	}
	cmd.Flags().String("api", "", "Server base URL (default: $TIERLIST_API_URL or http://localhost:8080)")
	cmd.Flags().StringP("user", "u", "", "Admin display name (default: $ADMIN_NAME)")
	cmd.Flags().StringP("password", "p", "", "Admin password (default: $ADMIN_PASSWORD)")
	cmd.Flags().String("id", "", "Replace this composition instead of creating one")

	RootCmd.AddCommand(cmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	apiURL, _ := cmd.Flags().GetString("api")
	user, _ := cmd.Flags().GetString("user")
	password, _ := cmd.Flags().GetString("password")
	id, _ := cmd.Flags().GetString("id")

	apiURL = firstNonEmpty(apiURL, os.Getenv("TIERLIST_API_URL"), "http://localhost:8080")
	user = firstNonEmpty(user, os.Getenv("ADMIN_NAME"))
	password = firstNonEmpty(password, os.Getenv("ADMIN_PASSWORD"))
	if user == "" || password == "" {
		return fmt.Errorf("admin credentials are required (--user/--password or ADMIN_NAME/ADMIN_PASSWORD)")
	}
	if id != "" && len(args) != 1 {
		return fmt.Errorf("--id takes exactly one draft")
	}

	client := NewAPIClient(apiURL)
	if err := client.Login(user, password); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, path := range args {
		draft, err := LoadDraft(path)
		if err != nil {
			return err
		}

		var comp *domain.Composition
		if id != "" {
			comp, err = client.ReplaceComposition(id, draft)
		} else {
			comp, err = client.CreateComposition(draft)
		}
		if err != nil {
			return pushFailure(cmd, path, err)
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", comp.ID, comp.Tier, comp.Name)
	}
	return nil
}

func pushFailure(cmd *cobra.Command, path string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		printValidationErrors(cmd.ErrOrStderr(), path, apiErr.Errors)
		return errInvalidDrafts
	}
	return fmt.Errorf("%s: %w", path, err)
}
