package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func newRegistrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registration",
		Aliases: []string{"reg"},
		Short:   "Registration commands",
	}

	cmd.AddCommand(newRegistrationCreateCmd())
	cmd.AddCommand(newRegistrationGetCmd())
	cmd.AddCommand(newRegistrationFindCmd())
	cmd.AddCommand(newRegistrationConfirmCmd())
	cmd.AddCommand(newRegistrationCancelCmd())
	cmd.AddCommand(newRegistrationListCmd())
	cmd.AddCommand(newRegistrationSearchCmd())
	cmd.AddCommand(newRegistrationQRCmd())

	return cmd
}

func newRegistrationCreateCmd() *cobra.Command {
	var firstName, lastName, email, phone, requirements string

	cmd := &cobra.Command{
		Use:   "create <event-id>",
		Short: "Register for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"first_name":           firstName,
				"last_name":            lastName,
				"email":                email,
				"phone_number":         phone,
				"special_requirements": requirements,
			}

			var result Registration
			path := fmt.Sprintf("/api/v1/events/%s/registrations", url.PathEscape(args[0]))
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&requirements, "requirements", "", "Special requirements")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRegistrationGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a registration by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Registration
			if err := client.Get("/api/v1/registrations/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newRegistrationFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <code>",
		Short: "Show a registration by confirmation code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Registration
			if err := client.Get("/api/v1/registrations/code/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newRegistrationConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <code>",
		Short: "Confirm a registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Registration
			path := "/api/v1/registrations/code/" + url.PathEscape(args[0]) + "/confirm"
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newRegistrationCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/registrations/"+url.PathEscape(args[0]), nil); err != nil {
				return err
			}

			output(cmd).PrintMessage("Registration " + args[0] + " cancelled")
			return nil
		},
	}
}

func newRegistrationListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <event-id>",
		Short: "List registrations for an event, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Registration
			path := fmt.Sprintf("/api/v1/events/%s/registrations", url.PathEscape(args[0]))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newRegistrationSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]",
		Short: "Search registrations by name, email or code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/registrations"
			if len(args) == 1 {
				path += "?q=" + url.QueryEscape(args[0])
			}

			var result []Registration
			if err := client.Get(path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newRegistrationQRCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "qr <code>",
		Short: "Save the QR code for a confirmation code as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := client.GetBytes("/api/v1/registrations/code/" + url.PathEscape(args[0]) + "/qr")
			if err != nil {
				return err
			}

			if file == "" {
				file = args[0] + ".png"
			}
			if err := os.WriteFile(file, png, 0644); err != nil {
				return fmt.Errorf("failed to write QR code: %w", err)
			}

			output(cmd).PrintMessage("QR code written to " + file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Output file (default <code>.png)")

	return cmd
}
