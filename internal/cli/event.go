package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Event catalog commands",
	}

	cmd.AddCommand(newEventListCmd())
	cmd.AddCommand(newEventGetCmd())
	cmd.AddCommand(newEventSearchCmd())
	cmd.AddCommand(newEventStatsCmd())

	return cmd
}

func newEventListCmd() *cobra.Command {
	var upcoming bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, soonest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/events"
			if upcoming {
				path += "?upcoming=true"
			}

			var result []Event
			if err := client.Get(path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "Only list active events that have not started")

	return cmd
}

func newEventGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Event
			if err := client.Get("/api/v1/events/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newEventSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search events by title, description or location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Event
			if err := client.Get("/api/v1/events?q="+url.QueryEscape(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newEventStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <id>",
		Short: "Show registration and attendance counts for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result EventStats
			if err := client.Get(fmt.Sprintf("/api/v1/events/%s/stats", url.PathEscape(args[0])), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
