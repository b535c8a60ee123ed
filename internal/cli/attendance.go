package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newAttendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Check-in and check-out commands",
	}

	cmd.AddCommand(newAttendanceCheckInCmd())
	cmd.AddCommand(newAttendanceCheckOutCmd())
	cmd.AddCommand(newAttendanceActiveCmd())
	cmd.AddCommand(newAttendanceListCmd())

	return cmd
}

func pairPath(eventID, registrationID, suffix string) string {
	return fmt.Sprintf("/api/v1/events/%s/registrations/%s/%s",
		url.PathEscape(eventID), url.PathEscape(registrationID), suffix)
}

func newAttendanceCheckInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin <event-id> <registration-id>",
		Short: "Check in a confirmed registrant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Attendance
			if err := client.Post(pairPath(args[0], args[1], "check-in"), nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newAttendanceCheckOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <attendance-id>",
		Short: "Check out an attendee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Attendance
			path := "/api/v1/attendance/" + url.PathEscape(args[0]) + "/check-out"
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newAttendanceActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active <event-id> <registration-id>",
		Short: "Show the open attendance record for a registrant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Attendance
			if err := client.Get(pairPath(args[0], args[1], "attendance"), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newAttendanceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <event-id>",
		Short: "List attendance records for an event, latest check-in first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Attendance
			path := fmt.Sprintf("/api/v1/events/%s/attendance", url.PathEscape(args[0]))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
