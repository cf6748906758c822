/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/waitlist/internal/messages"
	"github.com/valpere/waitlist/internal/validator"
	"github.com/valpere/waitlist/internal/waitlist"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <email>",
	Short: "Check whether an address on the waitlist has been invited",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msgs := messages.New(cfg.Lang)
		errOut := cmd.ErrOrStderr()
		email := args[0]

		if !validator.IsValid(email) {
			fmt.Fprintln(errOut, msgs.Sprintf(messages.InvalidEmail))
			return &outcomeError{outcome: "invalid"}
		}

		client := waitlist.NewClient(cfg.Timeout)
		resp, err := client.Verify(cmd.Context(), cfg.BaseURL(), email)
		if err != nil {
			var appErr *waitlist.ApplicationError
			var transportErr *waitlist.TransportError
			switch {
			case errors.As(err, &appErr):
				msg := appErr.Detail
				if msg == "" {
					msg = msgs.Sprintf(messages.GenericError)
				}
				fmt.Fprintln(errOut, msg)
				return &outcomeError{outcome: "rejected"}
			case errors.As(err, &transportErr):
				logger.Error("Waitlist error", zap.Error(err))
				fmt.Fprintln(errOut, msgs.Sprintf(messages.Unreachable))
				return &outcomeError{outcome: "unreachable"}
			default:
				return fmt.Errorf("failed to verify %s: %w", email, err)
			}
		}

		out := cmd.OutOrStdout()
		if resp.IsInvited && resp.InviteCode != nil {
			fmt.Fprintln(out, msgs.Sprintf(messages.Invited, *resp.InviteCode))
		} else {
			fmt.Fprintln(out, msgs.Sprintf(messages.NotInvited))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
