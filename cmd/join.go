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
	"github.com/spf13/cobra"

	"github.com/valpere/waitlist/internal/form"
	"github.com/valpere/waitlist/internal/messages"
	"github.com/valpere/waitlist/internal/submitter"
)

var joinCmd = &cobra.Command{
	Use:   "join [email]",
	Short: "Add an email address to the waitlist",
	Long: `Submit one email address to the waitlist.

When the address is not given as an argument it is read from standard input.
The address must be non-empty and contain "@"; otherwise nothing is sent.

On success the confirmation message is printed to standard output. Errors
from the server or the network are printed to standard error and the
command exits with status 1. Failed submissions are not retried.

Example:
  waitlist join ayse@example.com
  waitlist join --host localhost ayse@example.com
  echo ayse@example.com | waitlist join --lang en`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		prefill := ""
		if len(args) == 1 {
			prefill = args[0]
		}

		f := form.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(),
			prefill, sess.msgs.Sprintf(messages.EmailPrompt))

		outcome := sess.submitter(f).Submit(cmd.Context())
		if outcome != submitter.OutcomeJoined {
			return &outcomeError{outcome: string(outcome)}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(joinCmd)
}
