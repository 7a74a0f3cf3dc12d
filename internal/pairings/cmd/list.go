// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pairings/pkg/event"
)

func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the saved pairing schedules",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}

			names, err := st.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, color.RedString("No Schedules Saved."))
				return nil
			}

			fmt.Fprintf(out, "%s:\n\n", color.GreenString("Saved Schedules"))
			for _, name := range names {
				data, err := st.Get(cmd.Context(), name)
				if err != nil {
					return err
				}

				record, err := event.UnmarshalRecord(data)
				if err != nil {
					// One unreadable file shouldn't hide the rest.
					logrus.WithField("name", name).Warn(err)
					continue
				}

				fmt.Fprintf(out, "- %-30s %s\n", color.BlueString(name+":"), describe(record))
			}

			return nil
		},
	}
}

func describe(record *event.Record) string {
	summary := record.Event
	if summary == "" {
		summary = "Pairings"
	}

	repeats := 0
	for _, result := range record.Groups {
		repeats += result.Schedule.Repeats()
	}

	groups := len(record.Groups)
	if repeats > 0 {
		summary += fmt.Sprintf(" (%d group%s, %d repeat%s)", groups, plural(groups), repeats, plural(repeats))
	} else {
		summary += fmt.Sprintf(" (%d group%s)", groups, plural(groups))
	}

	return summary + color.New(color.Faint).Sprintf(" created %s", humanize.Time(record.Created))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}
