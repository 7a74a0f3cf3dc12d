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
	"github.com/spf13/cobra"

	"laptudirm.com/x/pairings/pkg/event"
	"laptudirm.com/x/pairings/pkg/render"
)

func Show() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show name",
		Short: "Show a saved pairing schedule",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := render.ParseFormat(name)
			if err != nil {
				return err
			}

			st, err := openStore(cmd)
			if err != nil {
				return err
			}

			data, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			record, err := event.UnmarshalRecord(data)
			if err != nil {
				return err
			}

			return render.Write(cmd.OutOrStdout(), format, record)
		},
	}

	cmd.Flags().StringP("format", "o", string(render.FormatText), "Output format: text, plain, json or yaml")

	return cmd
}
