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
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pairings/internal/util"
	"laptudirm.com/x/pairings/pkg/event"
	"laptudirm.com/x/pairings/pkg/render"
	"laptudirm.com/x/pairings/pkg/store"
)

// pairings generate
func Generate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [participant...]",
		Short: "Generate a pairing schedule",
		Long: heredoc.Doc(`generate pairs the given participants for a number of
			rounds. Participants are shuffled before every round and
			paired so that nobody meets the same opponent twice, as
			long as such a pairing exists. When it does not, repeats
			are kept to a minimum and reported.

			Participants can be given as arguments, as a comma-separated
			list with --players, or as the groups of an event file with
			--file. Each group of an event file is paired on its own.`),
		Example: heredoc.Doc(`
			$ pairings generate Alice Bob Carol Dave --rounds 3
			$ pairings generate --players "Alice, Bob, Carol" --format plain
			$ pairings generate --file club-night.yaml --save week-1`),

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := eventConfig(cmd, args)
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("format")
			format, err := render.ParseFormat(name)
			if err != nil {
				return err
			}

			save, _ := cmd.Flags().GetString("save")
			var st store.Store
			if save != "" {
				if err := store.ValidateName(save); err != nil {
					return err
				}

				if st, err = openStore(cmd); err != nil {
					return err
				}
			}

			util.StartSpinner()
			record, err := event.Run(cmd.Context(), config, logrus.StandardLogger())
			util.PauseSpinner()
			if err != nil {
				return err
			}

			if st != nil {
				data, err := record.Marshal()
				if err != nil {
					return err
				}

				if err := st.Put(cmd.Context(), save, data); err != nil {
					return err
				}

				logrus.WithField("id", record.ID).Infof("Saved schedule as %s", save)
			}

			return render.Write(cmd.OutOrStdout(), format, record)
		},
	}

	flags := cmd.Flags()
	flags.StringP("file", "f", "", "Event file describing the groups to pair")
	flags.StringP("players", "p", "", "Comma-separated list of participants")
	flags.IntP("rounds", "r", event.DefaultRounds, "Number of rounds to pair")
	flags.StringP("group", "g", "", "Name of the group being paired")
	flags.StringP("event", "e", "", "Name of the event")
	flags.String("date", "", "Date of the event (default today)")
	flags.Uint64("seed", 0, "Seed for reproducible pairings (default random)")
	flags.StringP("format", "o", string(render.FormatText), "Output format: text, plain, json or yaml")
	flags.StringP("save", "s", "", "Save the schedule under this name")

	return cmd
}

var errMixedSources = errors.New("participants cannot be given together with an event file")

// eventConfig builds the event to pair from an event file or from the
// participants on the command line, with flags overriding the file.
func eventConfig(cmd *cobra.Command, args []string) (event.Config, error) {
	flags := cmd.Flags()

	players, _ := flags.GetString("players")
	participants := append(append([]string{}, args...), event.ParseParticipants(players)...)

	var config event.Config
	if file, _ := flags.GetString("file"); file != "" {
		if len(participants) > 0 {
			return config, errMixedSources
		}

		var err error
		if config, err = event.Load(file); err != nil {
			return config, err
		}
	} else {
		group, _ := flags.GetString("group")
		config.Groups = []event.Group{{
			Name:         group,
			Participants: participants,
		}}
	}

	if flags.Changed("event") || config.Event == "" {
		config.Event, _ = flags.GetString("event")
	}

	if flags.Changed("date") {
		config.Date, _ = flags.GetString("date")
	}

	if flags.Changed("seed") {
		config.Seed, _ = flags.GetUint64("seed")
	}

	if flags.Changed("rounds") || config.Rounds == nil {
		rounds, _ := flags.GetInt("rounds")
		config.Rounds = &rounds

		// an explicit --rounds applies to every group of the file
		if flags.Changed("rounds") {
			for i := range config.Groups {
				config.Groups[i].Rounds = &rounds
			}
		}
	}

	return config, nil
}
