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
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pairings/internal/server"
	"laptudirm.com/x/pairings/pkg/store"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "pairings",
		Short: "Generate tournament pairings without repeat opponents",
		Long: heredoc.Doc(`pairings generates multi-round pairing schedules. Every
			round is paired so that nobody meets an opponent they have
			already played, whenever that is possible. Odd groups get
			a bye each round.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Pairings' Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	// storage flags
	root.PersistentFlags().String("dir", store.DefaultDirectory, "Directory saved schedules are kept in")
	root.PersistentFlags().String("bucket", "", "Keep saved schedules in this S3 bucket instead")
	root.PersistentFlags().String("prefix", "pairings", "Key prefix of saved schedules in the S3 bucket")

	root.SetVersionTemplate(server.Version + "\n")
	root.Version = server.Version

	// Register the various commands.
	root.AddCommand(Generate())
	root.AddCommand(Show())
	root.AddCommand(List())
	root.AddCommand(Remove())
	root.AddCommand(Serve())

	return root
}
