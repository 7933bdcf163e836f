/*
Copyright 2026 the Unikorn Authors.

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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unikorn-cloud/api-smoke/pkg/constants"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

func main() {
	ctx := cr.SetupSignalHandler()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	zapOptions := &zap.Options{}

	cmd := &cobra.Command{
		Use:           constants.Application,
		Short:         "Smoke test the JSONPlaceholder posts API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetLogger(zap.New(zap.UseFlagOptions(zapOptions), zap.WriteTo(cmd.ErrOrStderr())))

			log.Log.WithName("init").Info("service starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)
		},
	}

	goflags := flag.NewFlagSet("logging", flag.ContinueOnError)
	zapOptions.BindFlags(goflags)

	cmd.PersistentFlags().AddGoFlagSet(goflags)

	cmd.AddCommand(runCmd())
	cmd.AddCommand(serveFakeCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
