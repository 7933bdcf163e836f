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
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/unikorn-cloud/api-smoke/pkg/fakeapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

const shutdownTimeout = 10 * time.Second

func serveFakeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve-fake",
		Short: "Serve an in-memory fake of the posts API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveFake(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8080", "Address to listen on")

	return cmd
}

func serveFake(ctx context.Context, listen string) error {
	log := log.FromContext(ctx)

	server, err := fakeapi.Listen(ctx, listen)
	if err != nil {
		return err
	}

	log.Info("serving fake API", "url", server.URL())

	select {
	case err := <-server.Done():
		return err
	case <-ctx.Done():
	}

	// The parent context is already cancelled.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-server.Done()
}
