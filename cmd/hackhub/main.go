// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-arcade/hackhub/internal/engine/bootstrap"
	"github.com/go-arcade/hackhub/internal/engine/model"
	"github.com/go-arcade/hackhub/pkg/database"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/version"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "hackhub",
	Short: "hackhub is the hackathon management backend",
	Long:  "hackhub serves the hackathon API: accounts, teams and role requests",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and the scheduled jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		return bootstrap.Run(app, cleanup)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed the built-in roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, cleanup, err := initRepositories(configFile)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := database.AutoMigrate(repos.GetDB().Database()); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		if err := repos.Role.SeedRoles(ctx, model.BuiltinRoles); err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}
		log.Infow("schema migrated", "roles", len(model.BuiltinRoles))
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired team requests once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		scheduler, cleanup, err := initScheduler(configFile)
		if err != nil {
			return err
		}
		defer cleanup()

		n, err := scheduler.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired team requests\n", n)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "conf", "c", "conf.d/config.toml", "conf file path, e.g. -c ./conf.d/config.toml")
	rootCmd.AddCommand(serveCmd, migrateCmd, sweepCmd, version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
