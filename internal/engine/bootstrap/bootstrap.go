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

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/hackhub/internal/engine/config"
	"github.com/go-arcade/hackhub/internal/engine/job"
	"github.com/go-arcade/hackhub/pkg/log"
	"github.com/go-arcade/hackhub/pkg/safe"
	"github.com/go-arcade/hackhub/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
)

type App struct {
	HttpApp   *fiber.App
	Scheduler *job.Scheduler
	Shutdown  *shutdown.Manager
	Logger    *log.Logger
	AppConf   *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	httpApp *fiber.App,
	scheduler *job.Scheduler,
	shutdownMgr *shutdown.Manager,
	logger *log.Logger,
	appConf *config.AppConfig,
) *App {
	return &App{
		HttpApp:   httpApp,
		Scheduler: scheduler,
		Shutdown:  shutdownMgr,
		Logger:    logger,
		AppConf:   appConf,
	}
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) error {
	appConf := app.AppConf

	if err := app.Scheduler.Start(); err != nil {
		cleanup()
		return err
	}

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	listenErr := make(chan error, 1)
	safe.Go(func() {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		log.Infow("HTTP listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed", "address", addr, "error", err)
			listenErr <- err
		}
	})

	var runErr error
	select {
	case sig := <-quit:
		log.Infow("Received signal, shutting down gracefully...", "signal", sig)
	case runErr = <-listenErr:
	}

	// /health answers 503 from here on so load balancers drain us
	app.Shutdown.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(appConf.Http.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	app.Scheduler.Stop()

	// close database and redis
	cleanup()

	log.Info("Server shutdown complete")
	return runErr
}
