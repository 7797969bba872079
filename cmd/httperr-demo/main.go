/*
   Copyright 2025 The DIRPX Authors

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

// Command httperr-demo serves a small user API whose handlers fail with
// classified, attached and unclassified errors.
//
// Configuration comes from config.yml, .env and HTTPERR_* variables:
//
//	HTTPERR_ERRORS_CATCH_ALL=true HTTPERR_LOG_FORMAT=console httperr-demo
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/httperr"
	"dirpx.dev/httperr/config"
	"dirpx.dev/httperr/logsink"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "httperr-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", "", ".env file")
	flag.Parse()

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}
	s, err := config.Load(opts...)
	if err != nil {
		return err
	}

	sink, closer := newSink(s.Log, os.Stderr)
	defer func() { _ = closer.Close() }()

	c := httperr.New(s.Errors, httperr.WithSink(sink))

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           newRouter(c, newStore()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newSink(cfg config.Log, w io.Writer) (httperr.Sink, io.Closer) {
	if cfg.Async {
		return logsink.NewAsync(w, cfg.BufferSize, cfg.Config, func(missed int) {
			fmt.Fprintf(os.Stderr, "httperr-demo: dropped %d log records\n", missed)
		})
	}
	return logsink.New(w, cfg.Config), io.NopCloser(nil)
}
