package fittrack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saadjs/fittrack/internal/httpapi"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(func(rt *cliEnv) error {
			addr := rt.cfg.HTTP.Addr
			if serveAddr != "" {
				addr = serveAddr
			}
			if rt.cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
			router := httpapi.NewRouter(rt.svc, rt.log, httpapi.Options{DefaultUser: rt.user, Registry: rt.reg})
			srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				rt.log.Info("http server listening", zap.String("addr", addr), zap.String("store", rt.cfg.Store.Backend))
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve %s: %w", addr, err)
			case <-ctx.Done():
			}
			rt.log.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown http server: %w", err)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}
