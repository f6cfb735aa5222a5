package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobmate/job-tracker/internal/grpcserver"
	"jobmate/job-tracker/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC APIs",
	Long:  "Serve the JSON API on HTTP_PORT and the jobtracker.v1.Tracker gRPC service on GRPC_PORT until interrupted.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withApp(ctx, func(a *app) error {
		mux := http.NewServeMux()
		httpapi.NewHandler(a.svc, a.log, version).RegisterRoutes(mux)

		httpSrv := &http.Server{
			Addr:         fmt.Sprintf(":%s", a.cfg.HTTPPort),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}

		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", a.cfg.GRPCPort))
		if err != nil {
			return fmt.Errorf("grpc listen on :%s: %w", a.cfg.GRPCPort, err)
		}
		grpcSrv := grpcserver.New(a.svc, a.log)

		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			a.log.Info("http listening", zap.String("addr", httpSrv.Addr), zap.String("version", version))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			a.log.Info("grpc listening", zap.String("addr", lis.Addr().String()))
			if err := grpcSrv.Serve(lis); err != nil {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})

		// ── Graceful shutdown ───────────────────────────────────────────────
		g.Go(func() error {
			<-gCtx.Done()
			a.log.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			grpcSrv.GracefulStop()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				a.log.Warn("http shutdown", zap.Error(err))
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return err
		}
		a.log.Info("stopped")
		return nil
	})
}
