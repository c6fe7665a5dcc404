package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	portalbus "github.com/aetherweave/go-portalbus"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// runOptions run 子命令参数
type runOptions struct {
	*rootOptions
	metricsAddr string
	quiet       bool
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the host portal and expose metrics",
		Long: `Start a host portal, publish the global event bus and print every
module event until interrupted.

Example:
  portalbus run --metrics-addr :9464
  portalbus run --config portalbus.yaml --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPortal(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", ":9464", "prometheus 指标监听地址（空 = 不监听）")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "不打印模块事件")
	return cmd
}

func runPortal(ctx context.Context, cmd *cobra.Command, opts *runOptions) error {
	out := cmd.OutOrStdout()

	logger.Info("启动门户", "version", portalbus.Version, "commit", portalbus.GitCommit)
	p, err := portalbus.Start(ctx, portalbus.WithConfig(opts.cfg))
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = p.Close() }()

	if !opts.quiet {
		p.OnAllModuleEvents(func(name types.EventName, payload any) {
			fmt.Fprintf(out, "%s  %s  %+v\n", time.Now().Format(time.TimeOnly), name, payload)
		})
	}

	var srv *http.Server
	if reg := p.Metrics(); reg != nil && opts.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: opts.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("指标服务退出", "error", err)
			}
		}()
		fmt.Fprintf(out, "指标: http://%s/metrics\n", opts.metricsAddr)
	}

	if err := p.PublishReady(); err != nil {
		return err
	}
	fmt.Fprintln(out, "门户已启动，按 Ctrl+C 退出")

	<-ctx.Done()
	fmt.Fprintln(out, "\n正在关闭门户...")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return nil
}
