package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	portalbus "github.com/aetherweave/go-portalbus"
	"github.com/aetherweave/go-portalbus/client"
	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

func newDemoCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through late-joiner replay and logout reset in-process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.CloneConfig(root.cfg)
			cfg.Bridge.Isolated = true
			return runDemo(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

// runDemo 宿主 + 两个模块的脚本化场景
func runDemo(ctx context.Context, cfg *config.Config, out io.Writer) error {
	p, err := portalbus.Start(ctx, portalbus.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	step := func(format string, args ...any) {
		fmt.Fprintf(out, "» "+format+"\n", args...)
	}

	p.OnNotification(func(e *types.NotificationEvent) {
		step("host: notification [%s] %s", e.Type, e.Message)
	})
	p.OnNavigate(func(e *types.NavigateEvent) {
		step("host: navigate to %s", e.Path)
	})

	settings, err := client.New(client.Config{Source: "settings"}, client.WithRegistry(p.Registry()))
	if err != nil {
		return err
	}
	mode := settings.EmitStateful("theme:changed", map[string]any{"theme": "dark", "isDark": true})
	step("settings: theme:changed published (%s)", mode)

	settings.SetPageTitle("Settings", "Appearance")

	// 标题栏晚于模块挂载，仍然收到最近的标题
	p.OnPageTitle(func(e *types.PageTitleEvent) {
		step("host: title %q / %q", e.Title, e.Subtitle)
	})

	dashboard, err := client.New(client.Config{Source: "dashboard"}, client.WithRegistry(p.Registry()))
	if err != nil {
		return err
	}
	dashboard.OnStateful("theme:changed", func(payload any) {
		step("dashboard: late join received %v", payload)
	})
	dashboard.OnLogout(func() {
		step("dashboard: logout received, clearing local state")
	})

	dashboard.EmitNotification("dashboard ready", types.NotificationSuccess)
	dashboard.Navigate("/dashboard", false)

	if err := p.PublishLogout(ctx); err != nil {
		return err
	}
	_, stillThere := dashboard.GetState("theme:changed")
	step("host: logout done, theme state present = %v", stillThere)

	if s := p.Stats(types.EventLog); s.Emits > 0 {
		step("host: %d wc:log events forwarded by modules", s.Emits)
	}
	return nil
}
