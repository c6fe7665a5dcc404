package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aetherweave/go-portalbus/config"
	"github.com/aetherweave/go-portalbus/pkg/lib/log"
)

var logger = log.Logger("portalbus/cmd")

// rootOptions 全局参数
type rootOptions struct {
	configFile string
	envFile    string
	preset     string
	logLevel   string
	logFormat  string

	// cfg 由 PersistentPreRunE 加载
	cfg *config.Config
}

// newRootCommand 创建根命令
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（PORTALBUS_* 前缀，可来自 .env）
//  3. 配置文件（JSON / YAML）
//  4. 预设默认值
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "portalbus",
		Short: "Micro-frontend portal event bus",
		Long:  "Host-side runtime and tooling for the portal cross-module event bus.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "配置文件路径（.json / .yaml）")
	flags.StringVar(&opts.envFile, "env-file", ".env", "环境变量文件")
	flags.StringVar(&opts.preset, "preset", "", "预设配置 (full/degraded/minimal/debug)")
	flags.StringVar(&opts.logLevel, "log-level", "", "日志级别 (debug/info/warn/error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "日志格式 (text/json)")

	cmd.AddCommand(
		newRunCommand(opts),
		newDemoCommand(opts),
		newCatalogCommand(),
		newVersionCommand(),
	)
	return cmd
}

// load 加载配置并安装日志
func (o *rootOptions) load(cmd *cobra.Command) error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("加载环境变量文件失败: %w", err)
		}
	}

	cfg := config.NewConfig()
	if o.configFile != "" {
		loaded, err := config.LoadFile(o.configFile)
		if err != nil {
			return fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return fmt.Errorf("环境变量无效: %w", err)
	}
	if err := config.ApplyPreset(cfg, o.preset); err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}

	if err := config.ValidateAll(cfg); err != nil {
		return err
	}

	log.Setup(cfg.Log.Level, log.Format(cfg.Log.Format))
	logger.Debug("配置已加载", "config", o.configFile, "preset", o.preset)

	o.cfg = cfg
	return nil
}
