// Package main 提供 portalbus 命令行入口
//
// 子命令：
//
//	portalbus run       启动宿主门户，暴露 prometheus 指标，打印模块事件
//	portalbus demo      在进程内演示晚加入者回放与登出重置
//	portalbus catalog   列出标准事件目录
//	portalbus version   显示版本信息
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
