/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package main is the entry point for the FedGuard launcher.
// main 包是 FedGuard 启动器的入口点。
//
// The launcher is an operator CLI that:
// 启动器是一个操作员 CLI，负责：
// - Terminates previous server processes by name / 按名称终止旧的服务器进程
// - Announces the LAN join URL / 宣告局域网加入 URL
// - Spawns the FedGuard application server, detached / 分离式启动 FedGuard 应用服务器
// - Holds the console open for the operator / 为操作员保持控制台打开
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fedguard/launcher/internal/config"
	"github.com/fedguard/launcher/internal/launcher"
	"github.com/fedguard/launcher/internal/logging"
	"github.com/fedguard/launcher/internal/netinfo"
	"github.com/fedguard/launcher/internal/process"
)

// Version information, set at build time
// 版本信息，在构建时设置
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// configFile is the path to the configuration file
// configFile 是配置文件的路径
var configFile string

// rootCmd runs the four-step launch sequence
// rootCmd 运行四步启动序列
var rootCmd = &cobra.Command{
	Use:   "fedguard-launcher",
	Short: "FedGuard Launcher - Start the federated learning host on your LAN",
	Long: `FedGuard Launcher boots the FedGuard federated learning server.
FedGuard Launcher 启动 FedGuard 联邦学习服务器。

It performs four steps in order:
它按顺序执行四个步骤：
- Stop previous server processes / 停止旧的服务器进程
- Print the local network join URL / 打印局域网加入 URL
- Start the application server in the background / 在后台启动应用服务器
- Keep the console open until dismissed / 保持控制台打开直到被关闭`,
	RunE: runLaunch,
}

// versionCmd shows version information
// versionCmd 显示版本信息
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information / 打印版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FedGuard Launcher\n")
		fmt.Printf("  Version:    %s\n", Version)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Go Version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

// stopCmd runs the terminate-by-name step on its own
// stopCmd 单独运行按名称终止步骤
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop running server processes / 停止正在运行的服务器进程",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		killer := process.NewKiller()
		total := 0
		for _, name := range cfg.Launcher.KillProcesses {
			killed, err := killer.TerminateByName(cmd.Context(), name)
			if err != nil {
				// Same quiet contract as the launch step
				// 与启动步骤相同的静默约定
				continue
			}
			total += killed
		}

		fmt.Printf("Stopped %d process(es) / 停止了 %d 个进程\n", total, total)
		return nil
	},
}

// findIPCmd prints the LAN join banner on its own
// findIPCmd 单独打印局域网加入横幅
var findIPCmd = &cobra.Command{
	Use:   "find-ip",
	Short: "Print the local network join URL / 打印局域网加入 URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		return netinfo.Announce(os.Stdout, netinfo.LocalIP(), cfg.Server.Port)
	},
}

// statusCmd lists running server processes without touching them
// statusCmd 列出正在运行的服务器进程而不触碰它们
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List running server processes / 列出正在运行的服务器进程",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		scanner := process.NewScanner()
		found := 0
		for _, name := range statusTargets(cfg) {
			infos, err := scanner.FindByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			for _, info := range infos {
				found++
				fmt.Printf("Process: %s\nPID: %d\nUptime: %v\nCommand: %s\n\n",
					info.Name, info.PID, info.Uptime.Round(time.Second), info.Cmdline)
			}
		}

		if found == 0 {
			fmt.Println("No server processes found / 未找到服务器进程")
		}
		return nil
	},
}

// configCmd groups configuration subcommands
// configCmd 组织配置子命令
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities / 配置工具",
}

// configInitCmd writes the default configuration file
// configInitCmd 写出默认配置文件
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file / 写出默认配置文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile
		if path == "" {
			path = config.DefaultConfigPath
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s / 配置文件已存在：%s", path, path)
		}

		data, err := config.Default().ToYAML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w / 写配置文件失败：%w", err, err)
		}

		fmt.Printf("Wrote default config to %s / 已将默认配置写入 %s\n", path, path)
		return nil
	},
}

func init() {
	// Add flags to root command
	// 向根命令添加标志
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: fedguard-launcher.yaml)")

	// Add subcommands
	// 添加子命令
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(versionCmd, stopCmd, findIPCmd, statusCmd, configCmd)
}

// loadConfig loads and validates the configuration, then builds the file logger.
// loadConfig 加载并验证配置，然后构建文件日志器。
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w / 加载配置失败：%w", err, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w / 无效配置：%w", err, err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logging: %w / 初始化日志失败：%w", err, err)
	}

	return cfg, logger, nil
}

// statusTargets returns the process names the status command scans for:
// the server program plus the configured kill targets, deduplicated.
// statusTargets 返回 status 命令扫描的进程名：
// 服务器程序加上配置的终止目标，去重。
func statusTargets(cfg *config.Config) []string {
	seen := map[string]bool{}
	var names []string
	for _, name := range append([]string{cfg.Server.Program}, cfg.Launcher.KillProcesses...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// runLaunch is the main entry point for the launch sequence
// runLaunch 是启动序列的主入口点
func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	l := launcher.New(cfg, logger)

	// The sequence never fails: every step outcome is recorded, logged, and
	// deliberately discarded.
	// 序列永不失败：每个步骤的结果都被记录、写入日志并有意丢弃。
	results := l.Run(context.Background())
	for _, r := range results {
		if r.Err != nil {
			logger.Warn("step finished with ignored error",
				zap.String("step", string(r.Step)),
				zap.Error(r.Err))
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
