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

// Package config provides configuration management for the FedGuard launcher.
// config 包提供 FedGuard 启动器的配置管理功能。
//
// Configuration loading priority (highest to lowest):
// 配置加载优先级（从高到低）：
// 1. Command line arguments / 命令行参数
// 2. Environment variables / 环境变量
// 3. Configuration file / 配置文件
// 4. Default values / 默认值
//
// The launcher runs with no config file at all: every step has a built-in
// default matching the original fixed launch sequence.
// 启动器在完全没有配置文件时也能运行：每个步骤都有与原始固定启动序列
// 一致的内置默认值。
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default configuration values
// 默认配置值
const (
	DefaultConfigPath    = "fedguard-launcher.yaml"
	DefaultServerProgram = "daphne"
	DefaultBindAddress   = "0.0.0.0"
	DefaultPort          = 8000
	DefaultAppTarget     = "fedguard.asgi:application"
	DefaultLogLevel      = "info"
	DefaultLogFile       = "fedguard-launcher.log"
	DefaultLogMaxSize    = 10 // MB
	DefaultLogMaxBackups = 3
	DefaultLogMaxAge     = 7 // days
)

// DefaultKillProcesses lists the executable names terminated before launch.
// DefaultKillProcesses 列出启动前要终止的可执行文件名。
func DefaultKillProcesses() []string {
	return []string{"daphne", "python"}
}

// Config represents the launcher configuration
// Config 表示启动器配置
type Config struct {
	// Launcher step configuration / 启动器步骤配置
	Launcher LauncherConfig `mapstructure:"launcher" yaml:"launcher"`

	// Server spawn configuration / 服务器启动配置
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Network discovery configuration / 网络发现配置
	Discovery DiscoveryConfig `mapstructure:"discovery" yaml:"discovery"`

	// Log configuration / 日志配置
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LauncherConfig contains the terminate-by-name step settings
// LauncherConfig 包含按名称终止步骤的设置
type LauncherConfig struct {
	// KillProcesses lists executable names to terminate before launch.
	// Zero matches is fine; the step is best-effort cleanup.
	// KillProcesses 列出启动前要终止的可执行文件名。
	// 零匹配没有问题；此步骤是尽力而为的清理。
	KillProcesses []string `mapstructure:"kill_processes" yaml:"kill_processes"`
}

// ServerConfig contains the server spawn settings
// ServerConfig 包含服务器启动设置
type ServerConfig struct {
	// Program is the application server executable
	// Program 是应用服务器可执行文件
	Program string `mapstructure:"program" yaml:"program"`

	// BindAddress is the address the server listens on
	// BindAddress 是服务器监听的地址
	BindAddress string `mapstructure:"bind_address" yaml:"bind_address"`

	// Port is the port the server listens on
	// Port 是服务器监听的端口
	Port int `mapstructure:"port" yaml:"port"`

	// AppTarget is the application entry-point identifier passed to the server
	// AppTarget 是传递给服务器的应用入口点标识符
	AppTarget string `mapstructure:"app_target" yaml:"app_target"`

	// WorkDir is the working directory for the server (optional)
	// WorkDir 是服务器的工作目录（可选）
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir,omitempty"`
}

// DiscoveryConfig contains the network-discovery step settings
// DiscoveryConfig 包含网络发现步骤的设置
type DiscoveryConfig struct {
	// Command is an optional external helper program. When empty, the
	// launcher prints the join banner itself.
	// Command 是可选的外部辅助程序。为空时，启动器自行打印加入横幅。
	Command string `mapstructure:"command" yaml:"command,omitempty"`

	// Args are the helper's arguments / Args 是辅助程序的参数
	Args []string `mapstructure:"args" yaml:"args,omitempty"`
}

// LogConfig contains logging settings
// LogConfig 包含日志设置
type LogConfig struct {
	// Level is the log level (debug, info, warn, error)
	// Level 是日志级别（debug, info, warn, error）
	Level string `mapstructure:"level" yaml:"level"`

	// File is the log file path; empty disables file logging
	// File 是日志文件路径；为空时禁用文件日志
	File string `mapstructure:"file" yaml:"file"`

	// MaxSize is the maximum size of log file in MB before rotation
	// MaxSize 是日志文件轮转前的最大大小（MB）
	MaxSize int `mapstructure:"max_size" yaml:"max_size"`

	// MaxBackups is the maximum number of old log files to retain
	// MaxBackups 是保留的旧日志文件的最大数量
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`

	// MaxAge is the maximum number of days to retain old log files
	// MaxAge 是保留旧日志文件的最大天数
	MaxAge int `mapstructure:"max_age" yaml:"max_age"`
}

// Default returns a Config populated with the built-in defaults.
// Default 返回填充了内置默认值的 Config。
func Default() *Config {
	return &Config{
		Launcher: LauncherConfig{
			KillProcesses: DefaultKillProcesses(),
		},
		Server: ServerConfig{
			Program:     DefaultServerProgram,
			BindAddress: DefaultBindAddress,
			Port:        DefaultPort,
			AppTarget:   DefaultAppTarget,
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			File:       DefaultLogFile,
			MaxSize:    DefaultLogMaxSize,
			MaxBackups: DefaultLogMaxBackups,
			MaxAge:     DefaultLogMaxAge,
		},
	}
}

// Load loads configuration from file and environment variables
// Load 从文件和环境变量加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values / 设置默认值
	setDefaults(v)

	// Set config file path / 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Check environment variable / 检查环境变量
		envPath := os.Getenv("LAUNCHER_CONFIG_PATH")
		if envPath != "" {
			v.SetConfigFile(envPath)
		} else {
			v.SetConfigFile(DefaultConfigPath)
		}
	}

	// Enable environment variable override / 启用环境变量覆盖
	v.SetEnvPrefix("LAUNCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file / 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error: defaults cover everything
		// 缺少配置文件不是错误：默认值覆盖所有设置
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			if _, statErr := os.Stat(v.ConfigFileUsed()); statErr == nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Unmarshal config / 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// Launcher defaults / 启动器默认值
	v.SetDefault("launcher.kill_processes", DefaultKillProcesses())

	// Server defaults / 服务器默认值
	v.SetDefault("server.program", DefaultServerProgram)
	v.SetDefault("server.bind_address", DefaultBindAddress)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.app_target", DefaultAppTarget)
	v.SetDefault("server.work_dir", "")

	// Discovery defaults: built-in banner / 发现默认值：内置横幅
	v.SetDefault("discovery.command", "")
	v.SetDefault("discovery.args", []string{})

	// Log defaults / 日志默认值
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", DefaultLogFile)
	v.SetDefault("log.max_size", DefaultLogMaxSize)
	v.SetDefault("log.max_backups", DefaultLogMaxBackups)
	v.SetDefault("log.max_age", DefaultLogMaxAge)
}

// Validate validates the configuration
// Validate 验证配置
func (c *Config) Validate() error {
	// Validate kill targets / 验证终止目标
	for _, name := range c.Launcher.KillProcesses {
		if strings.TrimSpace(name) == "" {
			return errors.New("launcher.kill_processes contains an empty name")
		}
	}

	// Validate server settings / 验证服务器设置
	if c.Server.Program == "" {
		return errors.New("server.program is required")
	}
	if c.Server.AppTarget == "" {
		return errors.New("server.app_target is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if net.ParseIP(c.Server.BindAddress) == nil {
		return fmt.Errorf("server.bind_address is not a valid IP address: %s", c.Server.BindAddress)
	}

	// Validate log level / 验证日志级别
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	return nil
}

// String returns a string representation of the config (for debugging)
// String 返回配置的字符串表示（用于调试）
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{KillProcesses: %v, Server: %s %s:%d %s, Log.Level: %s}",
		c.Launcher.KillProcesses,
		c.Server.Program,
		c.Server.BindAddress,
		c.Server.Port,
		c.Server.AppTarget,
		c.Log.Level,
	)
}

// ToYAML serializes the configuration to YAML format
// ToYAML 将配置序列化为 YAML 格式
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize config: %w", err)
	}
	return data, nil
}

// LoadFromYAML loads configuration from YAML bytes
// LoadFromYAML 从 YAML 字节加载配置
func LoadFromYAML(yamlData []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults first / 首先设置默认值
	setDefaults(v)

	// Read from bytes / 从字节读取
	if err := v.ReadConfig(strings.NewReader(string(yamlData))); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Unmarshal config / 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Equal compares two configs for equality
// Equal 比较两个配置是否相等
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}

	// Compare Launcher / 比较 Launcher
	if len(c.Launcher.KillProcesses) != len(other.Launcher.KillProcesses) {
		return false
	}
	for i, name := range c.Launcher.KillProcesses {
		if name != other.Launcher.KillProcesses[i] {
			return false
		}
	}

	// Compare Server / 比较 Server
	if c.Server != other.Server {
		return false
	}

	// Compare Discovery / 比较 Discovery
	if c.Discovery.Command != other.Discovery.Command {
		return false
	}
	if len(c.Discovery.Args) != len(other.Discovery.Args) {
		return false
	}
	for i, arg := range c.Discovery.Args {
		if arg != other.Discovery.Args[i] {
			return false
		}
	}

	// Compare Log / 比较 Log
	return c.Log == other.Log
}
