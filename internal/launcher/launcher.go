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

// Package launcher provides the four-step launch sequence for the FedGuard server.
// launcher 包提供 FedGuard 服务器的四步启动序列。
//
// The sequence is a straight line with no branching on failure:
// 该序列是一条直线，失败时不分支：
// 1. Terminate previous server processes by name / 按名称终止旧的服务器进程
// 2. Announce the LAN join URL / 宣告局域网加入 URL
// 3. Spawn the application server, detached / 分离式启动应用服务器
// 4. Hold the console open on operator input / 阻塞控制台等待操作员输入
//
// Every step is best-effort: its outcome is recorded and deliberately
// discarded, never propagated to the next step.
// 每个步骤都是尽力而为的：其结果被记录并有意丢弃，绝不传播到下一步。
package launcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/fedguard/launcher/internal/config"
	"github.com/fedguard/launcher/internal/netinfo"
	"github.com/fedguard/launcher/internal/process"
)

// Step identifies one of the four launch steps
// Step 标识四个启动步骤之一
type Step string

const (
	// StepTerminate is the terminate-by-name cleanup step
	// StepTerminate 是按名称终止的清理步骤
	StepTerminate Step = "terminate"

	// StepDiscover is the network-discovery announcement step
	// StepDiscover 是网络发现宣告步骤
	StepDiscover Step = "discover"

	// StepSpawn is the detached server spawn step
	// StepSpawn 是分离式服务器启动步骤
	StepSpawn Step = "spawn"

	// StepHold is the hold-console-open step
	// StepHold 是阻塞控制台步骤
	StepHold Step = "hold"
)

// StepResult records the outcome of a single step.
// StepResult 记录单个步骤的结果。
//
// The sequence collects results but never acts on them: a recorded error is
// an intentionally ignored outcome, visible for logs and tests only.
// 序列收集结果但从不依据它们行动：记录下的错误是有意忽略的结果，
// 仅对日志和测试可见。
type StepResult struct {
	// Step is the step this result belongs to / Step 是此结果所属的步骤
	Step Step `json:"step"`

	// Detail is a human-readable summary / Detail 是可读的摘要
	Detail string `json:"detail,omitempty"`

	// Err is the recorded, deliberately unhandled error (nil on success)
	// Err 是被记录但有意不处理的错误（成功时为 nil）
	Err error `json:"-"`
}

// Terminator terminates processes by executable name.
// Terminator 按可执行文件名终止进程。
type Terminator interface {
	TerminateByName(ctx context.Context, name string) (int, error)
}

// Spawner starts a detached background process.
// Spawner 启动一个分离的后台进程。
type Spawner interface {
	SpawnDetached(cmd process.Command) (int, error)
}

// Runner executes a foreground command with inherited console output.
// Runner 执行一个继承控制台输出的前台命令。
type Runner interface {
	Run(ctx context.Context, cmd process.Command) error
}

// Launcher executes the four launch steps in strict sequence.
// Launcher 按严格顺序执行四个启动步骤。
type Launcher struct {
	cfg    *config.Config
	logger *zap.Logger

	terminator Terminator
	spawner    Spawner
	runner     Runner

	// out receives console output / out 接收控制台输出
	out io.Writer

	// in is the operator input the hold step blocks on
	// in 是阻塞步骤等待的操作员输入
	in io.Reader

	// localIP resolves the LAN address for the announcement banner
	// localIP 为宣告横幅解析局域网地址
	localIP func() string
}

// New creates a Launcher wired to the real OS collaborators.
// New 创建一个连接到真实操作系统协作者的 Launcher。
func New(cfg *config.Config, logger *zap.Logger) *Launcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	spawner := process.NewSpawner()
	return &Launcher{
		cfg:        cfg,
		logger:     logger,
		terminator: process.NewKiller(),
		spawner:    spawner,
		runner:     spawner,
		out:        os.Stdout,
		in:         os.Stdin,
		localIP:    netinfo.LocalIP,
	}
}

// SetTerminator replaces the terminate-by-name collaborator (for tests).
// SetTerminator 替换按名称终止的协作者（用于测试）。
func (l *Launcher) SetTerminator(t Terminator) { l.terminator = t }

// SetSpawner replaces the spawn collaborator (for tests).
// SetSpawner 替换启动协作者（用于测试）。
func (l *Launcher) SetSpawner(s Spawner) { l.spawner = s }

// SetRunner replaces the foreground-command collaborator (for tests).
// SetRunner 替换前台命令协作者（用于测试）。
func (l *Launcher) SetRunner(r Runner) { l.runner = r }

// SetConsole replaces the console writer and operator input (for tests).
// SetConsole 替换控制台输出和操作员输入（用于测试）。
func (l *Launcher) SetConsole(out io.Writer, in io.Reader) {
	l.out = out
	l.in = in
}

// SetLocalIPFunc replaces the LAN address resolver (for tests).
// SetLocalIPFunc 替换局域网地址解析器（用于测试）。
func (l *Launcher) SetLocalIPFunc(f func() string) { l.localIP = f }

// ServerCommand builds the exact server invocation for the spawn step.
// ServerCommand 构建 spawn 步骤的确切服务器调用。
func (l *Launcher) ServerCommand() process.Command {
	return process.Command{
		Program: l.cfg.Server.Program,
		Args: []string{
			"-b", l.cfg.Server.BindAddress,
			"-p", strconv.Itoa(l.cfg.Server.Port),
			l.cfg.Server.AppTarget,
		},
		Dir:         l.cfg.Server.WorkDir,
		Detach:      true,
		QuietErrors: true,
	}
}

// Run executes the four steps in order and always reaches the hold step,
// regardless of earlier outcomes. The returned results carry the recorded,
// intentionally ignored errors of every step.
// Run 按顺序执行四个步骤，无论之前的结果如何都会到达阻塞步骤。
// 返回的结果携带每个步骤被记录但有意忽略的错误。
func (l *Launcher) Run(ctx context.Context) []StepResult {
	results := make([]StepResult, 0, 4)

	fmt.Fprintln(l.out, "========================================")
	fmt.Fprintln(l.out, "  FedGuard Launcher")
	fmt.Fprintln(l.out, "  FedGuard 启动器")
	fmt.Fprintln(l.out, "========================================")

	results = append(results, l.stepTerminate(ctx))
	results = append(results, l.stepDiscover(ctx))
	results = append(results, l.stepSpawn())
	results = append(results, l.stepHold())

	return results
}

// stepTerminate terminates every configured process name, quietly.
// stepTerminate 静默终止每个配置的进程名。
func (l *Launcher) stepTerminate(ctx context.Context) StepResult {
	fmt.Fprintln(l.out, "[1/4] Stopping previous server processes... / 停止旧的服务器进程...")

	result := StepResult{Step: StepTerminate}
	total := 0
	for _, name := range l.cfg.Launcher.KillProcesses {
		killed, err := l.terminator.TerminateByName(ctx, name)
		if err != nil {
			// Best-effort cleanup: record and move on, say nothing on console
			// 尽力而为的清理：记录并继续，控制台不输出任何内容
			l.logger.Warn("terminate step error",
				zap.String("name", name),
				zap.Error(err))
			result.Err = err
			continue
		}
		total += killed
		l.logger.Info("terminate step",
			zap.String("name", name),
			zap.Int("killed", killed))
	}

	result.Detail = fmt.Sprintf("terminated %d process(es)", total)
	return result
}

// stepDiscover announces the LAN join URL, either via the built-in banner or
// by running the configured external helper with inherited console output.
// stepDiscover 宣告局域网加入 URL：使用内置横幅，或运行配置的外部辅助程序
// 并继承控制台输出。
func (l *Launcher) stepDiscover(ctx context.Context) StepResult {
	fmt.Fprintln(l.out, "[2/4] Discovering local network address... / 发现本机网络地址...")

	result := StepResult{Step: StepDiscover}

	if l.cfg.Discovery.Command != "" {
		// External helper: its output goes to the console, its exit code is
		// recorded but not acted on.
		// 外部辅助程序：输出写到控制台，退出码被记录但不依据它行动。
		cmd := process.Command{
			Program:     l.cfg.Discovery.Command,
			Args:        l.cfg.Discovery.Args,
			QuietErrors: true,
		}
		if err := l.runner.Run(ctx, cmd); err != nil {
			l.logger.Warn("discovery helper error", zap.Error(err))
			result.Err = err
		}
		result.Detail = cmd.String()
		return result
	}

	ip := l.localIP()
	if err := netinfo.Announce(l.out, ip, l.cfg.Server.Port); err != nil {
		result.Err = err
	}
	result.Detail = netinfo.JoinURL(ip, l.cfg.Server.Port)
	l.logger.Info("discovery step", zap.String("ip", ip))
	return result
}

// stepSpawn starts the application server detached from the launcher.
// stepSpawn 启动与启动器分离的应用服务器。
func (l *Launcher) stepSpawn() StepResult {
	fmt.Fprintln(l.out, "[3/4] Starting FedGuard server... / 启动 FedGuard 服务器...")

	result := StepResult{Step: StepSpawn}
	cmd := l.ServerCommand()

	pid, err := l.spawner.SpawnDetached(cmd)
	if err != nil {
		// The run proceeds to hold-open either way; the operator sees
		// whatever the failed program printed on the shared console.
		// 无论如何运行都会进入阻塞步骤；操作员会在共享控制台上看到
		// 失败程序打印的内容。
		l.logger.Warn("spawn step error",
			zap.String("command", cmd.String()),
			zap.Error(err))
		result.Err = err
		result.Detail = cmd.String()
		return result
	}

	result.Detail = fmt.Sprintf("%s (pid %d)", cmd.String(), pid)
	l.logger.Info("spawn step",
		zap.String("command", cmd.String()),
		zap.Int("pid", pid))
	return result
}

// stepHold prints the hold-open banner and blocks until the operator provides
// a line of input (or the input source closes).
// stepHold 打印阻塞横幅并等待操作员输入一行（或输入源关闭）。
func (l *Launcher) stepHold() StepResult {
	fmt.Fprintln(l.out, "[4/4] Server is running in the background. / 服务器已在后台运行。")
	fmt.Fprintln(l.out, "")
	fmt.Fprintln(l.out, "Press Enter to close this launcher (the server keeps running)...")
	fmt.Fprintln(l.out, "按回车键关闭此启动器（服务器继续运行）...")

	result := StepResult{Step: StepHold}

	_, err := bufio.NewReader(l.in).ReadString('\n')
	if err != nil && err != io.EOF {
		result.Err = err
	}
	result.Detail = "operator dismissed"
	l.logger.Info("hold step released")
	return result
}
