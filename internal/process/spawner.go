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

package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Common errors for process spawning
// 进程启动的常见错误
var (
	// ErrEmptyProgram indicates the command has no program path
	// ErrEmptyProgram 表示命令没有程序路径
	ErrEmptyProgram = errors.New("command program is empty")

	// ErrSpawnFailed indicates the child process failed to start
	// ErrSpawnFailed 表示子进程启动失败
	ErrSpawnFailed = errors.New("process failed to start")
)

// Command is a declarative description of an external process invocation.
// Command 是外部进程调用的声明式描述。
//
// The launch steps are built from Command values instead of inline shell
// calls, so the exact invocation is inspectable and testable.
// 启动步骤由 Command 值构建而非内联 shell 调用，
// 因此确切的调用方式是可检查和可测试的。
type Command struct {
	// Program is the executable to run / Program 是要运行的可执行文件
	Program string `json:"program"`

	// Args is the argument list, in order / Args 是按顺序的参数列表
	Args []string `json:"args,omitempty"`

	// Dir is the working directory (optional) / Dir 是工作目录（可选）
	Dir string `json:"dir,omitempty"`

	// Env holds extra environment variables appended to the inherited ones
	// Env 保存追加到继承环境之上的额外环境变量
	Env map[string]string `json:"env,omitempty"`

	// Detach places the child in its own process group so the launcher's
	// exit cannot take it down
	// Detach 将子进程放入独立的进程组，使启动器退出不会影响它
	Detach bool `json:"detach"`

	// QuietErrors marks the invocation as best-effort: callers record the
	// error and move on instead of failing the run
	// QuietErrors 将调用标记为尽力而为：调用方记录错误并继续，而不是使运行失败
	QuietErrors bool `json:"quiet_errors"`
}

// String returns the command as a single shell-like line (for logs).
// String 将命令返回为单行类 shell 形式（用于日志）。
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Spawner starts external processes.
// Spawner 启动外部进程。
type Spawner struct{}

// NewSpawner creates a new Spawner instance.
// NewSpawner 创建一个新的 Spawner 实例。
func NewSpawner() *Spawner {
	return &Spawner{}
}

// SpawnDetached starts the command as a background process and releases it.
// SpawnDetached 将命令作为后台进程启动并释放它。
//
// The child inherits the launcher's console so its output stays visible, but
// it runs in its own process group: the launcher holds no reference to it,
// never waits for it, and the child's lifetime is independent of the
// launcher's.
// 子进程继承启动器的控制台以保持输出可见，但运行在独立的进程组中：
// 启动器不持有对它的引用，不等待它，子进程的生命周期独立于启动器。
func (s *Spawner) SpawnDetached(cmd Command) (int, error) {
	if cmd.Program == "" {
		return 0, ErrEmptyProgram
	}

	execCmd := exec.Command(cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}

	// Inherit console / 继承控制台
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr

	execCmd.Env = os.Environ()
	for k, v := range cmd.Env {
		execCmd.Env = append(execCmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	if cmd.Detach {
		// Separate process group, so killing the launcher won't kill the server
		// 独立进程组，杀死启动器不会杀死服务器
		setProcGroupAttr(execCmd)
	}

	if err := execCmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	pid := execCmd.Process.Pid

	// Drop the handle: liveness, port binding and exit status all belong to
	// the server program, not to the launcher.
	// 释放句柄：存活状态、端口绑定和退出状态都属于服务器程序，而不是启动器。
	_ = execCmd.Process.Release()

	return pid, nil
}

// Run executes the command in the foreground with inherited console output
// and blocks until it exits. Used for the network-discovery helper step.
// Run 在前台执行命令，继承控制台输出，并阻塞直到它退出。
// 用于网络发现辅助程序步骤。
func (s *Spawner) Run(ctx context.Context, cmd Command) error {
	if cmd.Program == "" {
		return ErrEmptyProgram
	}

	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}

	// The helper's output goes straight to the console; the launcher does
	// not parse it.
	// 辅助程序的输出直接写到控制台；启动器不解析它。
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	execCmd.Stdin = os.Stdin

	execCmd.Env = os.Environ()
	for k, v := range cmd.Env {
		execCmd.Env = append(execCmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	return execCmd.Run()
}
