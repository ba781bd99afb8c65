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

// Package process provides OS process management for the FedGuard launcher.
// process 包为 FedGuard 启动器提供操作系统进程管理功能。
//
// This package provides:
// 此包提供：
// - Terminate-by-name with quiet semantics / 按名称终止进程（静默语义）
// - Detached server spawn / 分离式服务器进程启动
// - Process scanning by name / 按名称扫描进程
package process

import (
	"context"
	"fmt"
	"os"
	"strings"

	gops "github.com/shirou/gopsutil/v3/process"
)

// Killer forcibly terminates processes by executable name.
// Killer 按可执行文件名强制终止进程。
//
// Termination is best-effort by contract: zero matches is not an error, and
// per-process kill failures (already exited, permission denied) are swallowed.
// 终止操作按约定是尽力而为的：零匹配不是错误，单个进程的终止失败
// （已退出、权限不足）会被吞掉。
type Killer struct {
	// selfPID is never terminated, so the launcher cannot kill itself
	// even when its own executable name is in the target list.
	// selfPID 永远不会被终止，即使启动器自身的可执行文件名在目标列表中，
	// 启动器也不会杀死自己。
	selfPID int32
}

// NewKiller creates a new Killer instance.
// NewKiller 创建一个新的 Killer 实例。
func NewKiller() *Killer {
	return &Killer{
		selfPID: int32(os.Getpid()),
	}
}

// TerminateByName forcibly terminates all processes whose executable name
// matches the given literal. It returns the number of processes killed.
// TerminateByName 强制终止所有可执行文件名匹配给定字面量的进程，
// 返回被终止的进程数量。
//
// A nil error with a zero count means no matching process was running.
// 返回 nil 错误且计数为零表示没有匹配的进程在运行。
func (k *Killer) TerminateByName(ctx context.Context, name string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("process name is empty / 进程名为空")
	}

	procs, err := gops.ProcessesWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate processes: %w / 枚举进程失败：%w", err, err)
	}

	killed := 0
	for _, p := range procs {
		if p.Pid == k.selfPID {
			continue
		}

		pname, err := p.NameWithContext(ctx)
		if err != nil {
			// Process may have exited between enumeration and inspection
			// 进程可能在枚举和检查之间退出了
			continue
		}

		if !MatchesName(pname, name) {
			continue
		}

		// Forced kill, errors discarded: the process may already be gone,
		// or belong to another user.
		// 强制终止，错误被丢弃：进程可能已经消失，或属于其他用户。
		if err := p.KillWithContext(ctx); err == nil {
			killed++
		}
	}

	return killed, nil
}

// MatchesName reports whether an observed executable name matches a target
// literal. The comparison is case-insensitive and ignores a ".exe" suffix so
// the same target list works on Unix and Windows.
// MatchesName 判断观察到的可执行文件名是否匹配目标字面量。
// 比较不区分大小写并忽略 ".exe" 后缀，使同一目标列表在 Unix 和 Windows 上都适用。
func MatchesName(observed, target string) bool {
	return normalizeName(observed) == normalizeName(target)
}

// normalizeName lowercases a process name and strips a ".exe" suffix.
// normalizeName 将进程名转为小写并去掉 ".exe" 后缀。
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".exe")
}
