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
	"fmt"
	"time"

	gops "github.com/shirou/gopsutil/v3/process"
)

// Info describes a discovered process.
// Info 描述一个被发现的进程。
type Info struct {
	// PID is the process ID / PID 是进程 ID
	PID int32 `json:"pid"`

	// Name is the executable name / Name 是可执行文件名
	Name string `json:"name"`

	// Cmdline is the full command line (may be empty if unreadable)
	// Cmdline 是完整命令行（不可读时可能为空）
	Cmdline string `json:"cmdline,omitempty"`

	// StartTime is when the process was started
	// StartTime 是进程启动的时间
	StartTime time.Time `json:"start_time"`

	// Uptime is the duration the process has been running
	// Uptime 是进程运行的持续时间
	Uptime time.Duration `json:"uptime"`
}

// Scanner discovers running processes by executable name.
// Scanner 按可执行文件名发现正在运行的进程。
type Scanner struct{}

// NewScanner creates a new Scanner instance.
// NewScanner 创建一个新的 Scanner 实例。
func NewScanner() *Scanner {
	return &Scanner{}
}

// FindByName returns information about every running process whose executable
// name matches the given literal. No matches yields an empty slice, not an
// error.
// FindByName 返回所有可执行文件名匹配给定字面量的运行中进程的信息。
// 没有匹配时返回空切片，而不是错误。
func (s *Scanner) FindByName(ctx context.Context, name string) ([]*Info, error) {
	procs, err := gops.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate processes: %w / 枚举进程失败：%w", err, err)
	}

	var found []*Info
	for _, p := range procs {
		pname, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if !MatchesName(pname, name) {
			continue
		}

		info := &Info{
			PID:  p.Pid,
			Name: pname,
		}

		// Command line and start time are nice-to-have; either may be
		// unreadable for processes of other users.
		// 命令行和启动时间是锦上添花的信息；对于其他用户的进程，两者都可能不可读。
		if cmdline, err := p.CmdlineWithContext(ctx); err == nil {
			info.Cmdline = cmdline
		}
		if createMs, err := p.CreateTimeWithContext(ctx); err == nil && createMs > 0 {
			info.StartTime = time.UnixMilli(createMs)
			info.Uptime = time.Since(info.StartTime)
		}

		found = append(found, info)
	}

	return found, nil
}
