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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedguard/launcher/internal/config"
)

// TestStatusTargets tests the deduplicated scan target list
// TestStatusTargets 测试去重后的扫描目标列表
func TestStatusTargets(t *testing.T) {
	cfg := config.Default()

	// Default server program "daphne" is also a kill target; it must appear once
	// 默认服务器程序 "daphne" 也是终止目标；它必须只出现一次
	assert.Equal(t, []string{"daphne", "python"}, statusTargets(cfg))

	cfg.Launcher.KillProcesses = []string{"python", "", "uvicorn", "python"}
	assert.Equal(t, []string{"daphne", "python", "uvicorn"}, statusTargets(cfg))

	cfg.Server.Program = ""
	assert.Equal(t, []string{"python", "uvicorn"}, statusTargets(cfg))
}

// TestSubcommandsRegistered tests that all operator commands hang off the root
// TestSubcommandsRegistered 测试所有操作员命令挂在根命令下
func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"version", "stop", "find-ip", "status", "config"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	// config init hangs off config / config init 挂在 config 下
	found := false
	for _, c := range configCmd.Commands() {
		if c.Name() == "init" {
			found = true
		}
	}
	require.True(t, found, "missing config init subcommand")
}
