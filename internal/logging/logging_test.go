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

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedguard/launcher/internal/config"
)

// TestNewWritesToFile tests that the logger writes to the configured file
// TestNewWritesToFile 测试日志器写入配置的文件
func TestNewWritesToFile(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "launcher.log")

	logger, err := New(config.LogConfig{
		Level:      "info",
		File:       logFile,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("launcher started")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "launcher started")
}

// TestNewEmptyFileIsNop tests that an empty path disables file logging
// TestNewEmptyFileIsNop 测试空路径禁用文件日志
func TestNewEmptyFileIsNop(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "info"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Safe to use / 可以安全使用
	logger.Info("dropped")
}

// TestNewInvalidLevel tests rejection of unknown log levels
// TestNewInvalidLevel 测试拒绝未知日志级别
func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{
		Level: "loud",
		File:  filepath.Join(t.TempDir(), "launcher.log"),
	})
	require.Error(t, err)
}
