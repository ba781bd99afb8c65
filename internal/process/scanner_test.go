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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFindByNameFindsSelf tests scanning using the test binary itself
// TestFindByNameFindsSelf 测试使用测试二进制自身进行扫描
func TestFindByNameFindsSelf(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	scanner := NewScanner()
	infos, err := scanner.FindByName(context.Background(), filepath.Base(exe))
	require.NoError(t, err)
	require.NotEmpty(t, infos)

	// Our own PID must be among the matches / 自身的 PID 必须在匹配结果中
	selfPID := int32(os.Getpid())
	found := false
	for _, info := range infos {
		if info.PID == selfPID {
			found = true
			assert.NotEmpty(t, info.Name)
		}
	}
	assert.True(t, found, "own PID %d not found in scan results", selfPID)
}

// TestFindByNameNoMatches tests that zero matches is an empty result, not an error
// TestFindByNameNoMatches 测试零匹配返回空结果而不是错误
func TestFindByNameNoMatches(t *testing.T) {
	scanner := NewScanner()

	infos, err := scanner.FindByName(context.Background(), "fedguard-no-such-process-abc123")
	require.NoError(t, err)
	assert.Empty(t, infos)
}
