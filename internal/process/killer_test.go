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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatchesName tests executable name matching
// TestMatchesName 测试可执行文件名匹配
func TestMatchesName(t *testing.T) {
	tests := []struct {
		name     string
		observed string
		target   string
		want     bool
	}{
		{"exact match", "daphne", "daphne", true},
		{"case insensitive", "Python", "python", true},
		{"windows suffix", "daphne.exe", "daphne", true},
		{"windows suffix both", "PYTHON.EXE", "python.exe", true},
		{"surrounding space", "  daphne ", "daphne", true},
		{"different name", "daphne", "python", false},
		{"prefix is not a match", "python3", "python", false},
		{"substring is not a match", "daphne", "aph", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesName(tt.observed, tt.target))
		})
	}
}

// TestTerminateByNameNoMatches tests the quiet zero-match contract
// TestTerminateByNameNoMatches 测试零匹配的静默约定
func TestTerminateByNameNoMatches(t *testing.T) {
	killer := NewKiller()

	// A name no real process carries / 真实进程不会使用的名字
	killed, err := killer.TerminateByName(context.Background(), "fedguard-no-such-process-abc123")

	// No matches is not an error / 没有匹配不是错误
	require.NoError(t, err)
	assert.Equal(t, 0, killed)
}

// TestTerminateByNameEmptyName tests rejection of empty targets
// TestTerminateByNameEmptyName 测试拒绝空目标
func TestTerminateByNameEmptyName(t *testing.T) {
	killer := NewKiller()

	_, err := killer.TerminateByName(context.Background(), "   ")
	require.Error(t, err)
}

// TestKillerNeverTargetsSelf tests that the launcher's own PID is excluded
// TestKillerNeverTargetsSelf 测试启动器自身的 PID 被排除
func TestKillerNeverTargetsSelf(t *testing.T) {
	killer := NewKiller()
	assert.NotZero(t, killer.selfPID)
}
