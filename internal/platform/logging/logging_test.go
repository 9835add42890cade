// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/characters-gateway/internal/platform/logging"
)

/*
TestDir_TestMode verifies the test harness writes to a separate tree.
*/
func TestDir_TestMode(t *testing.T) {
	assert.Equal(t, "logs", logging.Dir("development", "logs"))
	assert.Equal(t, "test_logs", logging.Dir("test", "logs"))
	assert.Equal(t, filepath.Join("/var", "test_logs"), logging.Dir("test", "/var/logs"))
}

/*
TestNew_RoutesByLevel checks the error sink only receives errors while the info sink gets both.
*/
func TestNew_RoutesByLevel(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	console := &bytes.Buffer{}

	logger, err := logging.New(logging.Options{Environment: "development", Dir: dir, Console: console})
	require.NoError(t, err)

	logger.Info("greeting_served")
	logger.Error("upstream_request_failed")
	require.NoError(t, logger.Close())

	errorLog, err := os.ReadFile(filepath.Join(dir, "error", "error.log"))
	require.NoError(t, err)
	infoLog, err := os.ReadFile(filepath.Join(dir, "info", "info.log"))
	require.NoError(t, err)

	assert.NotContains(t, string(errorLog), "greeting_served")
	assert.Contains(t, string(errorLog), "upstream_request_failed")
	assert.Contains(t, string(infoLog), "greeting_served")
	assert.Contains(t, string(infoLog), "upstream_request_failed")
	assert.Contains(t, string(infoLog), `"app":"characters-gateway"`)
	assert.Contains(t, console.String(), "greeting_served")
}

/*
TestNew_ProductionHasNoConsole verifies production logs only to files.
*/
func TestNew_ProductionHasNoConsole(t *testing.T) {
	console := &bytes.Buffer{}

	logger, err := logging.New(logging.Options{Environment: "production", Dir: t.TempDir(), Console: console})
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("configuration_loaded")
	assert.Empty(t, console.String())
}

/*
TestNew_RotatesBySize verifies a sink rolls over once it reaches MaxSizeMB.
*/
func TestNew_RotatesBySize(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := logging.New(logging.Options{Environment: "production", Dir: dir, MaxSizeMB: 1})
	require.NoError(t, err)

	payload := strings.Repeat("x", 64*1024)
	for range 24 {
		logger.Info("character_list_served", "payload", payload)
	}
	require.NoError(t, logger.Close())

	entries, err := os.ReadDir(filepath.Join(dir, "info"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2)
}
