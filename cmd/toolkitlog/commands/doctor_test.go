package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/toolkitlog/internal/errors"
)

func TestDoctor_Healthy(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(env.logFile), 0o700))

	out, _, err := execute(t, "", "doctor", "--verbose", "--config", env.configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "[config] config-file: config file is valid")
	assert.Contains(t, out, "Summary: 2 passed, 1 info, 0 warnings, 0 errors")
}

func TestDoctor_JSON(t *testing.T) {
	env := newTestEnv(t, nil)

	out, _, err := execute(t, "", "doctor", "--json", "--config", env.configFile)
	require.NoError(t, err)

	var report struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 3)
	assert.Equal(t, "config-file", report.Results[0].Name)
	assert.Equal(t, "pass", report.Results[0].Status)
}

func TestDoctor_FixPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	env := newTestEnv(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(env.logFile), 0o700))
	require.NoError(t, os.WriteFile(env.logFile, nil, 0o600))
	require.NoError(t, os.Chmod(env.logFile, 0o644))

	_, _, err := execute(t, "", "doctor", "--config", env.configFile)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	out, _, err := execute(t, "", "doctor", "--fix", "--config", env.configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "fix "+env.logFile+": chmod 0600")

	info, err := os.Stat(env.logFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDoctor_MutuallyExclusiveFlags(t *testing.T) {
	env := newTestEnv(t, nil)

	_, _, err := execute(t, "", "doctor", "--json", "--quiet", "--config", env.configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
