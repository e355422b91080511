package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePrepender(t *testing.T) {
	got := filePrepender("/tmp/docs/toolkitlog_config_set.md")
	assert.Contains(t, got, `title: "toolkitlog config set"`)
}

func TestLinkHandler(t *testing.T) {
	assert.Equal(t, "/reference/toolkitlog_log/", linkHandler("toolkitlog_log.md"))
}

func TestGenDoc_Markdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	t.Cleanup(func() {
		_ = genDocCmd.Flags().Set("dir", "")
		_ = genDocCmd.Flags().Set("man", "false")
	})

	_, _, err := execute(t, "", "gen-doc", "--dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "toolkitlog_pipe.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Log each line read from stdin")
}
