package version

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersionInfoKeepsLinkedValues(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	info := GetVersionInfo()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestInfoFormats(t *testing.T) {
	info := Info{Version: "1.0.0", Branch: "main", Revision: "abc1234", BuiltAt: "now", GoVersion: "go1.24"}

	assert.True(t, strings.HasPrefix(info.String(), "Version: 1.0.0\nBranch: main"))

	s, err := info.JSON()
	require.NoError(t, err)
	var back Info
	require.NoError(t, json.Unmarshal([]byte(s), &back))
	assert.Equal(t, info, back)
}
