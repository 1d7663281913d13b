/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/modresolve/internal/version"
)

func TestWrite(t *testing.T) {
	info := version.BuildInfo{
		Version:   "v0.3.0",
		GitCommit: "abc1234",
		GitTag:    "v0.3.0",
		BuildTime: "2026-01-02T03:04:05Z",
		GoVersion: "go1.25.5",
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, "text", info))
		assert.Equal(t, "modresolve v0.3.0\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, "json", info))
		assert.JSONEq(t, `{
			"version": "v0.3.0",
			"gitCommit": "abc1234",
			"gitTag": "v0.3.0",
			"buildTime": "2026-01-02T03:04:05Z",
			"dirty": false,
			"goVersion": "go1.25.5"
		}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, "yaml", info))
		assert.Contains(t, buf.String(), "gitCommit: abc1234")
	})
}
