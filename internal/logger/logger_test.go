/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	Info("resolved %d specifiers", 3)
	assert.Contains(t, buf.String(), "resolved 3 specifiers")

	buf.Reset()
	Warn("skipping %s", "broken.json")
	assert.Contains(t, buf.String(), "skipping broken.json")

	buf.Reset()
	Debug("hidden")
	assert.Empty(t, buf.String(), "debug output requires verbose mode")

	SetVerbose(true)
	Debug("trace %q", "lodash")
	assert.Contains(t, buf.String(), `trace "lodash"`)
}

func TestResolverAdapter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	var l Resolver
	l.Warning("bad manifest in %s", "/pkg")
	l.Debug("matched condition %q", "import")

	out := buf.String()
	assert.Contains(t, out, "bad manifest in /pkg")
	assert.Contains(t, out, `matched condition "import"`)
}

func TestSilenced(t *testing.T) {
	SetOutput(io.Discard)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	assert.NotPanics(t, func() {
		Warn("nobody hears this")
	})
}
