/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "strings"

// nodeBuiltins lists the modules Node.js accepts without the "node:" prefix.
// Prefix-only modules such as "node:test" are matched by IsNodeBuiltin's
// prefix check instead.
var nodeBuiltins = map[string]struct{}{
	"_http_agent":         {},
	"_http_client":        {},
	"_http_common":        {},
	"_http_incoming":      {},
	"_http_outgoing":      {},
	"_http_server":        {},
	"_stream_duplex":      {},
	"_stream_passthrough": {},
	"_stream_readable":    {},
	"_stream_transform":   {},
	"_stream_wrap":        {},
	"_stream_writable":    {},
	"_tls_common":         {},
	"_tls_wrap":           {},
	"assert":              {},
	"assert/strict":       {},
	"async_hooks":         {},
	"buffer":              {},
	"child_process":       {},
	"cluster":             {},
	"console":             {},
	"constants":           {},
	"crypto":              {},
	"dgram":               {},
	"diagnostics_channel": {},
	"dns":                 {},
	"dns/promises":        {},
	"domain":              {},
	"events":              {},
	"fs":                  {},
	"fs/promises":         {},
	"http":                {},
	"http2":               {},
	"https":               {},
	"inspector":           {},
	"inspector/promises":  {},
	"module":              {},
	"net":                 {},
	"os":                  {},
	"path":                {},
	"path/posix":          {},
	"path/win32":          {},
	"perf_hooks":          {},
	"process":             {},
	"punycode":            {},
	"querystring":         {},
	"readline":            {},
	"readline/promises":   {},
	"repl":                {},
	"stream":              {},
	"stream/consumers":    {},
	"stream/promises":     {},
	"stream/web":          {},
	"string_decoder":      {},
	"sys":                 {},
	"timers":              {},
	"timers/promises":     {},
	"tls":                 {},
	"trace_events":        {},
	"tty":                 {},
	"url":                 {},
	"util":                {},
	"util/types":          {},
	"v8":                  {},
	"vm":                  {},
	"wasi":                {},
	"worker_threads":      {},
	"zlib":                {},
}

// IsNodeBuiltin reports whether spec names a Node.js builtin module, either
// through the "node:" scheme or as one of the unprefixed builtin names.
func IsNodeBuiltin(spec string) bool {
	if strings.HasPrefix(spec, "node:") {
		return true
	}
	_, ok := nodeBuiltins[spec]
	return ok
}
