/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_PreservesKeyOrder(t *testing.T) {
	value, err := ParseJSON([]byte(`{"z": 1, "a": 2, "m": {"require": "./c.js", "import": "./e.js"}}`))
	require.NoError(t, err)

	obj, ok := AsObject(value)
	require.True(t, ok)

	keys := make([]string, 0, obj.Len())
	for _, m := range obj.Members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	nested, ok := obj.Get("m")
	require.True(t, ok)
	conditions, ok := AsObject(nested)
	require.True(t, ok)
	assert.Equal(t, "require", conditions.Members[0].Key)
	assert.Equal(t, "import", conditions.Members[1].Key)
}

func TestParseJSON_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	value, err := ParseJSON([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	obj, _ := AsObject(value)
	require.Equal(t, 2, obj.Len())
	assert.Equal(t, "a", obj.Members[0].Key)
	assert.Equal(t, Number(3), obj.Members[0].Value)
}

func TestParseJSON_Kinds(t *testing.T) {
	value, err := ParseJSON([]byte(`{"s": "x", "n": 1.5, "t": true, "f": false, "z": null, "a": [1, "two"]}`))
	require.NoError(t, err)
	obj, _ := AsObject(value)

	tests := []struct {
		key  string
		kind Kind
	}{
		{"s", KindString},
		{"n", KindNumber},
		{"t", KindBool},
		{"f", KindBool},
		{"z", KindNull},
		{"a", KindArray},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, ok := obj.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := ParseJSON([]byte(`{"name": `))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestParsePackageJSON(t *testing.T) {
	pkg, err := ParsePackageJSON([]byte(`{
		"name": "@scope/pkg",
		"version": "1.2.3",
		"type": "module",
		"main": "./lib/index.js",
		"typings": "./lib/index.d.ts",
		"exports": {".": "./lib/index.js"},
		"imports": {"#internal": "./src/internal.js"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "@scope/pkg", pkg.Name)
	assert.Equal(t, "1.2.3", pkg.Version)
	assert.Equal(t, "module", pkg.Type)
	assert.Equal(t, "./lib/index.js", pkg.Main)
	assert.Equal(t, "./lib/index.d.ts", pkg.Types)
	assert.Equal(t, KindObject, pkg.Exports.Kind())
	assert.Equal(t, KindObject, pkg.Imports.Kind())

	v, ok := pkg.GetValueByPath("exports", ".")
	require.True(t, ok)
	assert.Equal(t, String("./lib/index.js"), v)

	_, ok = pkg.GetValueByPath("exports", "./missing")
	assert.False(t, ok)

	_, ok = pkg.GetValueByPath("name", "nested")
	assert.False(t, ok, "strings have no members")
}

func TestParsePackageJSON_NonStringMainIgnored(t *testing.T) {
	pkg, err := ParsePackageJSON([]byte(`{"main": ["a.js"], "name": 7}`))
	require.NoError(t, err)

	assert.Empty(t, pkg.Main)
	assert.Empty(t, pkg.Name)
	assert.Nil(t, pkg.Exports)

	v, ok := pkg.GetValueByPath("main")
	require.True(t, ok)
	assert.Equal(t, KindArray, v.Kind())
}

func TestParsePackageJSON_RootMustBeObject(t *testing.T) {
	_, err := ParsePackageJSON([]byte(`["not", "an", "object"]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestParseTsConfigJSON(t *testing.T) {
	data := []byte(`{
		// tsconfig files allow comments
		"extends": ["@tsconfig/node20/tsconfig.json", "./base.json"],
		"compilerOptions": {
			"baseUrl": "./src",
			"paths": {
				"@app/*": ["./app/*"],
				"~": "./root",
			},
			"types": ["node"],
		},
		"references": [{"path": "../shared"}],
	}`)

	cfg, err := ParseTsConfigJSON("/project/tsconfig.json", data)
	require.NoError(t, err)

	assert.Equal(t, "/project/tsconfig.json", cfg.Path)
	assert.Equal(t, []string{"@tsconfig/node20/tsconfig.json", "./base.json"}, cfg.Extends)
	assert.Equal(t, "/project/src", cfg.CompilerOptions.BaseURL)
	assert.Equal(t, []string{"node"}, cfg.CompilerOptions.Types)
	assert.Equal(t, []string{"../shared"}, cfg.References)

	require.Len(t, cfg.CompilerOptions.Paths, 2)
	assert.Equal(t, PathMapping{Pattern: "@app/*", Substitutions: []string{"./app/*"}}, cfg.CompilerOptions.Paths[0])
	assert.Equal(t, PathMapping{Pattern: "~", Substitutions: []string{"./root"}}, cfg.CompilerOptions.Paths[1])
}
