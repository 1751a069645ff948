package resolver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cssmodules/internal/engine/alias"
)

func TestPatternFinder_Forms(t *testing.T) {
	f := NewPatternFinder(nil)
	cases := []struct {
		name   string
		source string
		want   Binding
		ok     bool
	}{
		{
			name:   "default import single quotes",
			source: "import React from 'react';\nimport styles from './a.less';\n",
			want:   Binding{Identifier: "styles", Specifier: "./a.less", Form: FormImport},
			ok:     true,
		},
		{
			name:   "default import double quotes",
			source: `import styles from "../styles/index.less"`,
			want:   Binding{Identifier: "styles", Specifier: "../styles/index.less", Form: FormImport},
			ok:     true,
		},
		{
			name:   "namespace import",
			source: `import * as styles from '@/theme/button.less';`,
			want:   Binding{Identifier: "styles", Specifier: "@/theme/button.less", Form: FormImport},
			ok:     true,
		},
		{
			name:   "require",
			source: `const styles = require('./a.less');`,
			want:   Binding{Identifier: "styles", Specifier: "./a.less", Form: FormRequire},
			ok:     true,
		},
		{
			name:   "var require with spaces",
			source: `var styles=require( "./a.less" )`,
			want:   Binding{Identifier: "styles", Specifier: "./a.less", Form: FormRequire},
			ok:     true,
		},
		{
			name:   "other identifier",
			source: `import stylesheet from './a.less';`,
		},
		{
			name:   "not a stylesheet",
			source: `import styles from './a.module.css';`,
		},
		{
			name:   "no import",
			source: `const styles = {};`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := f.FindBinding("styles", []byte(tc.source), "/src/App.tsx")
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPatternFinder_ImportBeatsRequire(t *testing.T) {
	src := "const s = require('./req.less');\nimport s from './imp.less';\n"
	got, ok := NewPatternFinder(nil).FindBinding("s", []byte(src), "")
	require.True(t, ok)
	assert.Equal(t, "./imp.less", got.Specifier)
}

func TestPatternFinder_ConfiguredExtensions(t *testing.T) {
	f := NewPatternFinder([]string{"css", ".SCSS", ""})
	got, ok := f.FindBinding("styles", []byte(`import styles from './a.module.css'`), "")
	require.True(t, ok)
	assert.Equal(t, "./a.module.css", got.Specifier)

	_, ok = f.FindBinding("styles", []byte(`import styles from './a.less'`), "")
	assert.False(t, ok)

	_, ok = f.FindBinding("st.yles", []byte(`import st.yles from './a.css'`), "")
	assert.False(t, ok)
}

func TestResolvePath_Alias(t *testing.T) {
	aliases := alias.Resolve(map[string]string{"@": "${workspaceRoot}/src"}, "", "/proj")
	got := ResolvePath("@/styles/a.less", aliases, "/proj/src/pages/Home.tsx")
	assert.Equal(t, filepath.FromSlash("/proj/src/styles/a.less"), got)
}

func TestResolvePath_RelativeFallback(t *testing.T) {
	aliases := alias.Map{"@": filepath.FromSlash("/proj/src")}
	src := filepath.FromSlash("/proj/src/pages/Home.tsx")

	assert.Equal(t, filepath.FromSlash("/proj/src/pages/a.less"), ResolvePath("./a.less", aliases, src))
	assert.Equal(t, filepath.FromSlash("/proj/src/shared/b.less"), ResolvePath("../shared/b.less", aliases, src))
	assert.Equal(t, filepath.FromSlash("/proj/src/pages/c.less"), ResolvePath("c.less", nil, src))
	assert.Equal(t, filepath.FromSlash("/proj/src/pages/~/d.less"), ResolvePath("~/d.less", aliases, src))
}

func TestResolve(t *testing.T) {
	src := filepath.FromSlash("/proj/src/App.jsx")
	got, ok := Resolve("styles", "import styles from './a.less';", nil, src)
	require.True(t, ok)
	assert.Equal(t, filepath.FromSlash("/proj/src/a.less"), got)

	_, ok = Resolve("styles", "import other from './a.less';", nil, src)
	assert.False(t, ok)
}
