package confkit_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pricetrack-api/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFKIT_TEST_DIR", "sub")
	tests := []struct {
		name string
		base string
		file string
		want string
	}{
		{name: "absolute", base: "/base", file: "/abs/ingest.yaml", want: "/abs/ingest.yaml"},
		{name: "relative", base: "/base", file: "etc/ingest.yaml", want: "/base/etc/ingest.yaml"},
		{name: "env", base: "/base", file: "${CONFKIT_TEST_DIR}/ingest.yaml", want: "/base/sub/ingest.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, confkit.ResolvePath(tt.base, tt.file))
		})
	}
	require.Equal(t, "/etc/pricetrack", confkit.BaseDir("/etc/pricetrack/app.yaml"))
}

func TestSectionHydrate(t *testing.T) {
	var empty confkit.Section[int]
	require.NoError(t, empty.Hydrate("/base", func(string) (*int, error) {
		t.Fatal("loader must not run for an empty section")
		return nil, nil
	}))
	require.False(t, empty.Configured())

	s := confkit.Section[int]{File: "n.yaml"}
	require.True(t, s.Configured())
	n := 7
	require.NoError(t, s.Hydrate("/base", func(p string) (*int, error) {
		require.Equal(t, "/base/n.yaml", p)
		return &n, nil
	}))
	require.Equal(t, "/base/n.yaml", s.File)
	require.Equal(t, 7, *s.Value)

	failing := confkit.Section[int]{File: "bad.yaml"}
	require.Error(t, failing.Hydrate("/base", func(string) (*int, error) { return nil, errors.New("boom") }))
	require.Equal(t, "bad.yaml", failing.File)
}

func TestDuration(t *testing.T) {
	t.Setenv("CONFKIT_TEST_WAIT", "90s")
	d, ok, err := confkit.Duration(" ${CONFKIT_TEST_WAIT} ")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 90*time.Second, d)

	_, ok, err = confkit.Duration("")
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = confkit.Duration("later")
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	type small struct {
		Name  string
		Limit int `json:",default=5"`
	}
	dir := t.TempDir()
	p := filepath.Join(dir, "small.yaml")
	require.NoError(t, os.WriteFile(p, []byte("Name: ${CONFKIT_TEST_NAME}\n"), 0o600))
	t.Setenv("CONFKIT_TEST_NAME", "quotes")

	cfg, err := confkit.LoadFile[small](p, true)
	require.NoError(t, err)
	require.Equal(t, "quotes", cfg.Name)
	require.Equal(t, 5, cfg.Limit)

	_, err = confkit.LoadFile[small](filepath.Join(dir, "missing.yaml"), false)
	require.Error(t, err)
}

func TestProjectPath(t *testing.T) {
	p, err := confkit.ProjectPath("go.mod")
	require.NoError(t, err)
	_, statErr := os.Stat(p)
	require.NoError(t, statErr)
}
