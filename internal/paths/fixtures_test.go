package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveFixturesDir(t *testing.T) {
	root := t.TempDir()

	direct := filepath.Join(root, "direct")
	require.NoError(t, os.MkdirAll(direct, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(direct, "applications.json"), []byte("[]"), 0o600))

	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "fixtures"), 0o750))

	shared := filepath.Join(root, "shared")
	require.NoError(t, os.MkdirAll(shared, 0o750))
	redirected := filepath.Join(root, "redirected")
	require.NoError(t, os.MkdirAll(redirected, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(redirected, "redirect"), []byte("../shared\n"), 0o600))

	empty := filepath.Join(root, "empty-redirect")
	require.NoError(t, os.MkdirAll(empty, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(empty, "redirect"), []byte("  \n"), 0o600))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty means embedded", in: "", want: ""},
		{name: "fixtures dir", in: direct, want: direct},
		{name: "trailing slash cleaned", in: direct + "/", want: direct},
		{name: "project dir", in: project, want: filepath.Join(project, "fixtures")},
		{name: "redirect followed", in: redirected, want: shared},
		{name: "blank redirect ignored", in: empty, want: empty},
		{name: "missing dir passes through", in: filepath.Join(root, "nope"), want: filepath.Join(root, "nope")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveFixturesDir(tt.in))
		})
	}
}
