package frontend

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBrowserCommand(t *testing.T) {
	const url = "http://127.0.0.1:8787/"

	tests := []struct {
		goos     string
		browser  string
		wantBin  string
		wantArgs []string
	}{
		{goos: "darwin", wantBin: "open", wantArgs: []string{url}},
		{goos: "linux", wantBin: "xdg-open", wantArgs: []string{url}},
		{goos: "freebsd", wantBin: "xdg-open", wantArgs: []string{url}},
		{goos: "windows", wantBin: "rundll32", wantArgs: []string{"url.dll,FileProtocolHandler", url}},
		{goos: "plan9", browser: "firefox", wantBin: "firefox", wantArgs: []string{url}},
		{goos: "linux", browser: "w3m", wantBin: "w3m", wantArgs: []string{url}},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.browser, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, tt.browser, url)
			require.NoError(t, err)
			require.Equal(t, tt.wantBin, filepath.Base(cmd.Args[0]))
			require.Equal(t, tt.wantArgs, cmd.Args[1:])
		})
	}
}

func TestBrowserCommand_UnsupportedPlatform(t *testing.T) {
	_, err := browserCommand("plan9", "", "http://example.com")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported platform: plan9")
}

func TestOpenBrowser_UsesBrowserEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on the true binary")
	}
	t.Setenv("BROWSER", "true")
	require.NoError(t, OpenBrowser("http://127.0.0.1:8787/?status=offer"))
}
