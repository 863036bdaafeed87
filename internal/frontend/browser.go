package frontend

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// browserCommand returns the command that opens url. A non-empty browser
// (the BROWSER environment variable) wins over the platform default.
func browserCommand(goos, browser, url string) (*exec.Cmd, error) {
	if browser != "" {
		return exec.Command(browser, url), nil //nolint:gosec // BROWSER is user-controlled
	}
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// OpenBrowser opens url in the default browser without waiting for it.
// Callers fall back to printing the URL on error.
func OpenBrowser(url string) error {
	cmd, err := browserCommand(runtime.GOOS, os.Getenv("BROWSER"), url)
	if err != nil {
		return err
	}
	return cmd.Start()
}
