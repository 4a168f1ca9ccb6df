// Package browser opens site links in the system browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedURL is returned for anything but an absolute http(s) link.
var ErrUnsupportedURL = errors.New("browser: only http and https links can be opened")

// Open opens rawURL in the user's default browser.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	name, args, err := launcher(runtime.GOOS, u.String())
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// launcher returns the command that opens link on goos.
func launcher(goos, link string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{link}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{link}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}, nil
	default:
		return "", nil, fmt.Errorf("browser: unsupported OS: %s", goos)
	}
}
