package browser

import (
	"errors"
	"testing"
)

func TestOpenRejectsNonWebLinks(t *testing.T) {
	for _, u := range []string{"", "/jobs", "file:///etc/passwd", "javascript:alert(1)", "https://"} {
		if err := Open(u); !errors.Is(err, ErrUnsupportedURL) {
			t.Errorf("Open(%q) = %v, want ErrUnsupportedURL", u, err)
		}
	}
}

func TestLauncher(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs int
		wantErr  bool
	}{
		{"darwin", "open", 1, false},
		{"linux", "xdg-open", 1, false},
		{"windows", "rundll32", 2, false},
		{"plan9", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := launcher(tt.goos, "https://nemesisgroup.in/terms")
			if (err != nil) != tt.wantErr {
				t.Fatalf("launcher(%q) err = %v, wantErr %v", tt.goos, err, tt.wantErr)
			}
			if name != tt.wantName || len(args) != tt.wantArgs {
				t.Errorf("launcher(%q) = %q %v", tt.goos, name, args)
			}
			if !tt.wantErr && args[len(args)-1] != "https://nemesisgroup.in/terms" {
				t.Errorf("link not passed last: %v", args)
			}
		})
	}
}
