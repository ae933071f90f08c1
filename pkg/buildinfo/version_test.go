package buildinfo

import (
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{"v0.3.0", "1a2b3c4d5e6f", "2025-01-02T15:04:05Z"}, "v0.3.0 (1a2b3c4, 2025-01-02T15:04:05Z)"},
		{Info{"dev", "none", "unknown"}, "dev (none, unknown)"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestGetPrefersLdflags(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v9.9.9", "abc", "today"

	if got := Get(); got != (Info{"v9.9.9", "abc", "today"}) {
		t.Errorf("Get() = %+v", got)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} ") || !strings.HasSuffix(tmpl, ")\n") {
		t.Errorf("Template() = %q", tmpl)
	}
}
