package pathspec

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		requested string
		want      string
	}{
		{"first file", "", "site.pol", "site.pol"},
		{"first file absolute", "", "/etc/site.pol", "/etc/site.pol"},
		{"relative sibling", "/etc/policies/sub/file.pol", "other.pol", "/etc/policies/sub/other.pol"},
		{"absolute request", "/etc/policies/sub/file.pol", "/abs/other.pol", "/abs/other.pol"},
		{"relative current", "policies/site.pol", "base/*.pol", "policies/base/*.pol"},
		{"bare current", "site.pol", "base.pol", "./base.pol"},
		{"parent reference kept", "/etc/policies/sub/file.pol", "../top.pol", "/etc/policies/sub/../top.pol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.current, tt.requested); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.current, tt.requested, got, tt.want)
			}
		})
	}
}

func TestResolve_DoesNotModifyCurrent(t *testing.T) {
	current := "/etc/policies/sub/file.pol"
	_ = Resolve(current, "other.pol")
	if current != "/etc/policies/sub/file.pol" {
		t.Errorf("current modified to %q", current)
	}
}
