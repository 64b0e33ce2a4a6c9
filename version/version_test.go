package version

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		build string
		want  string
	}{
		{"", "0.1.0"},
		{"rc1", "0.1.0-rc1"},
		{"3f2a9c1", "0.1.0-3f2a9c1"},
		{"abc-DEF-123", "0.1.0-abc-DEF-123"},
		{"bad build", "0.1.0"},
		{"bad/build", "0.1.0"},
		{"dirty+1", "0.1.0"},
	}
	for _, test := range tests {
		if got := formatVersion(test.build); got != test.want {
			t.Errorf("formatVersion(%q): got %q, want %q", test.build, got, test.want)
		}
	}
}

func TestVersion(t *testing.T) {
	if got := Version(); got != "0.1.0" {
		t.Errorf("Version: got %q, want %q", got, "0.1.0")
	}
	if got := UserAgent(); got != "/programmingbitcoin:0.1.0/" {
		t.Errorf("UserAgent: got %q, want %q", got, "/programmingbitcoin:0.1.0/")
	}
}
