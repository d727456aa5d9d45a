package claude

import "testing"

func TestDecodeProjectPath(t *testing.T) {
	tests := []struct {
		encoded string
		want    string
	}{
		{"-Users-alice-code-webapp", "/Users/alice/code/webapp"},
		{"-home-bob-project", "/home/bob/project"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := DecodeProjectPath(tc.encoded); got != tc.want {
			t.Errorf("DecodeProjectPath(%q) = %q, want %q", tc.encoded, got, tc.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Round trip holds for paths without literal hyphens.
	paths := []string{
		"/Users/alice/code/webapp",
		"/home/bob/project",
		"/tmp/x",
	}
	for _, p := range paths {
		if got := DecodeProjectPath(EncodeProjectPath(p)); got != p {
			t.Errorf("round trip of %q = %q", p, got)
		}
	}
}

func TestDecodeProjectPath_HyphenAmbiguity(t *testing.T) {
	// A hyphen in the original directory name decodes as a slash. The
	// encoding is lossy and this is the documented behavior.
	got := DecodeProjectPath("-Users-alice-my-app")
	if got != "/Users/alice/my/app" {
		t.Errorf("DecodeProjectPath = %q, want %q", got, "/Users/alice/my/app")
	}
}

func TestProjectDirName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"-Users-alice-code-webapp", "webapp"},
		{"-home-bob-api", "api"},
		{"", "Unknown"},
	}
	for _, tc := range tests {
		pd := ProjectDir{Key: tc.key, Path: DecodeProjectPath(tc.key)}
		if got := pd.Name(); got != tc.want {
			t.Errorf("Name(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
