package logdir

import "testing"

func TestParseVersionTag(t *testing.T) {
	tests := []struct {
		name   string
		want   VersionTag
		wantOK bool
	}{
		{"2", VersionTag{2, Unspecified, Unspecified}, true},
		{"2.8", VersionTag{2, 8, Unspecified}, true},
		{"2.8.1", VersionTag{2, 8, 1}, true},
		{"0", VersionTag{0, Unspecified, Unspecified}, true},
		{"02.010", VersionTag{2, 10, Unspecified}, true},
		{"2.8.1.4", VersionTag{}, false},
		{"", VersionTag{}, false},
		{"abc", VersionTag{}, false},
		{"2.x", VersionTag{}, false},
		{"2.", VersionTag{}, false},
		{".2", VersionTag{}, false},
		{"2..1", VersionTag{}, false},
		{"v2", VersionTag{}, false},
		{"V2.1", VersionTag{}, false},
		{"2.8.1a", VersionTag{}, false},
		{"2.8.1-beta", VersionTag{}, false},
		{" 2", VersionTag{}, false},
		{"-1", VersionTag{}, false},
		{"+1", VersionTag{}, false},
		{"99999999999999999999999", VersionTag{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVersionTag(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ParseVersionTag(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseVersionTag(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestVersionTagMajorOnly(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"1", true},
		{"12", true},
		{"1.0", false},
		{"1.2.3", false},
	}

	for _, tt := range tests {
		v, ok := ParseVersionTag(tt.name)
		if !ok {
			t.Fatalf("ParseVersionTag(%q) failed", tt.name)
		}
		if got := v.IsMajorOnly(); got != tt.want {
			t.Errorf("%q.IsMajorOnly() = %v, want %v", tt.name, got, tt.want)
		}
		if got := MajorOnly(v); got != tt.want {
			t.Errorf("MajorOnly(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestVersionTagString(t *testing.T) {
	for _, name := range []string{"3", "3.1", "3.1.4"} {
		v, _ := ParseVersionTag(name)
		if v.String() != name {
			t.Errorf("String() = %q, want %q", v.String(), name)
		}
	}
}
