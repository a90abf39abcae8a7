package validation

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func TestValidateServiceName(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectValid bool
	}{
		{"simple", "FileTransfer", true},
		{"with_dash", "Json-RPC", true},
		{"with_dots", "Foo.Bar.1", true},
		{"double_dot_inside", "Foo..Bar", true},
		{"hidden", ".hidden", true},
		{"spaces", "My Service", true},

		{"empty", "", false},
		{"dot", ".", false},
		{"dotdot", "..", false},
		{"unix_traversal", "../etc", false},
		{"windows_traversal", `..\Windows`, false},
		{"nested", "a/b", false},
		{"absolute", "/etc/passwd", false},
		{"null_byte", "svc\x00", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateServiceName(tc.input)
			if tc.expectValid && err != nil {
				t.Errorf("ValidateServiceName(%q) unexpected error: %v", tc.input, err)
			}
			if !tc.expectValid {
				if err == nil {
					t.Errorf("ValidateServiceName(%q) expected error", tc.input)
				} else if !errors.Is(err, ErrInvalidName) {
					t.Errorf("ValidateServiceName(%q) error %v does not wrap ErrInvalidName", tc.input, err)
				}
			}
		})
	}
}

func TestValidateServiceNameVolume(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("volume names only exist on Windows")
	}
	if err := ValidateServiceName("C:"); err == nil {
		t.Error("expected error for drive-relative name")
	}
}

func TestValidatePathInDirectory(t *testing.T) {
	base := t.TempDir()

	testCases := []struct {
		name        string
		path        string
		expectValid bool
	}{
		{"child", "svc", true},
		{"nested", filepath.Join("svc", "1"), true},
		{"base_itself", ".", true},
		{"absolute_inside", filepath.Join(base, "svc"), true},
		{"inner_traversal", filepath.Join("svc", "..", "other"), true},

		{"parent", "..", false},
		{"escape", filepath.Join("..", "sibling"), false},
		{"absolute_outside", filepath.Dir(base), false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePathInDirectory(tc.path, base)
			if tc.expectValid && err != nil {
				t.Errorf("ValidatePathInDirectory(%q) unexpected error: %v", tc.path, err)
			}
			if !tc.expectValid && err == nil {
				t.Errorf("ValidatePathInDirectory(%q) expected error", tc.path)
			}
		})
	}

	if err := ValidatePathInDirectory("svc", ""); err == nil {
		t.Error("expected error for empty base directory")
	}
}
