package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBaseDirs(t *testing.T) {
	tests := []struct {
		name string
		fn   func() string
	}{
		{"ConfigHome", ConfigHome},
		{"StateHome", StateHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn()
			if got == "" {
				t.Fatalf("%s() returned empty string", tt.name)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("%s() = %q, want absolute path", tt.name, got)
			}
			if again := tt.fn(); again != got {
				t.Errorf("%s() not consistent: %q != %q", tt.name, got, again)
			}
		})
	}
}

func TestAppPaths(t *testing.T) {
	tests := []struct {
		name   string
		got    string
		parent string
		base   string
	}{
		{"ConfigDir", ConfigDir(), ConfigHome(), AppName},
		{"ConfigFile", ConfigFile(), ConfigDir(), ConfigFileName},
		{"LogFile", LogFile(), filepath.Join(StateHome(), AppName), "gedcheck.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if filepath.Dir(tt.got) != tt.parent {
				t.Errorf("%s() = %q, want it under %q", tt.name, tt.got, tt.parent)
			}
			if filepath.Base(tt.got) != tt.base {
				t.Errorf("%s() base = %q, want %q", tt.name, filepath.Base(tt.got), tt.base)
			}
			if !strings.Contains(tt.got, AppName) {
				t.Errorf("%s() = %q, want it to contain %q", tt.name, tt.got, AppName)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates new directory with default perms", func(t *testing.T) {
		path := filepath.Join(tmpDir, "new-dir")
		if err := EnsureDir(path, 0); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if !info.IsDir() {
			t.Errorf("expected directory, got file")
		}
		if info.Mode().Perm() != DefaultDirPerm {
			t.Errorf("expected perm %o, got %o", DefaultDirPerm, info.Mode().Perm())
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		path := filepath.Join(tmpDir, "state", AppName)
		if err := EnsureDir(path, 0o700); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("stat failed: %v", err)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		path := filepath.Join(tmpDir, "existing")
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatal(err)
		}

		if err := EnsureDir(path, 0o700); err != nil {
			t.Errorf("EnsureDir failed on existing directory: %v", err)
		}

		// MkdirAll does not change permissions of existing directories.
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("expected original perm 0755 to be preserved, got %o", info.Mode().Perm())
		}
	})
}
