package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/browserplus/logaccess/internal/config"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset global flags between runs
	cfgFile, verbose, debug, pluginDir, appDataDir = "", false, false, "", ""

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("log"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommandsRegistered(t *testing.T) {
	rootCmd := NewRootCmd()
	AddCommands(rootCmd)

	for _, path := range [][]string{
		{"serve"}, {"get"}, {"service-logs"}, {"describe"},
		{"client", "get"}, {"client", "service-logs"}, {"client", "describe"},
		{"config", "init"}, {"config", "show"}, {"config", "path"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %v not registered", path)
			continue
		}
		if cmd.Short == "" {
			t.Errorf("command %v has no short description", path)
		}
	}
}

func TestGetCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "missing.conf")
	plugin := filepath.Join(dir, "plugin")
	marker := writeFixture(t, filepath.Join(plugin, "Yahoo!", "BrowserPlus", "2.9.8", "id", "BrowserPlusCore.log"))

	out, err := runCLI(t, "get", "--config", cfgPath, "--plugin-dir", plugin)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if strings.TrimSpace(out) != marker {
		t.Errorf("output = %q, want %q", out, marker)
	}

	out, err = runCLI(t, "get", "--config", cfgPath, "--plugin-dir", plugin, "--json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(doc.Files) != 1 || doc.Files[0] != marker {
		t.Errorf("files = %v", doc.Files)
	}
}

func TestGetCommandDeniedOrigin(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "get", "--config", filepath.Join(dir, "none.conf"), "--plugin-dir", dir, "--origin", "http://evil.com/")
	if err == nil || !strings.Contains(err.Error(), "bp.permissionDenied") {
		t.Errorf("expected permission error, got %v", err)
	}
}

func TestServiceLogsCommand(t *testing.T) {
	dir := t.TempDir()
	appData := filepath.Join(dir, "appdata")
	root := filepath.Join(appData, "Yahoo!", "BrowserPlus", "CoreletData")
	a := writeFixture(t, filepath.Join(root, "svcA", "1", "a.log"))
	b := writeFixture(t, filepath.Join(root, "svcB", "2", "b.log"))

	out, err := runCLI(t, "service-logs", "--config", filepath.Join(dir, "none.conf"), "--appdata-dir", appData, "svcA,svcB", "Missing")
	if err != nil {
		t.Fatalf("service-logs failed: %v", err)
	}
	lines := strings.Fields(out)
	if len(lines) != 2 || lines[0] != a || lines[1] != b {
		t.Errorf("output = %q", out)
	}
}

func TestDescribeCommand(t *testing.T) {
	out, err := runCLI(t, "describe")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "LogAccess 1.3.0") || !strings.Contains(out, "services (list, required)") {
		t.Errorf("unexpected description output:\n%s", out)
	}
}

func TestConfigInitShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)

	if _, err := runCLI(t, "config", "init", "--config", path, "--domain", "example.com"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	cfg, err := config.LoadServiceConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Whitelist.Domains != "example.com" {
		t.Errorf("Domains = %q", cfg.Whitelist.Domains)
	}

	out, err := runCLI(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("expected refusal to overwrite, got %q", out)
	}

	out, err = runCLI(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "example.com") || !strings.Contains(out, "CoreletData") {
		t.Errorf("unexpected show output:\n%s", out)
	}

	out, err = runCLI(t, "config", "path", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("path output = %q", out)
	}
}

func TestSplitServices(t *testing.T) {
	got := splitServices([]string{"a,b", " c ", ",", "d"})
	want := []string{"a", "b", "c", "d"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitServices() = %v, want %v", got, want)
	}
}

func TestServeAddress(t *testing.T) {
	tests := []struct {
		name, flag, socket, goos, want string
	}{
		{"flag wins", "/tmp/flag.sock", "/tmp/conf.sock", "linux", "/tmp/flag.sock"},
		{"config socket on unix", "", "/tmp/conf.sock", "darwin", "/tmp/conf.sock"},
		{"config socket ignored on windows", "", "/tmp/conf.sock", "windows", ""},
		{"pipe flag on windows", `\\.\pipe\custom`, "/tmp/conf.sock", "windows", `\\.\pipe\custom`},
		{"nothing set", "", "", "linux", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serveAddress(tt.flag, tt.socket, tt.goos); got != tt.want {
				t.Errorf("serveAddress(%q, %q, %q) = %q, want %q", tt.flag, tt.socket, tt.goos, got, tt.want)
			}
		})
	}
}
