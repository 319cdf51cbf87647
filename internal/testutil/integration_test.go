package testutil

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/geoterm/mapview-control/internal/ui"
)

// runBinary executes the built binary with an isolated HOME and working
// directory, returning combined output and the exit code.
func runBinary(t *testing.T, bin string, args ...string) (string, int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	tdir := t.TempDir()
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = tdir
	cmd.Env = append(os.Environ(), "HOME="+tdir)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("run binary: %v\n%s", err, out)
	}
	return string(out), exitErr.ExitCode()
}

func TestBinaryRejectsMissingPortalDir(t *testing.T) {
	bin := buildBinary(t)
	out, code := runBinary(t, bin, "-portal-dir", filepath.Join(t.TempDir(), "absent"))
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d\n%s", code, out)
	}
	if !strings.Contains(out, "Configuration error") {
		t.Fatalf("expected configuration error message, got:\n%s", out)
	}
}

func TestBinaryRejectsPortalDirFile(t *testing.T) {
	bin := buildBinary(t)
	dir := WriteCatalogDir(t, map[string]string{"parks.webmap.json": ParksDocument})
	out, code := runBinary(t, bin, "-portal-dir", filepath.Join(dir, "parks.webmap.json"))
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d\n%s", code, out)
	}
	if !strings.Contains(out, "not a directory") {
		t.Fatalf("expected directory complaint, got:\n%s", out)
	}
}

func TestBinaryRejectsNegativeWidth(t *testing.T) {
	bin := buildBinary(t)
	out, code := runBinary(t, bin, "-width", "-1")
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d\n%s", code, out)
	}
	if !strings.Contains(out, "width must be >= 0") {
		t.Fatalf("expected width complaint, got:\n%s", out)
	}
}

func TestMapPlaceholderGolden(t *testing.T) {
	m := ui.NewModel(ui.ModelOptions{Width: 40, Height: 12})
	assertGolden(t, filepath.Join("capture", "map_placeholder.txt"), m.View())
}
