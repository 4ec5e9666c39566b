package command

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/isis-go/internal/infra/imageio"
	"github.com/yndnr/isis-go/pkg/bitplane"
)

// testApp runs the real application against in-memory streams.
type testApp struct {
	app    *cli.App
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// newTestApp isolates the app from the user's config and environment.
func newTestApp(t *testing.T, stdin string) *testApp {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ISIS_PASSWORD", "")
	t.Setenv("ISIS_CONFIG", "")

	a := &testApp{}
	a.app = App()
	a.app.Reader = strings.NewReader(stdin)
	a.app.Writer = &a.stdout
	a.app.ErrWriter = &a.stderr
	a.app.ExitErrHandler = func(*cli.Context, error) {}
	return a
}

func (a *testApp) run(args ...string) error {
	return a.app.Run(append([]string{"isis"}, args...))
}

// writeCarrier saves a random h×w PNG carrier and returns its path.
func writeCarrier(t *testing.T, dir string, h, w int) string {
	t.Helper()
	g, err := bitplane.NewGrid(h, w, imageio.Channels)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	rand.New(rand.NewSource(int64(h*31+w))).Read(g.Pix)

	path := filepath.Join(dir, "carrier.png")
	if err := imageio.Save(g, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return path
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
