package meshio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DataDog/zstd"

	"github.com/mbartelt/cellvol/lib/eq"
	"github.com/mbartelt/cellvol/lib/mesh"
)

func TestRead(t *testing.T) {
	listing := `# cell volumes for the demo case
thread interior
0.00125
0.00118   # trailing comments are fine
0.00094

thread wall
thread outlet
1e-7
`

	d, err := ReadBytes([]byte(listing))
	if err != nil { t.Fatalf("Unexpected error: %v", err) }

	names := []string{}
	for i := 0; i < d.Threads(); i++ {
		names = append(names, d.Thread(i).Name())
	}
	if !eq.Strings(names, []string{"interior", "wall", "outlet"}) {
		t.Fatalf("Expected threads [interior wall outlet], got %v.", names)
	}

	wants := [][]float64{{0.00125, 0.00118, 0.00094}, {}, {1e-7}}
	for i, want := range wants {
		got := d.Thread(i).Volumes(nil)
		if !eq.Float64s(got, want) {
			t.Errorf("%d) Expected volumes %v for thread '%s', got %v.",
				i, want, names[i], got)
		}
	}
}

func TestReadEmpty(t *testing.T) {
	d, err := ReadBytes([]byte("# nothing but comments\n\n"))
	if err != nil { t.Fatalf("Unexpected error: %v", err) }
	if d.Threads() != 0 || d.Cells() != 0 {
		t.Errorf("Expected an empty domain, got %d threads and %d cells.",
			d.Threads(), d.Cells())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		listing  string
		lineText string
		errText  string
	}{
		{"0.5\n", "Line 1", "before any thread header"},
		{"thread\n0.5\n", "Line 1", "thread header"},
		{"thread a b\n", "Line 1", "thread header"},
		{"thread interior\nabc\n", "Line 2", "cannot be parsed"},
		{"thread interior\n0.5 0.6\n", "Line 2", "single cell volume"},
		{"thread interior\n-0.5\n", "Line 2", "negative"},
		{"thread interior\nNaN\n", "Line 2", "non-finite"},
		{"thread interior\n+Inf\n", "Line 2", "non-finite"},
		{"thread interior\nthread interior\n", "Line 2", "more than once"},
	}

	for i := range tests {
		_, err := ReadBytes([]byte(tests[i].listing))
		if err == nil {
			t.Errorf("%d) Expected an error, got none.", i)
			continue
		}
		if !strings.Contains(err.Error(), tests[i].errText) {
			t.Errorf("%d) Expected an error containing '%s', got '%v'.",
				i, tests[i].errText, err)
		}
		if !strings.Contains(err.Error(), tests[i].lineText) {
			t.Errorf("%d) Expected an error naming '%s', got '%v'.",
				i, tests[i].lineText, err)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	d := buildDomain(t, map[string][]float64{
		"interior": {0.00125, 1.0 / 3.0, 4096.0625},
		"outlet":   {2e-300},
	}, []string{"interior", "outlet"})

	buf := &bytes.Buffer{}
	if err := Write(buf, d); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	d2, err := ReadBytes(buf.Bytes())
	if err != nil { t.Fatalf("Unexpected error: %v", err) }

	compareDomains(t, d, d2)
}

func TestReadFileCompressed(t *testing.T) {
	listing := "thread interior\n0.00125\n0.00118\n"
	compressed, err := zstd.Compress(nil, []byte(listing))
	if err != nil { t.Fatalf("Unexpected error: %v", err) }

	path := filepath.Join(t.TempDir(), "mesh.vol.zst")
	if err := os.WriteFile(path, compressed, 0644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	d, err := ReadFile(path)
	if err != nil { t.Fatalf("Unexpected error: %v", err) }
	if got := d.Thread(0).Volumes(nil); !eq.Float64s(got, []float64{0.00125, 0.00118}) {
		t.Errorf("Expected volumes [0.00125 0.00118], got %v.", got)
	}
}

func TestWriteFileCompressedRoundTrip(t *testing.T) {
	d := buildDomain(t, map[string][]float64{
		"interior": {0.00125, 0.00118, 0.00094},
	}, []string{"interior"})

	path := filepath.Join(t.TempDir(), "mesh.vol.zst")
	if err := WriteFile(path, d); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	d2, err := ReadFile(path)
	if err != nil { t.Fatalf("Unexpected error: %v", err) }
	compareDomains(t, d, d2)

	// The file on disk must actually be compressed, not plain text.
	raw, err := os.ReadFile(path)
	if err != nil { t.Fatalf("Unexpected error: %v", err) }
	if bytes.Contains(raw, []byte("thread interior")) {
		t.Errorf("Expected compressed bytes on disk, found plain text.")
	}
}

func TestWriteFileCloseError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("This system has no /dev/full device.")
	}

	// An empty domain writes no listing body, so the only failing write is
	// the zstd frame epilogue emitted on close. That failure must surface.
	d := buildDomain(t, map[string][]float64{}, []string{})
	path := filepath.Join(t.TempDir(), "mesh.vol.zst")
	if err := os.Symlink("/dev/full", path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := WriteFile(path, d); err == nil {
		t.Fatalf("Expected an error writing to a full device, got none.")
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "no-such-mesh.vol"))
	if err == nil {
		t.Fatalf("Expected an error for a missing mesh file, got none.")
	}
}

func buildDomain(
	t *testing.T, vols map[string][]float64, order []string,
) *mesh.MemDomain {
	t.Helper()
	threads := []*mesh.MemThread{}
	for _, name := range order {
		th, err := mesh.NewMemThread(name, vols[name])
		if err != nil { t.Fatalf("Unexpected error: %v", err) }
		threads = append(threads, th)
	}
	d, err := mesh.NewMemDomain(threads...)
	if err != nil { t.Fatalf("Unexpected error: %v", err) }
	return d
}

func compareDomains(t *testing.T, want, got *mesh.MemDomain) {
	t.Helper()
	if want.Threads() != got.Threads() {
		t.Fatalf("Expected %d threads, got %d.", want.Threads(), got.Threads())
	}
	for i := 0; i < want.Threads(); i++ {
		wt, gt := want.Thread(i), got.Thread(i)
		if wt.Name() != gt.Name() {
			t.Errorf("%d) Expected thread name '%s', got '%s'.", i, wt.Name(), gt.Name())
		}
		if !eq.Float64s(wt.Volumes(nil), gt.Volumes(nil)) {
			t.Errorf("%d) Expected volumes %v, got %v.",
				i, wt.Volumes(nil), gt.Volumes(nil))
		}
	}
}
