/*package meshio reads and writes volume listings, the text snapshot format
that lets cell volumes be exported without a live mesh engine attached. A
listing is a sequence of thread sections:

    # anything after '#' is a comment
    thread interior
    0.00125
    0.00118
    thread outlet
    0.00094

Each "thread <name>" header starts a new thread; every other non-blank line
is one cell volume. Files whose names end in ".zst" are zstd-compressed
listings and are decompressed transparently.
*/
package meshio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/DataDog/zstd"

	"github.com/mbartelt/cellvol/lib/mesh"
)

// CompressedSuffix marks a file as a zstd-compressed volume listing.
const CompressedSuffix = ".zst"

// threadKeyword starts a thread header line.
const threadKeyword = "thread"

// ReadFile reads the volume listing at path into an in-memory domain,
// decompressing first if path ends in CompressedSuffix.
func ReadFile(path string) (*mesh.MemDomain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("The mesh file '%s' could not be opened: %v", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedSuffix) {
		zr := zstd.NewReader(f)
		defer zr.Close()
		r = zr
	}

	d, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("The mesh file '%s' could not be parsed: %v", path, err)
	}
	return d, nil
}

// ReadBytes reads a volume listing from a block of text.
func ReadBytes(text []byte) (*mesh.MemDomain, error) {
	return Read(bytes.NewReader(text))
}

// Read reads a volume listing from r.
func Read(r io.Reader) (*mesh.MemDomain, error) {
	var (
		threads []*mesh.MemThread
		name    string
		vol     []float64
		started bool
	)
	seen := map[string]bool{}

	flush := func() error {
		if !started { return nil }
		t, err := mesh.NewMemThread(name, vol)
		if err != nil { return err }
		threads = append(threads, t)
		return nil
	}

	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		text := scan.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" { continue }

		fields := strings.Fields(text)
		if fields[0] == threadKeyword {
			if len(fields) != 2 {
				return nil, fmt.Errorf("Line %d: a thread header must be 'thread <name>', got '%s'.", line, text)
			}
			if seen[fields[1]] {
				return nil, fmt.Errorf("Line %d: the thread name '%s' is used more than once.", line, fields[1])
			}
			seen[fields[1]] = true
			if err := flush(); err != nil { return nil, err }
			name, vol, started = fields[1], nil, true
			continue
		}

		if !started {
			return nil, fmt.Errorf("Line %d: the cell volume '%s' appears before any thread header.", line, text)
		} else if len(fields) != 1 {
			return nil, fmt.Errorf("Line %d: expected a single cell volume, got '%s'.", line, text)
		}

		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("Line %d: '%s' cannot be parsed as a cell volume.", line, fields[0])
		} else if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Line %d: the cell volume '%s' is non-finite.", line, fields[0])
		} else if v < 0 {
			return nil, fmt.Errorf("Line %d: the cell volume %g is negative.", line, v)
		}
		vol = append(vol, v)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("The volume listing could not be read: %v", err)
	}

	if err := flush(); err != nil { return nil, err }
	return mesh.NewMemDomain(threads...)
}

// WriteFile writes d as a volume listing at path, compressing if path ends
// in CompressedSuffix. Listings are always written whole, never appended to.
// Close failures are reported too: the zstd epilogue and the OS flush are
// the last places a write can go wrong.
func WriteFile(path string, d mesh.Domain) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("The mesh file '%s' could not be created: %v", path, err)
	}

	var w io.Writer = f
	var zw io.WriteCloser
	if strings.HasSuffix(path, CompressedSuffix) {
		zw = zstd.NewWriter(f)
		w = zw
	}

	werr := Write(w, d)
	var zerr error
	if zw != nil { zerr = zw.Close() }
	cerr := f.Close()

	if werr == nil && zerr != nil { werr = zerr }
	if werr == nil && cerr != nil { werr = cerr }
	if werr != nil {
		return fmt.Errorf("The mesh file '%s' could not be written: %v", path, werr)
	}
	return nil
}

// Write writes d as a volume listing to w. Volumes are written with enough
// digits to round-trip exactly through Read.
func Write(w io.Writer, d mesh.Domain) error {
	buf := bufio.NewWriter(w)
	var vol []float64
	b := make([]byte, 0, 32)

	for i := 0; i < d.Threads(); i++ {
		t := d.Thread(i)
		if _, err := fmt.Fprintf(buf, "%s %s\n", threadKeyword, t.Name()); err != nil {
			return err
		}

		vol = t.Volumes(vol)
		for _, v := range vol {
			b = strconv.AppendFloat(b[:0], v, 'g', -1, 64)
			b = append(b, '\n')
			if _, err := buf.Write(b); err != nil { return err }
		}
	}

	return buf.Flush()
}
