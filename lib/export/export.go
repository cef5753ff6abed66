/*package export writes the volume of every cell in a mesh domain to a text
sink, one fixed-format decimal per line, and totals the volumes as it goes.
This is the whole job of the module: everything else exists to feed a Domain
in or carry the lines out.
*/
package export

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/mbartelt/cellvol/lib/mesh"
)

var (
	// ErrSinkUnavailable is wrapped by every error caused by the output
	// destination failing to open or accept writes.
	ErrSinkUnavailable = errors.New("output sink unavailable")
	// ErrInvalidDomain is wrapped by every error caused by a missing or
	// unusable mesh domain. It is always detected before any I/O is
	// attempted.
	ErrInvalidDomain = errors.New("invalid mesh domain")
)

// VolumeDigits is the number of fractional digits written for each cell
// volume.
const VolumeDigits = 20

// ExportResult summarizes one export pass.
type ExportResult struct {
	// Cells is the number of cells visited, which equals the number of
	// lines written.
	Cells int
	// Total is the sum of every visited cell's volume. It is reset to zero
	// at the start of each pass.
	Total float64
}

// Export walks every thread in d, writes each cell's volume to sink as a
// decimal with VolumeDigits fractional digits, and returns the cell count and
// volume total. The first write failure aborts the remaining export; lines
// already accepted by the sink are not rolled back. Export does not close
// sink.
func Export(d mesh.Domain, sink Sink) (ExportResult, error) {
	if err := validateDomain(d); err != nil {
		return ExportResult{}, err
	}

	res := ExportResult{}
	var vol []float64
	line := make([]byte, 0, 32)

	for i := 0; i < d.Threads(); i++ {
		t := d.Thread(i)
		vol = t.Volumes(vol)

		for _, v := range vol {
			line = strconv.AppendFloat(line[:0], v, 'f', VolumeDigits, 64)
			if err := sink.WriteLine(line); err != nil {
				return ExportResult{}, err
			}
		}

		res.Cells += len(vol)
		res.Total += floats.Sum(vol)
	}

	return res, nil
}

// validateDomain checks the whole domain up front so an invalid handle
// never opens a sink or leaves partial output behind.
func validateDomain(d mesh.Domain) error {
	if d == nil {
		return fmt.Errorf("%w: the domain handle is nil", ErrInvalidDomain)
	}
	for i := 0; i < d.Threads(); i++ {
		if d.Thread(i) == nil {
			return fmt.Errorf("%w: thread %d of %d is nil",
				ErrInvalidDomain, i, d.Threads())
		}
	}
	return nil
}

// ExportFile runs Export against a file sink at path, opened in append mode,
// or truncated first when truncate is set. The sink is closed on every exit
// path; a flush/close failure after a clean pass is still reported as an
// error, since lines may not have reached the file.
func ExportFile(d mesh.Domain, path string, truncate bool) (ExportResult, error) {
	if err := validateDomain(d); err != nil {
		return ExportResult{}, err
	}

	open := FileSink
	if truncate { open = TruncSink }

	sink, err := open(path)
	if err != nil { return ExportResult{}, err }

	res, err := Export(d, sink)
	cerr := sink.Close()
	if err != nil { return ExportResult{}, err }
	if cerr != nil { return ExportResult{}, cerr }

	return res, nil
}
