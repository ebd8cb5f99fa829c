// Package srgi provides functions for reading SRGI/BIG tidal observation files.
package srgi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mholt/archiver/v3"
)

// errors
var (
	// ErrNoHeader is returned when reading tide data that does not contain the SRGI column header.
	ErrNoHeader = errors.New("srgi: no header")
)

// Indonesian civil time zones.
var (
	ZoneWIB  = Zone{Name: "WIB", Offset: 7}
	ZoneWITA = Zone{Name: "WITA", Offset: 8}
	ZoneWIT  = Zone{Name: "WIT", Offset: 9}
)

// Zone is an Indonesian civil time zone with its UTC offset in hours.
type Zone struct {
	Name   string
	Offset int
}

func (z Zone) String() string {
	return fmt.Sprintf("%s (UTC+%d)", z.Name, z.Offset)
}

// Location returns the fixed-offset location for the zone.
func (z Zone) Location() *time.Location {
	return time.FixedZone(z.Name, z.Offset*3600)
}

// ZoneForLongitude returns the Indonesian civil zone for a longitude given in
// decimal degrees. West of the Bali strait (114.8 E) is WIB, up to the Maluku
// line (129.0 E) is WITA, everything further east is WIT.
func ZoneForLongitude(lon float64) Zone {
	switch {
	case lon < 114.8:
		return ZoneWIB
	case lon < 129.0:
		return ZoneWITA
	default:
		return ZoneWIT
	}
}

// A Header provides the SRGI tide file header information.
type Header struct {
	Source string // The issuing product or agency, from the first free-text line.

	Lat float64 `validate:"gte=-90,lte=90"`   // Station latitude in decimal degrees.
	Lon float64 `validate:"gte=-180,lte=180"` // Station longitude in decimal degrees.

	// HasPosition is true if a longitude annotation was found in the header.
	// Files without one fall back to WIB.
	HasPosition bool

	Comments []string
}

var validate *validator.Validate

// Validate validates the header data.
func (hdr *Header) Validate() error {
	validate = validator.New()
	return validate.Struct(hdr)
}

// Zone returns the civil zone inferred from the header longitude.
func (hdr *Header) Zone() Zone {
	if !hdr.HasPosition {
		return ZoneWIB
	}
	return ZoneForLongitude(hdr.Lon)
}

// Epoch contains a single tidal observation record.
type Epoch struct {
	Time      time.Time // The epoch time, UTC.
	Lat, Lon  float64   // Station position repeated on each record.
	Elevation float64   // Water level in metres.
}

// File contains fields and methods for SRGI tide files.
type File struct {
	Path   string
	Header *Header
	Stats  *Stats // Some observation statistics.
}

// NewFile returns a new SRGI tide file for the given path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// ReadHeader parses and returns the header.
func (f *File) ReadHeader() (Header, error) {
	r, closeFn, err := f.open()
	if err != nil {
		return Header{}, err
	}
	defer closeFn()

	dec, err := NewDecoder(r)
	if err != nil {
		return Header{}, err
	}
	f.Header = &dec.Header
	return dec.Header, nil
}

// ReadAll reads the file and returns all epochs. The header is stored in f.Header.
func (f *File) ReadAll() ([]Epoch, error) {
	r, closeFn, err := f.open()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	dec, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}
	f.Header = &dec.Header

	var epochs []Epoch
	for dec.NextEpoch() {
		epochs = append(epochs, *dec.Epoch())
	}
	return epochs, dec.Err()
}

// ComputeObsStats reads the file and computes some statistics on the observations.
func (f *File) ComputeObsStats() (stats Stats, err error) {
	r, closeFn, err := f.open()
	if err != nil {
		return
	}
	defer closeFn()

	dec, err := NewDecoder(r)
	if err != nil {
		return
	}
	f.Header = &dec.Header

	numOfEpochs := 0
	intervals := make([]time.Duration, 0, 10)
	var epo, epoPrev *Epoch

	for dec.NextEpoch() {
		numOfEpochs++
		epo = dec.Epoch()
		if numOfEpochs == 1 {
			stats.TimeOfFirstObs = epo.Time
		}

		if epoPrev != nil && len(intervals) <= 10 {
			intervals = append(intervals, epo.Time.Sub(epoPrev.Time))
		}
		epoPrev = epo
	}
	if err = dec.Err(); err != nil {
		return stats, err
	}
	if numOfEpochs < 2 {
		return stats, fmt.Errorf("srgi: not enough epochs for statistics: %d", numOfEpochs)
	}

	// Sampling rate
	sort.Slice(intervals, func(i, j int) bool { return intervals[i] < intervals[j] })
	stats.Sampling = intervals[int(len(intervals)/2)]
	stats.TimeOfLastObs = epoPrev.Time
	stats.NumEpochs = numOfEpochs
	f.Stats = &stats

	return stats, err
}

// open returns a reader for the file. Compressed files are decompressed to a
// temporary location first. The returned func must be called when done.
func (f *File) open() (*os.File, func(), error) {
	if !IsCompressed(f.Path) {
		r, err := os.Open(f.Path)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { r.Close() }, nil
	}

	dir, err := os.MkdirTemp("", "srgi")
	if err != nil {
		return nil, nil, err
	}
	base := filepath.Base(f.Path)
	dst := filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base)))
	if err := archiver.DecompressFile(f.Path, dst); err != nil {
		os.RemoveAll(dir)
		return nil, nil, fmt.Errorf("srgi: decompress %s: %v", f.Path, err)
	}

	r, err := os.Open(dst)
	if err != nil {
		os.RemoveAll(dir)
		return nil, nil, err
	}
	return r, func() { r.Close(); os.RemoveAll(dir) }, nil
}

// IsCompressed returns true if the file given by filename is compressed.
// This is checked by the filenames' extension.
func IsCompressed(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz", ".bz2", ".xz", ".zst", ".lz4":
		return true
	}
	return false
}

// Stats holds some statistics about an SRGI tide file, derived from the data.
type Stats struct {
	NumEpochs      int           `json:"numEpochs"`      // The number of epochs in the file.
	Sampling       time.Duration `json:"sampling"`       // The sampling interval derived from the data.
	TimeOfFirstObs time.Time     `json:"timeOfFirstObs"` // Time of the first observation.
	TimeOfLastObs  time.Time     `json:"timeOfLastObs"`  // Time of the last observation.
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
