package srgi

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// epochTimeFormat is the time format of a record datetime. Times are given in UTC.
	epochTimeFormat string = "2006-01-02 15:04:05"

	// maxCoordLines is the number of leading lines that are scanned for coordinate annotations.
	maxCoordLines = 15
)

var (
	latPattern = regexp.MustCompile(`Lat:\s*(-?[\d.]+)`)
	lonPattern = regexp.MustCompile(`Lon:\s*(-?[\d.]+)`)
)

// Decoder reads and decodes header and data records from an SRGI tide input stream.
type Decoder struct {
	// The Header is valid after NewDecoder. The column header line must exist,
	// otherwise ErrNoHeader will be returned.
	Header  Header
	sc      *bufio.Scanner
	epo     *Epoch // the current epoch
	lineNum int
	err     error
}

// NewDecoder creates a new decoder for SRGI tide data.
// The file header will be read implicitly. The column header line must exist.
//
// It is the caller's responsibility to call Close on the underlying reader when done!
func NewDecoder(r io.Reader) (*Decoder, error) {
	dec := &Decoder{sc: bufio.NewScanner(r)}
	dec.Header, dec.err = dec.readHeader()
	return dec, dec.err
}

// readHeader reads the free-text header up to and including the column header
// line. Coordinate annotations are only picked up from the leading lines.
func (dec *Decoder) readHeader() (hdr Header, err error) {
	hasLon := false
	for dec.readLine() {
		line := dec.line()

		if isColumnHeader(line) {
			hdr.HasPosition = hasLon
			if !hasLon {
				log.Printf("srgi: no coordinates found in header, defaulting to %s", ZoneWIB)
			}
			return hdr, nil
		}

		if dec.lineNum > maxCoordLines {
			continue
		}

		found := false
		if m := lonPattern.FindStringSubmatch(line); m != nil {
			if f64, err := strconv.ParseFloat(m[1], 64); err == nil {
				hdr.Lon = f64
				hasLon = true
				found = true
			} else {
				log.Printf("srgi: line %d: parse longitude: %v", dec.lineNum, err)
			}
		}
		if m := latPattern.FindStringSubmatch(line); m != nil {
			if f64, err := strconv.ParseFloat(m[1], 64); err == nil {
				hdr.Lat = f64
				found = true
			} else {
				log.Printf("srgi: line %d: parse latitude: %v", dec.lineNum, err)
			}
		}
		if found {
			continue
		}

		if text := strings.TrimSpace(line); text != "" {
			if hdr.Source == "" {
				hdr.Source = text
			} else {
				hdr.Comments = append(hdr.Comments, text)
			}
		}
	}

	if err := dec.sc.Err(); err != nil {
		return hdr, err
	}
	return hdr, ErrNoHeader
}

// isColumnHeader reports whether the line is the column header that separates
// the free-text header from the data records.
func isColumnHeader(line string) bool {
	return strings.Contains(line, "Lat") && strings.Contains(line, "Lon") &&
		strings.Contains(line, "z(m)")
}

// Err returns the first non-EOF error that was encountered by the decoder.
func (dec *Decoder) Err() error {
	if dec.err == io.EOF {
		return nil
	}
	return dec.err
}

// setErr records the first error encountered.
func (dec *Decoder) setErr(err error) {
	if dec.err == nil || dec.err == io.EOF {
		dec.err = err
	}
}

// readLine reads the next line into buffer. It returns false if an error
// occurs or EOF was reached.
func (dec *Decoder) readLine() bool {
	if ok := dec.sc.Scan(); !ok {
		return ok
	}
	dec.lineNum++
	return true
}

// line returns the current line.
func (dec *Decoder) line() string {
	return dec.sc.Text()
}

// NextEpoch reads the next observation record.
// It returns false when the scan stops, either by reaching the end of the input or an error.
func (dec *Decoder) NextEpoch() bool {
	for dec.readLine() {
		line := dec.line()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 5 {
			dec.setErr(fmt.Errorf("srgi: line %d: expected 5 fields, got %d", dec.lineNum, len(fields)))
			return false
		}

		lat, err := parseFloat(fields[0])
		if err != nil {
			dec.setErr(fmt.Errorf("srgi: line %d: parse latitude: %v", dec.lineNum, err))
			return false
		}
		lon, err := parseFloat(fields[1])
		if err != nil {
			dec.setErr(fmt.Errorf("srgi: line %d: parse longitude: %v", dec.lineNum, err))
			return false
		}
		epoTime, err := time.Parse(epochTimeFormat, fields[2]+" "+fields[3])
		if err != nil {
			dec.setErr(fmt.Errorf("srgi: line %d: %v", dec.lineNum, err))
			return false
		}
		z, err := parseFloat(fields[4])
		if err != nil {
			dec.setErr(fmt.Errorf("srgi: line %d: parse elevation: %v", dec.lineNum, err))
			return false
		}

		dec.epo = &Epoch{Time: epoTime, Lat: lat, Lon: lon, Elevation: z}
		return true
	}

	if err := dec.sc.Err(); err != nil {
		dec.setErr(fmt.Errorf("srgi: read epoch: %v", err))
	}

	return false // EOF
}

// Epoch returns the most recent epoch generated by a call to NextEpoch.
func (dec *Decoder) Epoch() *Epoch {
	return dec.epo
}
