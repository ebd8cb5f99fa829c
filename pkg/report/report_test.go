package report

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/hidros-id/gotide/pkg/srgi"
	"github.com/hidros-id/gotide/pkg/tide"
)

func testReport() *Report {
	loc := srgi.ZoneWIB.Location()
	start := time.Date(2026, 1, 1, 7, 0, 0, 0, loc)
	s := tide.Series{
		{Time: start, Elevation: 0.135},
		{Time: start.Add(time.Hour), Elevation: 0.481},
		{Time: start.Add(2 * time.Hour), Elevation: -0.042},
	}
	return &Report{
		Header:         &srgi.Header{Lat: -8.4376, Lon: 112.667364, HasPosition: true},
		Zone:           srgi.ZoneWIB,
		Series:         s,
		Classification: tide.Classification{Type: tide.TypeMixed, FormRatio: 1.2},
	}
}

func TestWriteExcel(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "tide_report_WIB.xlsx")

	err := WriteExcel(path, testReport())
	assert.NoError(err)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("%v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Data")
	assert.NoError(err)
	assert.Equal(4, len(rows))
	assert.Equal("Time (WIB)", rows[0][0])
	assert.Equal("Elevation (m)", rows[0][1])

	v, err := f.GetCellValue("Data", "B2")
	assert.NoError(err)
	assert.Equal("0.135", v)
	v, err = f.GetCellValue("Data", "B4")
	assert.NoError(err)
	assert.Equal("-0.042", v)
}

func TestWriteExcel_EmptySeries(t *testing.T) {
	rep := testReport()
	rep.Series = nil
	err := WriteExcel(filepath.Join(t.TempDir(), "x.xlsx"), rep)
	assert.Error(t, err)
}

func TestWriteHTML(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer

	err := WriteHTML(&buf, testReport())
	assert.NoError(err)

	html := buf.String()
	assert.Contains(html, "Tide analysis")
	assert.Contains(html, "Elevation (m)")
	assert.Contains(html, "MSL")
	assert.Contains(html, "WIB")
}

func TestWriteHTMLFile(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "tide_dashboard_WIB.html")
	err := WriteHTMLFile(path, testReport())
	assert.NoError(err)
	assert.FileExists(path)
}

func TestDefaultNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("tide_report_WITA.xlsx", DefaultExcelName(srgi.ZoneWITA))
	assert.Equal("tide_dashboard_WIT.html", DefaultHTMLName(srgi.ZoneWIT))
}

func TestReport_Position(t *testing.T) {
	assert := assert.New(t)
	rep := testReport()
	assert.Equal("-8.437600, 112.667364", rep.position())

	rep.Header = &srgi.Header{}
	assert.Equal("-, -", rep.position())
}
