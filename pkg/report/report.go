// Package report renders tide analysis results as Excel workbooks and HTML dashboards.
package report

import (
	"fmt"

	"github.com/hidros-id/gotide/pkg/srgi"
	"github.com/hidros-id/gotide/pkg/tide"
)

// Report bundles everything the exporters need: the localized series, the
// station header, the inferred zone and the classification result.
type Report struct {
	Header         *srgi.Header
	Zone           srgi.Zone
	Series         tide.Series
	Classification tide.Classification
}

func (rep *Report) check() error {
	if len(rep.Series) == 0 {
		return fmt.Errorf("report: empty series")
	}
	return nil
}

// chartTitle is the hydrograph title shared by both exporters.
func (rep *Report) chartTitle() string {
	return fmt.Sprintf("Tide hydrograph (%s) - %s", rep.Zone.Name, rep.Classification.Type)
}

// position returns the station position for display, or placeholders if the
// source file carried no coordinates.
func (rep *Report) position() string {
	if rep.Header == nil || !rep.Header.HasPosition {
		return "-, -"
	}
	return fmt.Sprintf("%.6f, %.6f", rep.Header.Lat, rep.Header.Lon)
}

// DefaultExcelName returns the default workbook filename for a zone.
func DefaultExcelName(zone srgi.Zone) string {
	return fmt.Sprintf("tide_report_%s.xlsx", zone.Name)
}

// DefaultHTMLName returns the default dashboard filename for a zone.
func DefaultHTMLName(zone srgi.Zone) string {
	return fmt.Sprintf("tide_dashboard_%s.html", zone.Name)
}
