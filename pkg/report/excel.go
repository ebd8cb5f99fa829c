package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	dataSheet = "Data"

	// timeCellFmt is the display format of the timestamp column.
	timeCellFmt = "dd mmm hh:mm"
)

// WriteExcel writes the report workbook to path: a Data sheet with the
// localized series and a smooth scatter hydrograph chart next to it.
func WriteExcel(path string, rep *Report) error {
	if err := rep.check(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("report: rename sheet: %w", err)
	}

	if err := f.SetCellValue(dataSheet, "A1", fmt.Sprintf("Time (%s)", rep.Zone.Name)); err != nil {
		return err
	}
	if err := f.SetCellValue(dataSheet, "B1", "Elevation (m)"); err != nil {
		return err
	}

	for i, obs := range rep.Series {
		row := i + 2
		if err := f.SetCellValue(dataSheet, fmt.Sprintf("A%d", row), obs.Time); err != nil {
			return err
		}
		if err := f.SetCellValue(dataSheet, fmt.Sprintf("B%d", row), obs.Elevation); err != nil {
			return err
		}
	}

	lastRow := len(rep.Series) + 1

	numFmt := timeCellFmt
	style, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Alignment:    &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return fmt.Errorf("report: create time style: %w", err)
	}
	if err := f.SetColWidth(dataSheet, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetCellStyle(dataSheet, "A2", fmt.Sprintf("A%d", lastRow), style); err != nil {
		return err
	}

	chart := &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{
			{
				Name:       "Elevation (m)",
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, lastRow),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", dataSheet, lastRow),
				Line:       excelize.ChartLine{Smooth: true, Width: 1.5},
			},
		},
		Title: []excelize.RichTextRun{
			{Text: rep.chartTitle()},
		},
		XAxis: excelize.ChartAxis{
			MajorGridLines: true,
			NumFmt:         excelize.ChartNumFmt{CustomNumFmt: "dd/mm"},
			Title: []excelize.RichTextRun{
				{Text: fmt.Sprintf("Time (%s)", rep.Zone.Name)},
			},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title: []excelize.RichTextRun{
				{Text: "Elevation (m)"},
			},
		},
		Dimension: excelize.ChartDimension{Width: 1000, Height: 400},
	}
	if err := f.AddChart(dataSheet, "D2", chart); err != nil {
		return fmt.Errorf("report: add chart: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save workbook: %w", err)
	}
	return nil
}
