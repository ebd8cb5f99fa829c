// Command-line tool for analysing SRGI/BIG tidal observation files: it infers
// the Indonesian time zone from the header, classifies the tide type, prints a
// spring-tide fieldwork recommendation and writes an Excel report and an HTML
// dashboard.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hidros-id/gotide/pkg/report"
	"github.com/hidros-id/gotide/pkg/srgi"
	"github.com/hidros-id/gotide/pkg/tide"
)

const version = "0.1.0"

func main() {
	app := &cli.App{
		Name:      "tidereport",
		Usage:     "analyse SRGI/BIG tide observation files",
		UsageText: "tidereport [options] FILE",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "excel",
				Usage: "Excel output `PATH`. Defaults to tide_report_<ZONE>.xlsx.",
			},
			&cli.StringFlag{
				Name:  "html",
				Usage: "HTML dashboard output `PATH`. Defaults to tide_dashboard_<ZONE>.html.",
			},
			&cli.BoolFlag{
				Name:  "no-excel",
				Usage: "Skip the Excel report.",
			},
			&cli.BoolFlag{
				Name:  "no-html",
				Usage: "Skip the HTML dashboard.",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("tidereport needs exactly one input file", 1)
	}

	fil := srgi.NewFile(c.Args().First())
	epochs, err := fil.ReadAll()
	if err != nil {
		return fmt.Errorf("read %s: %v", fil.Path, err)
	}

	hdr := fil.Header
	if err := hdr.Validate(); err != nil {
		return fmt.Errorf("invalid header in %s: %v", fil.Path, err)
	}

	zone := hdr.Zone()
	if hdr.HasPosition {
		log.Printf("station position: %.6f %.6f, zone %s", hdr.Lat, hdr.Lon, zone)
	}

	series := make(tide.Series, len(epochs))
	for i, epo := range epochs {
		series[i] = tide.Observation{Time: epo.Time, Elevation: epo.Elevation}
	}
	series = series.Localize(zone.Location())

	cls, err := tide.Classify(series)
	if err != nil {
		log.Printf("tide type classification failed: %v", err)
		cls = tide.Classification{Type: tide.TypeUnknown}
	} else {
		log.Printf("tide type: %s (energy ratio %.2f)", cls.Type, cls.FormRatio)
	}

	if win, err := tide.RecommendFieldwork(series); err != nil {
		log.Printf("no fieldwork recommendation: %v", err)
	} else {
		printFieldwork(os.Stdout, win, zone, cls.Type)
	}

	rep := &report.Report{Header: hdr, Zone: zone, Series: series, Classification: cls}

	if !c.Bool("no-excel") {
		path := c.String("excel")
		if path == "" {
			path = report.DefaultExcelName(zone)
		}
		if err := report.WriteExcel(path, rep); err != nil {
			return err
		}
		log.Printf("excel report written: %s", path)
	}

	if !c.Bool("no-html") {
		path := c.String("html")
		if path == "" {
			path = report.DefaultHTMLName(zone)
		}
		if err := report.WriteHTMLFile(path, rep); err != nil {
			return err
		}
		log.Printf("html dashboard written: %s", path)
	}

	return nil
}

func printFieldwork(w io.Writer, win tide.FieldworkWindow, zone srgi.Zone, typ tide.Type) {
	sep := "=================================================="
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "   FIELDWORK RECOMMENDATION (%s)\n", zone.Name)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Best window      : %s - %s\n", win.Start.Format("02 Jan"), win.End.Format("02 Jan 2006"))
	fmt.Fprintf(w, "Phase            : Spring tide\n")
	fmt.Fprintf(w, "Total tidal range: %.2f m (3-day cumulative)\n", win.TotalRange)
	fmt.Fprintf(w, "Tide type        : %s\n", typ)
	fmt.Fprintln(w, sep)
}
