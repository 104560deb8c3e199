package main

import (
	"fmt"
	"io"

	"phpdrift/internal/diag"
	"phpdrift/internal/driver"
)

// printTimingReports печатает фазовые замеры, закодированные в
// info-диагностиках OBS6001, в том же виде, что observ.Timer.Summary.
func printTimingReports(w io.Writer, bags ...*diag.Bag) {
	for _, bag := range bags {
		if bag == nil {
			continue
		}
		for _, d := range bag.Items() {
			report, ok := driver.DecodeTimings(d)
			if !ok {
				continue
			}
			heading := report.Kind
			if report.Path != "" {
				heading += " " + report.Path
			}
			fmt.Fprintf(w, "timings (%s):\n", heading)
			for _, phase := range report.Phases {
				fmt.Fprintf(w, "  %-20s %7.2f ms", phase.Name, phase.DurationMS)
				if phase.Note != "" {
					fmt.Fprintf(w, "  // %s", phase.Note)
				}
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %-20s %7.2f ms\n", "total", report.TotalMS)
		}
	}
}
