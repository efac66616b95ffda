package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"

	"salesdesk/pkg/backoffice"
	"salesdesk/pkg/config"
	"salesdesk/pkg/sheets"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", config.DefaultFilename, "Path to the TOML configuration file")
	code := flag.String("codigo", "", "Advisor code to filter by (empty for all)")
	year := flag.Int("anio", 0, "Year of the window (defaults to the current month)")
	month := flag.Int("mes", 0, "Month of the window, 1-12")
	mode := flag.String("modo", string(backoffice.ModeDue), "Date the window applies to: venta or cobro")
	xlsx := flag.String("xlsx", "", "Also write the diagnosis to this .xlsx file")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	m, err := backoffice.ParseDiagnoseMode(*mode)
	if err != nil {
		log.Error(err)
		flag.Usage()
		os.Exit(1)
	}
	start, end, err := window(*year, *month)
	if err != nil {
		log.Error(err)
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	desk := backoffice.New(sheets.NewService(cfg), cfg, nil)

	diag, err := desk.DiagnoseCollections(context.Background(), *code, start, end, m)
	if err != nil {
		log.Fatalf("Failed to read collections: %v", err)
	}
	printDiagnosis(os.Stdout, diag, start, end)

	if *xlsx != "" {
		if err := writeXLSX(*xlsx, diag); err != nil {
			log.Fatalf("Failed to write %s: %v", *xlsx, err)
		}
		log.Infof("Diagnosis written to %s", *xlsx)
	}
}

func window(year, month int) (time.Time, time.Time, error) {
	if year == 0 && month == 0 {
		start, end := backoffice.CurrentMonth()
		return start, end, nil
	}
	if year < 1 || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("-anio and -mes must be given together, with -mes in 1-12")
	}
	start, end := backoffice.MonthRange(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	return start, end, nil
}

func printDiagnosis(out io.Writer, diag backoffice.Diagnosis, start, end time.Time) {
	fmt.Fprintf(out, "Window: %s - %s\n", start.Format(backoffice.DateLayout), end.Format(backoffice.DateLayout))
	fmt.Fprintf(out, "Headers: %v\n\n", diag.Headers)

	names := make([]string, 0, len(diag.Resolved))
	for name := range diag.Resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tCOLUMN\tSUGGESTION")
	for _, name := range names {
		col := diag.Resolved[name]
		if col == "" {
			col = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, col, diag.Suggestions[name])
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "STAGE\tROWS")
	for _, s := range diag.Stages {
		fmt.Fprintf(tw, "%s\t%d\n", s.Name, s.Count)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PERSONAL\tVENTA\tCOBRO\tCLIENTE\tTOTAL\tDEPOSITADO\tDIFERENCIA")
	for _, r := range diag.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
			r.Personal, r.FechaVenta, r.FechaDeCobro, r.Cliente, r.MontoTotal, r.MontoDepositado, r.Diferencia)
	}
	_ = tw.Flush()
}
