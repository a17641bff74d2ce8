package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	dataDir     string
	templateDir string
	outputDir   string
	mappingFile string
	all         bool
	workers     int
	verbose     bool
	quiet       bool
	version     bool

	shipments []string
}

func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("placardgen", flag.ContinueOnError)

	f := &cliFlags{}
	fs.StringVar(&f.dataDir, "data", "Data", "folder holding the open order report")
	fs.StringVar(&f.templateDir, "template", "Template", "folder holding the placard template")
	fs.StringVar(&f.outputDir, "output", "Placards", "folder the placard documents are written to")
	fs.StringVar(&f.mappingFile, "mapping", "", "optional YAML field-mapping profile")
	fs.BoolVar(&f.all, "all", false, "render every shipment in the report")
	fs.IntVar(&f.workers, "workers", 0, "parallel shipment renders (0 = derive from CPU count)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "errors only")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: placardgen [flags] <shipment> [<shipment>...]\n\n")
		fmt.Fprintf(os.Stderr, "Generates one multi-page placard document per shipment from the\nopen order report and a DOCX template.\n\nFlags:\n%s", fs.FlagUsages())
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	f.shipments = splitShipmentArgs(fs.Args())
	if !f.version && !f.all && len(f.shipments) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("no shipment numbers given (or use --all)")
	}
	return f, nil
}

// splitShipmentArgs accepts both space- and comma-separated shipment
// lists, deduplicated in input order.
func splitShipmentArgs(args []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			s := strings.TrimSpace(part)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// resolveWorkers picks the render concurrency. Priority: explicit flag,
// then PLACARD_WORKERS, then half of GOMAXPROCS (adjusted by
// automaxprocs in containers), clamped to [1, 8].
func resolveWorkers(flagWorkers, configWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if configWorkers > 0 {
		return configWorkers
	}
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
