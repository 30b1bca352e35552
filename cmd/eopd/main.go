package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/nvcleemp/eopd/eopd"
	"github.com/nvcleemp/eopd/libeopd"
	"github.com/nvcleemp/eopd/libeopd/catalog"
	"github.com/plan-systems/klog"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "", "badger dir recording uncovered graphs; graphs already present are not written again")
		skip        = flag.Uint64("skip", 0, "number of leading graphs to read without analysing")
		limit       = flag.Uint64("limit", 0, "stop after reading this many graphs (0 reads all)")
		verbosity   = flag.Int("verbosity", 0, verbosityUsage())
		quiet       = flag.Bool("quiet", false, "omit the work counters from the summary")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] < in.pc > out.pc\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Reads plane triangulations in planar_code and writes those having four pairwise")
		fmt.Fprintln(flag.CommandLine.Output(), "vertex-disjoint faces that lie in no common extended outer planar disc.")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()
	fset.Set("v", strconv.Itoa(*verbosity))

	opts := libeopd.ClassifyOpts{
		Skip:  *skip,
		Limit: *limit,
	}
	if *catalogPath != "" {
		cat, err := catalog.Open(catalog.Opts{DbPathName: *catalogPath})
		if err != nil {
			exitWithError(err)
		}
		defer cat.Close()
		opts.Catalog = cat
	}

	out := bufio.NewWriter(os.Stdout)
	cl := libeopd.NewClassifier(opts)
	err := cl.Run(bufio.NewReader(os.Stdin), out)

	// Graphs written before a failure remain valid output.
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		if opts.Catalog != nil {
			opts.Catalog.Close()
		}
		exitWithError(err)
	}

	if *quiet {
		fmt.Fprintf(os.Stderr, "Read %d graph%s.\n", cl.Totals.GraphsRead, eopd.Plural(cl.Totals.GraphsRead))
		fmt.Fprintf(os.Stderr, "Written %d uncovered graph%s.\n", cl.Totals.GraphsEmitted, eopd.Plural(cl.Totals.GraphsEmitted))
	} else {
		cl.Totals.WriteSummary(os.Stderr)
	}

	klog.Flush()
}

func exitWithError(err error) {
	if eopd.IsCapacityError(err) {
		fmt.Fprintf(os.Stderr, "Graph too large (at most %d vertices): %v -- exiting!\n", eopd.MaxVtxCount, err)
	} else {
		fmt.Fprintf(os.Stderr, "%v -- exiting!\n", err)
	}
	klog.Flush()
	os.Exit(1)
}

func verbosityUsage() string {
	return fmt.Sprintf("log verbosity (%d logs each analysed and each uncovered graph, %d logs every cached patch)",
		libeopd.LogGraphs, libeopd.LogPatches)
}
