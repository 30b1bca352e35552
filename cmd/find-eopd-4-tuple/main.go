package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nvcleemp/eopd/eopd"
	"github.com/nvcleemp/eopd/libeopd"
	"github.com/nvcleemp/eopd/libeopd/planarcode"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

func main() {
	var (
		expr      = flag.String("expr", "", "read the graph from a rotation expression (\"1: 2,4,3; 2: 3,4,1; ...\") instead of planar_code on stdin")
		verbose   = flag.Bool("v", false, "list the faces of the graph and of the tuple")
		verbosity = flag.Int("verbosity", 0, "log verbosity")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] u,v,w u,v,w [u,v,w ...] < graph.pc\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Checks whether the given triangles of a plane triangulation lie in a common")
		fmt.Fprintln(flag.CommandLine.Output(), "extended outer planar disc.  Vertices are one-based.")
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

	if flag.NArg() < 2 {
		flag.Usage()
		klog.Flush()
		os.Exit(1)
	}

	tris := make([][3]int, flag.NArg())
	for i, arg := range flag.Args() {
		tri, err := libeopd.ParseTriangle(arg)
		if err != nil {
			exitWithError(err)
		}
		tris[i] = tri
	}

	rotation, err := readGraph(*expr)
	if err != nil {
		exitWithError(err)
	}
	emb, err := libeopd.NewEmbedding(rotation)
	if err != nil {
		exitWithError(err)
	}

	analysis := libeopd.NewAnalysis()
	analysis.Reset(emb)
	covered, tuple, err := analysis.CheckTriangles(tris)
	if err != nil {
		exitWithError(err)
	}

	if *verbose {
		fmt.Fprintln(os.Stderr, "Faces:")
		libeopd.WriteFaces(os.Stderr, emb)
		libeopd.WriteTuple(os.Stderr, emb, tuple)
		if covered {
			libeopd.WriteDisc(os.Stderr, emb, analysis.Witness())
		}
		for i := range analysis.Cache() {
			libeopd.WritePatch(os.Stderr, &analysis.Cache()[i])
		}
	}

	if covered {
		fmt.Fprintln(os.Stderr, "There is an extended outer planar disc.")
	} else {
		fmt.Fprintln(os.Stderr, "There is no extended outer planar disc.")
	}
	klog.Flush()
}

func readGraph(expr string) ([][]int, error) {
	if expr != "" {
		return libeopd.ParseRotationExpr(expr)
	}
	code, err := planarcode.NewReader(bufio.NewReader(os.Stdin)).Next()
	if err == io.EOF {
		return nil, errors.Wrap(eopd.ErrUnexpectedEOF, "no graph on stdin")
	}
	if err != nil {
		return nil, err
	}
	return code.Rotation(), nil
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
