package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/nvcleemp/eopd/eopd"
	"github.com/nvcleemp/eopd/pyeopd"
	"github.com/plan-systems/klog"

	_ "github.com/go-python/gpython/stdlib"
)

// runPython runs the script at pathname, or an interactive session with the eopd module preloaded
// when pathname is empty.  A startup script runs in the session's module before the prompt.
func runPython(pathname, startup string) {
	ctx := py.NewContext(py.DefaultContextOpts())

	var err error
	if len(pathname) == 0 {
		err = runSession(ctx, startup)
	} else {
		startTime := time.Now()
		klog.V(1).Infof("executing '%s'", pathname)

		_, err = pyeopd.RunScript(ctx, pathname, nil)
		if err == nil {
			klog.V(1).Infof("execution complete: %v", time.Since(startTime))
		}
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		klog.Fatal(err)
	}
}

func runSession(ctx py.Context, startup string) error {
	replCtx := repl.New(ctx)

	fmt.Fprintf(os.Stderr, "eopd %s (at most %d vertices, tuples of %d faces)\n", eopd.LibVersion, eopd.MaxVtxCount, eopd.MaxTupleSize)
	if _, err := py.RunSrc(ctx, "import eopd", "<startup>", replCtx.Module); err != nil {
		return err
	}
	if len(startup) > 0 {
		if _, err := pyeopd.RunScript(ctx, startup, replCtx.Module); err != nil {
			return err
		}
	}
	cli.RunREPL(replCtx)
	return nil
}
