package main

import (
	"flag"

	"github.com/plan-systems/klog"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	startup := flag.String("startup", "", "script run in the REPL module before the prompt appears")
	flag.Parse()

	// With no script given, an interactive session is started.
	pathname := flag.Arg(0)
	runPython(pathname, *startup)

	klog.Flush()
}
