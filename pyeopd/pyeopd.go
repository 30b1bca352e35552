package pyeopd

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/go-python/gpython/py"
	"github.com/nvcleemp/eopd/eopd"
	"github.com/nvcleemp/eopd/libeopd"
	"github.com/nvcleemp/eopd/libeopd/catalog"
	"github.com/nvcleemp/eopd/libeopd/planarcode"
)

var (
	LIB_VERSION = eopd.LibVersion
)

// RunScript runs the Python file at pathname within inModule (or a new module when nil).
// The file is resolved against its own directory, so absolute pathnames work as well.
func RunScript(ctx py.Context, pathname string, inModule interface{}) (*py.Module, error) {
	dir, file := filepath.Split(pathname)
	return py.RunFile(ctx, file, py.CompileOpts{CurDir: dir}, inModule)
}

// Arg 1 (str): planar_code input pathname
// Arg 2 (str): planar_code output pathname
// Arg 3 (str, optional): catalog pathname; uncovered graphs already in it are not written again
//
// Returns (graphs read, graphs written).
func py_Classify(module py.Object, args py.Tuple) (py.Object, error) {
	var inPath, outPath string
	err := py.LoadTuple(args[:min(len(args), 2)], []interface{}{&inPath, &outPath})
	if err != nil {
		return nil, err
	}

	opts := libeopd.ClassifyOpts{}
	if len(args) > 2 {
		catPath, ok := args[2].(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected catalog pathname (got %v)", args[2].Type().Name)
		}
		opts.Catalog, err = catalog.Open(catalog.Opts{DbPathName: string(catPath)})
		if err != nil {
			return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
		}
		defer opts.Catalog.Close()
	}

	in, err := os.Open(inPath)
	if err != nil {
		return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", err)
	}
	defer out.Close()

	bufOut := bufio.NewWriter(out)
	cl := libeopd.NewClassifier(opts)
	err = cl.Run(bufio.NewReader(in), bufOut)
	if flushErr := bufOut.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	return py.Tuple{
		py.Int(cl.Totals.GraphsRead),
		py.Int(cl.Totals.GraphsEmitted),
	}, nil
}

// Arg 1 (str): planar_code pathname; the first graph is examined
// Arg 2.. (str): triangles given as "u,v,w" with one-based vertices
//
// Returns True if the triangles lie in a common eOPD.
func py_HasEOPD(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "expected a pathname and triangles")
	}
	var pathname string
	if err := py.LoadTuple(args[:1], []interface{}{&pathname}); err != nil {
		return nil, err
	}

	file, err := os.Open(pathname)
	if err != nil {
		return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
	}
	defer file.Close()

	code, err := planarcode.NewReader(file).Next()
	if err == io.EOF {
		return nil, py.ExceptionNewf(py.ValueError, "%s holds no graph", pathname)
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	return checkTriangles(code.Rotation(), args[1:])
}

// Arg 1 (str): rotation expression, e.g. "1: 2,4,3; 2: 3,4,1; 3: 1,4,2; 4: 1,2,3"
// Arg 2.. (str): triangles given as "u,v,w"
func py_HasEOPDExpr(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "expected a rotation expression and triangles")
	}
	var expr string
	if err := py.LoadTuple(args[:1], []interface{}{&expr}); err != nil {
		return nil, err
	}

	rotation, err := libeopd.ParseRotationExpr(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return checkTriangles(rotation, args[1:])
}

func checkTriangles(rotation [][]int, args py.Tuple) (py.Object, error) {
	tris := make([][3]int, len(args))
	for i, arg := range args {
		str, ok := arg.(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected triangle string (got %v)", arg.Type().Name)
		}
		tri, err := libeopd.ParseTriangle(string(str))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		tris[i] = tri
	}

	emb, err := libeopd.NewEmbedding(rotation)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	covered, _, err := libeopd.CheckTriangles(emb, tris)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	if covered {
		return py.True, nil
	}
	return py.False, nil
}

func init() {
	methods := []*py.Method{
		py.MustNewMethod("Classify", py_Classify, 0, "Classify(in, out[, catalog]) writes the graphs of in having an uncovered face 4-tuple to out"),
		py.MustNewMethod("HasEOPD", py_HasEOPD, 0, "HasEOPD(path, 'u,v,w', ...) reports if the triangles of the first graph in path lie in a common eOPD"),
		py.MustNewMethod("HasEOPDExpr", py_HasEOPDExpr, 0, "HasEOPDExpr(rotation, 'u,v,w', ...) is HasEOPD for a text rotation system"),
	}

	globals := py.StringDict{
		"LIB_VERSION":    py.String(LIB_VERSION),
		"MAX_VTX":        py.Int(eopd.MaxVtxCount),
		"MAX_TUPLE_SIZE": py.Int(eopd.MaxTupleSize),
	}

	py.RegisterModule(&py.ModuleImpl{
		Info: py.ModuleInfo{
			Name: "eopd",
			Doc:  "extended outerplanar disc classifier for plane triangulations",
		},
		Methods: methods,
		Globals: globals,
	})
}
