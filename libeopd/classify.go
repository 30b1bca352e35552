package libeopd

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/nvcleemp/eopd/eopd"
	"github.com/nvcleemp/eopd/libeopd/catalog"
	"github.com/nvcleemp/eopd/libeopd/planarcode"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

type ClassifyOpts struct {
	Skip    uint64           // leading graphs to read without analysing
	Limit   uint64           // stop after reading this many graphs (0 for no limit)
	Catalog *catalog.Catalog // if set, uncovered graphs are recorded and emitted only once
}

// Totals summarises a classification run.
type Totals struct {
	GraphsRead    uint64
	GraphsEmitted uint64
	Duplicates    uint64 // uncovered graphs already present in the catalog
	eopd.Stats
}

// WriteSummary prints the read and written counts followed by the work counters.
func (tot *Totals) WriteSummary(out io.Writer) {
	fmt.Fprintf(out, "Read %d graph%s.\n", tot.GraphsRead, eopd.Plural(tot.GraphsRead))
	fmt.Fprintf(out, "Written %d uncovered graph%s.\n", tot.GraphsEmitted, eopd.Plural(tot.GraphsEmitted))
	if tot.Duplicates > 0 {
		fmt.Fprintf(out, "Skipped %d graph%s already in the catalog.\n", tot.Duplicates, eopd.Plural(tot.Duplicates))
	}
	fmt.Fprintf(out, "Checked %d triples and %d quadruples: %d cache hits, %d searches (%d found), %d cached patches.\n",
		tot.TuplesChecked[3], tot.TuplesChecked[4], tot.CacheHits, tot.Searches, tot.SearchHits, tot.CachedPatches)
}

// Verdict is the outcome of classifying one graph.
type Verdict struct {
	Embedding *Embedding
	Uncovered bool
	Tuple     eopd.Bitset // the uncovered tuple when Uncovered is set
}

// Classifier streams planar_code graphs and re-emits those having an uncovered face tuple.
type Classifier struct {
	Totals Totals

	opts     ClassifyOpts
	emb      Embedding
	analysis *Analysis
	keyBuf   []byte
}

func NewClassifier(opts ClassifyOpts) *Classifier {
	return &Classifier{
		opts:     opts,
		analysis: NewAnalysis(),
	}
}

// Classify analyses a single rotation system.  The returned embedding is reused by the next call.
func (cl *Classifier) Classify(rotation [][]int) (Verdict, error) {
	if err := cl.emb.Init(rotation); err != nil {
		return Verdict{}, err
	}

	cl.analysis.Reset(&cl.emb)
	tuple, uncovered := cl.analysis.FindUncoveredTuple()
	cl.Totals.Add(cl.analysis.Stats())

	return Verdict{
		Embedding: &cl.emb,
		Uncovered: uncovered,
		Tuple:     tuple,
	}, nil
}

// Run reads graphs from src until it is exhausted (or Limit graphs were read) and writes every
// uncovered graph to dst, in the width of its input record.  Graphs already written stay valid if
// a later record fails.
func (cl *Classifier) Run(src io.Reader, dst io.Writer) error {
	rd := planarcode.NewReader(src)
	var wr *planarcode.Writer

	for cl.opts.Limit == 0 || cl.Totals.GraphsRead < cl.opts.Limit {
		code, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "reading graph %d", cl.Totals.GraphsRead+1)
		}
		cl.Totals.GraphsRead++
		if cl.Totals.GraphsRead <= cl.opts.Skip {
			continue
		}

		verdict, err := cl.Classify(code.Rotation())
		if err != nil {
			return errors.Wrapf(err, "graph %d", cl.Totals.GraphsRead)
		}
		if !verdict.Uncovered {
			continue
		}

		out := planarcode.NewCode(verdict.Embedding.Rotation(), code.Width)
		if cl.opts.Catalog != nil {
			added, err := cl.record(out, &verdict)
			if err != nil {
				return errors.Wrapf(err, "cataloging graph %d", cl.Totals.GraphsRead)
			}
			if !added {
				cl.Totals.Duplicates++
				continue
			}
		}

		if wr == nil {
			wr = planarcode.NewWriter(dst)
			wr.SetByteOrder(rd.ByteOrder())
		}
		if err = wr.Write(out); err != nil {
			return err
		}
		cl.Totals.GraphsEmitted++
		klog.V(LogGraphs).Infof("graph %d is uncovered: faces %v", cl.Totals.GraphsRead, verdict.Tuple)
	}
	return nil
}

func (cl *Classifier) record(out *planarcode.Code, verdict *Verdict) (bool, error) {
	cl.keyBuf = out.AppendTo(cl.keyBuf[:0], binary.LittleEndian)
	return cl.opts.Catalog.TryAdd(cl.keyBuf, &catalog.Witness{
		Tuple:     verdict.Tuple,
		Triangles: TupleTriangles(verdict.Embedding, verdict.Tuple),
	})
}
