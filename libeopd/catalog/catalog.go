package catalog

import (
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/nvcleemp/eopd/eopd"
	"github.com/pkg/errors"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState (MajorVers, MinorVers, NumGraphs as varints)

	gGraphKeyPrefix, planar_code record (little endian) => Witness

A graph is keyed by its encoded record, so a graph is only stored once per rotation system.  The
witness holds the uncovered face tuple found for it, both as a face set and as vertex triples.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
	gGraphKeyPrefix  = []byte{0x01}
)

const (
	catalogMajorVers = 2014
	catalogMinorVers = 1
)

type Opts struct {
	DbPathName string // when empty, the catalog lives in memory
	ReadOnly   bool
}

// CatalogState is stored under gCatalogStateKey.
type CatalogState struct {
	MajorVers uint64
	MinorVers uint64
	NumGraphs uint64
}

// Catalog is a db of graphs found to have an uncovered face tuple.
type Catalog struct {
	db         *badger.DB
	readOnly   bool
	state      CatalogState
	stateDirty bool
}

func Open(opts Opts) (*Catalog, error) {
	cat := &Catalog{
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(eopd.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state = CatalogState{
			MajorVers: catalogMajorVers,
			MinorVers: catalogMinorVers,
		}
	}
	if err == nil && (cat.state.MajorVers != catalogMajorVers || cat.state.MinorVers != catalogMinorVers) {
		err = errors.Wrapf(eopd.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}
	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *Catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
}

func (cat *Catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal())
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *Catalog) Close() error {
	var err error
	if cat.db != nil {
		err = cat.flushState()
		if closeErr := cat.db.Close(); err == nil {
			err = closeErr
		}
		cat.db = nil
	}
	return err
}

func (cat *Catalog) IsReadOnly() bool {
	return cat.readOnly
}

// NumGraphs returns the number of graphs added to the catalog over its lifetime.
func (cat *Catalog) NumGraphs() uint64 {
	return cat.state.NumGraphs
}

func formGraphKey(code []byte) []byte {
	key := make([]byte, 0, len(gGraphKeyPrefix)+len(code))
	key = append(key, gGraphKeyPrefix...)
	return append(key, code...)
}

// TryAdd stores the witness for the given encoded graph.
// Returns false if the graph was already present, in which case nothing is written.
func (cat *Catalog) TryAdd(code []byte, w *Witness) (bool, error) {
	if cat.readOnly {
		return false, errors.Wrap(eopd.ErrBadCatalogParam, "catalog is read-only")
	}

	key := formGraphKey(code)
	added := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		val, err := w.Marshal()
		if err != nil {
			return err
		}
		added = true
		return txn.Set(key, val)
	})
	if err != nil {
		return false, err
	}

	if added {
		cat.state.NumGraphs++
		cat.stateDirty = true
	}
	return added, nil
}

// Get returns the witness stored for the given encoded graph, if any.
func (cat *Catalog) Get(code []byte) (*Witness, bool, error) {
	var w *Witness
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(formGraphKey(code))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			w = &Witness{}
			return w.Unmarshal(val)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return w, true, nil
}

// Each calls onGraph for every stored graph in key order until onGraph returns an error.
//
// The code slice passed to onGraph is only valid for the duration of the call.
func (cat *Catalog) Each(onGraph func(code []byte, w *Witness) error) error {
	return cat.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(gGraphKeyPrefix); it.ValidForPrefix(gGraphKeyPrefix); it.Next() {
			item := it.Item()
			code := item.Key()[len(gGraphKeyPrefix):]
			w := &Witness{}
			err := item.Value(func(val []byte) error {
				return w.Unmarshal(val)
			})
			if err == nil {
				err = onGraph(code, w)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (st *CatalogState) Marshal() []byte {
	buf := proto.NewBuffer(make([]byte, 0, 16))
	buf.EncodeVarint(st.MajorVers)
	buf.EncodeVarint(st.MinorVers)
	buf.EncodeVarint(st.NumGraphs)
	return buf.Bytes()
}

func (st *CatalogState) Unmarshal(val []byte) error {
	buf := proto.NewBuffer(val)
	var err error
	for _, field := range []*uint64{&st.MajorVers, &st.MinorVers, &st.NumGraphs} {
		if *field, err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(eopd.ErrUnmarshal, "catalog state")
		}
	}
	return nil
}
