// Package rootio reads and writes flat ROOT trees as datasets.Table
package rootio

import "go-hep.org/x/hep/groot"
import "go-hep.org/x/hep/groot/riofs"
import "go-hep.org/x/hep/groot/rtree"

import "github.com/pkg/errors"

import "github.com/neurlang/jetclassifier/datasets"

// Reader reads scalar branches of one tree
type Reader struct {
	file *riofs.File
	tree rtree.Tree
}

// Open opens the tree named tree inside the ROOT file at path
func Open(path, tree string) (*Reader, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	obj, err := f.Get(tree)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "get tree %q from %s", tree, path)
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, errors.Errorf("object %q in %s is a %T, not a tree", tree, path, obj)
	}
	return &Reader{file: f, tree: t}, nil
}

// Close closes the underlying file
func (r *Reader) Close() error {
	return r.file.Close()
}

// Entries returns the number of entries of the tree
func (r *Reader) Entries() int64 {
	return r.tree.Entries()
}

// Branches returns the names of the tree branches
func (r *Reader) Branches() []string {
	var names []string
	for _, b := range r.tree.Branches() {
		names = append(names, b.Name())
	}
	return names
}

// Read reads the named branches, converting every scalar numeric type to float64
func (r *Reader) Read(names ...string) (*datasets.Table, error) {
	all := rtree.NewReadVars(r.tree)
	byName := make(map[string]rtree.ReadVar, len(all))
	for _, rv := range all {
		byName[rv.Name] = rv
	}
	rvars := make([]rtree.ReadVar, len(names))
	for i, name := range names {
		rv, ok := byName[name]
		if !ok {
			return nil, errors.Errorf("tree %q has no branch %q", r.tree.Name(), name)
		}
		if _, err := toFloat(rv.Value); err != nil {
			return nil, errors.Wrapf(err, "branch %q", name)
		}
		rvars[i] = rv
	}

	cols := make([][]float64, len(names))
	for i := range cols {
		cols[i] = make([]float64, 0, r.tree.Entries())
	}
	rd, err := rtree.NewReader(r.tree, rvars)
	if err != nil {
		return nil, errors.Wrap(err, "create tree reader")
	}
	defer rd.Close()

	err = rd.Read(func(ctx rtree.RCtx) error {
		for i, rv := range rvars {
			v, err := toFloat(rv.Value)
			if err != nil {
				return errors.Wrapf(err, "entry %d branch %q", ctx.Entry, rv.Name)
			}
			cols[i] = append(cols[i], v)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "read tree")
	}
	return datasets.NewTable(names, cols)
}

func toFloat(ptr interface{}) (float64, error) {
	switch v := ptr.(type) {
	case *float64:
		return *v, nil
	case *float32:
		return float64(*v), nil
	case *int64:
		return float64(*v), nil
	case *int32:
		return float64(*v), nil
	case *int16:
		return float64(*v), nil
	case *int8:
		return float64(*v), nil
	case *uint64:
		return float64(*v), nil
	case *uint32:
		return float64(*v), nil
	case *uint16:
		return float64(*v), nil
	case *uint8:
		return float64(*v), nil
	case *bool:
		if *v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errors.Errorf("unsupported non-scalar type %T", ptr)
}

// WriteTable writes every column of t as a float64 branch of a new tree
func WriteTable(path, tree string, t *datasets.Table) (err error) {
	f, err := groot.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	names := t.Columns()
	values := make([]float64, len(names))
	wvars := make([]rtree.WriteVar, len(names))
	for i, name := range names {
		wvars[i] = rtree.WriteVar{Name: name, Value: &values[i]}
	}
	w, err := rtree.NewWriter(f, tree, wvars)
	if err != nil {
		return errors.Wrapf(err, "create tree %q", tree)
	}
	for row := 0; row < t.Len(); row++ {
		for i, name := range names {
			values[i] = t.Column(name)[row]
		}
		if _, err := w.Write(); err != nil {
			w.Close()
			return errors.Wrapf(err, "write entry %d", row)
		}
	}
	return errors.Wrap(w.Close(), "close tree")
}
