package driver

import "jsxstream/internal/typeinfo"

// OpenStore opens the type-info cache in dir. Cache misses are inferred
// with opts, and opts.Store of that inference is the returned store, so
// transitive imports are cached too.
func OpenStore(dir string, opts Options) (*typeinfo.Store, error) {
	in := &inferer{opts: opts}
	store, err := typeinfo.Open(dir, in)
	if err != nil {
		return nil, &ResourceError{Op: "open", Path: dir, Err: err}
	}
	in.opts.Store = store
	return store, nil
}
