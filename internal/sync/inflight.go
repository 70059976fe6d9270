package sync

import gosync "sync"

// opKey identifies a write operation for duplicate-submission protection.
type opKey struct {
	kind string
	id   string
	verb string
}

// inflight tracks writes that have been issued but not completed, so a rapid
// duplicate submission (double-tapping "Save") does not issue a second
// create or update for the same record.
type inflight struct {
	mu  gosync.Mutex
	ops map[opKey]struct{}
}

func newInflight() *inflight {
	return &inflight{ops: make(map[opKey]struct{})}
}

// begin registers the operation. It reports false when an identical
// operation is already running.
func (f *inflight) begin(kind, id, verb string) bool {
	key := opKey{kind: kind, id: id, verb: verb}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.ops[key]; busy {
		return false
	}
	f.ops[key] = struct{}{}
	return true
}

// end releases the operation.
func (f *inflight) end(kind, id, verb string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.ops, opKey{kind: kind, id: id, verb: verb})
}
