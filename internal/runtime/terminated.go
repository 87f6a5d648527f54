package runtime

import "sync"

// terminatedRoots is the process-wide intrusive freelist of parked thread
// roots (spec §3.8, §9's "pushed to a global intrusive freelist under the
// terminated-roots mutex; no payloads are freed at that point — only the
// root-struct is parked"). Kept as its own small type, mirroring the
// teacher's convention of giving each piece of shared process state its own
// mutex rather than one coarse lock.
type terminatedRoots struct {
	mu   sync.Mutex
	head *ThreadRoot
}

func (t *terminatedRoots) push(tr *ThreadRoot) {
	t.mu.Lock()
	tr.next = t.head
	t.head = tr
	t.mu.Unlock()
}

func (t *terminatedRoots) pop() *ThreadRoot {
	t.mu.Lock()
	defer t.mu.Unlock()

	tr := t.head
	if tr == nil {
		return nil
	}

	t.head = tr.next
	tr.next = nil

	return tr
}

