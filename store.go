package markov

import "sync"

// Store is the transition store contract shared by all chain variants: the
// token to successor-list mapping plus the suffix set of sentence-starting
// tokens. Lists keep insertion order and retain duplicates; repetition is
// how the chain encodes empirical frequency. Entries are never removed,
// only appended to.
type Store interface {
	// Add appends successor to the list for key, creating it if absent.
	Add(key, successor string)

	// Ensure guarantees a (possibly empty) list entry exists for key.
	Ensure(key string)

	// Successors returns an independent copy of key's successor list. A key
	// with no recorded successors yields an empty result, never an error.
	Successors(key string) []string

	// AddSuffix marks word as a sentence-starting token.
	AddSuffix(word string)

	// HasSuffix reports whether word began some ingested phrase.
	HasSuffix(word string) bool

	// Len reports the number of keys in the mapping.
	Len() int

	// Snapshot returns deep copies of the mapping and the suffix set.
	// Consistency across keys depends on the variant: only the
	// read-write-lock store excludes concurrent appends for the duration.
	Snapshot() (transitions map[string][]string, suffixes []string)

	// Copy produces an independent store of the same variant whose
	// contents are value-equal to this one at the instant of the copy.
	Copy() Store
}

// newStore selects the storage variant for the given policy flags.
func newStore(concurrent, traversable bool) Store {
	switch {
	case concurrent && traversable:
		return newLockedStore()
	case concurrent:
		return newSyncStore()
	default:
		return newMapStore()
	}
}

// loadSnapshot replays a decoded snapshot into a freshly built store.
// When the snapshot carries no suffix set (a bare token-to-successors
// mapping from another producer), the set is derived from the start
// sentinel's list.
func loadSnapshot(s Store, snap *Snapshot) {
	for key, successors := range snap.Transitions {
		s.Ensure(key)
		for _, word := range successors {
			s.Add(key, word)
		}
	}
	if len(snap.Suffixes) > 0 {
		for _, word := range snap.Suffixes {
			s.AddSuffix(word)
		}
		return
	}
	for _, word := range snap.Transitions[ChainStart] {
		s.AddSuffix(word)
	}
}

// mapStore is the unguarded variant for single-goroutine use.
type mapStore struct {
	lists    map[string][]string
	suffixes map[string]struct{}
}

func newMapStore() *mapStore {
	return &mapStore{
		lists: map[string][]string{
			ChainStart: {},
			ChainEnd:   {},
		},
		suffixes: make(map[string]struct{}),
	}
}

func (m *mapStore) Add(key, successor string) {
	m.lists[key] = append(m.lists[key], successor)
}

func (m *mapStore) Ensure(key string) {
	if _, ok := m.lists[key]; !ok {
		m.lists[key] = []string{}
	}
}

func (m *mapStore) Successors(key string) []string {
	list := m.lists[key]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func (m *mapStore) AddSuffix(word string)      { m.suffixes[word] = struct{}{} }
func (m *mapStore) HasSuffix(word string) bool { _, ok := m.suffixes[word]; return ok }
func (m *mapStore) Len() int                   { return len(m.lists) }

func (m *mapStore) Snapshot() (map[string][]string, []string) {
	transitions := make(map[string][]string, len(m.lists))
	for key, list := range m.lists {
		out := make([]string, len(list))
		copy(out, list)
		transitions[key] = out
	}
	suffixes := make([]string, 0, len(m.suffixes))
	for word := range m.suffixes {
		suffixes = append(suffixes, word)
	}
	return transitions, suffixes
}

func (m *mapStore) Copy() Store {
	cp := newMapStore()
	transitions, suffixes := m.Snapshot()
	cp.lists = transitions
	for _, word := range suffixes {
		cp.suffixes[word] = struct{}{}
	}
	return cp
}

// tokenList is a successor list with its own append lock, so concurrent
// appends on the same key serialize without involving any other key.
type tokenList struct {
	mu    sync.Mutex
	words []string
}

func (l *tokenList) append(word string) {
	l.mu.Lock()
	l.words = append(l.words, word)
	l.mu.Unlock()
}

// snapshot copies the list under its lock, so readers never observe a
// torn or concurrently growing slice.
func (l *tokenList) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}

// syncStore is the list-synchronized variant. The RWMutex guards only the
// registries (map shape and suffix set); list contents are guarded by each
// list's own mutex. Appends on different keys therefore proceed without
// blocking each other.
//
// Snapshot sees each list at a consistent point but not the map as a
// whole; a concurrent AddPhrase may land in some lists of the snapshot and
// not others. Variants that need whole-map consistency use lockedStore.
type syncStore struct {
	mu       sync.RWMutex
	lists    map[string]*tokenList
	suffixes map[string]struct{}
}

func newSyncStore() *syncStore {
	return &syncStore{
		lists: map[string]*tokenList{
			ChainStart: {},
			ChainEnd:   {},
		},
		suffixes: make(map[string]struct{}),
	}
}

// list returns the tokenList for key, creating it if absent. The common
// path is a shared read lock; creation upgrades to the write lock with a
// re-check.
func (s *syncStore) list(key string) *tokenList {
	s.mu.RLock()
	l := s.lists[key]
	s.mu.RUnlock()
	if l != nil {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l = s.lists[key]; l == nil {
		l = &tokenList{}
		s.lists[key] = l
	}
	return l
}

func (s *syncStore) Add(key, successor string) {
	s.list(key).append(successor)
}

func (s *syncStore) Ensure(key string) {
	s.list(key)
}

func (s *syncStore) Successors(key string) []string {
	s.mu.RLock()
	l := s.lists[key]
	s.mu.RUnlock()
	if l == nil {
		return nil
	}
	return l.snapshot()
}

func (s *syncStore) AddSuffix(word string) {
	s.mu.Lock()
	s.suffixes[word] = struct{}{}
	s.mu.Unlock()
}

func (s *syncStore) HasSuffix(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.suffixes[word]
	return ok
}

func (s *syncStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lists)
}

func (s *syncStore) Snapshot() (map[string][]string, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	transitions := make(map[string][]string, len(s.lists))
	for key, l := range s.lists {
		transitions[key] = l.snapshot()
	}
	suffixes := make([]string, 0, len(s.suffixes))
	for word := range s.suffixes {
		suffixes = append(suffixes, word)
	}
	return transitions, suffixes
}

func (s *syncStore) Copy() Store {
	cp := newSyncStore()
	transitions, suffixes := s.Snapshot()
	for key, list := range transitions {
		cp.lists[key] = &tokenList{words: list}
	}
	for _, word := range suffixes {
		cp.suffixes[word] = struct{}{}
	}
	return cp
}

// lockedStore is the read-write-lock variant used by traversable chains.
// Mutations take the write side; Snapshot and Copy take the read side and
// so observe a structurally consistent view across the entire map, which
// per-list synchronization alone cannot guarantee. Point lookups take the
// read side and then the lighter per-list lock beneath it.
type lockedStore struct {
	mu   sync.RWMutex
	data *syncStore
}

func newLockedStore() *lockedStore {
	return &lockedStore{data: newSyncStore()}
}

func (s *lockedStore) Add(key, successor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Add(key, successor)
}

func (s *lockedStore) Ensure(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Ensure(key)
}

func (s *lockedStore) Successors(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Successors(key)
}

func (s *lockedStore) AddSuffix(word string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AddSuffix(word)
}

func (s *lockedStore) HasSuffix(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.HasSuffix(word)
}

func (s *lockedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Len()
}

func (s *lockedStore) Snapshot() (map[string][]string, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Snapshot()
}

func (s *lockedStore) Copy() Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := newLockedStore()
	transitions, suffixes := s.data.Snapshot()
	for key, list := range transitions {
		cp.data.lists[key] = &tokenList{words: list}
	}
	for _, word := range suffixes {
		cp.data.suffixes[word] = struct{}{}
	}
	return cp
}
