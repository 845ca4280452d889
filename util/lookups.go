package util

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/taigrr/colorhash"
)

const lookupShards = 64

type (
	LookupEntry struct {
		Hash string `json:"hash"` // formatted path hash
		Name string `json:"name"` // original path as it appears in the dictionary
		Line int    `json:"line"` // 1-based dictionary line number
	}
	lookupShard struct {
		mu      sync.RWMutex
		entries map[string]LookupEntry
	}
	// LookupTable maps formatted hashes to original paths. It is safe for
	// concurrent use; once building has finished it is only read.
	LookupTable struct {
		shards [lookupShards]lookupShard
	}
)

func NewLookupTable() *LookupTable {
	lt := &LookupTable{}
	for i := range lt.shards {
		lt.shards[i].entries = make(map[string]LookupEntry)
	}
	return lt
}

func (lt *LookupTable) shard(hash string) *lookupShard {
	return &lt.shards[uint(colorhash.HashString(hash))%lookupShards]
}

// Add inserts le unless an entry for the same hash from an earlier line is
// already present. It reports whether le is the stored entry afterwards.
func (lt *LookupTable) Add(le LookupEntry) bool {
	s := lt.shard(le.Hash)
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[le.Hash]; ok && cur.Line <= le.Line {
		return false
	}
	s.entries[le.Hash] = le
	return true
}

// Get returns the original path for a formatted hash.
func (lt *LookupTable) Get(hash string) (string, bool) {
	s := lt.shard(hash)
	s.mu.RLock()
	defer s.mu.RUnlock()
	le, ok := s.entries[hash]
	return le.Name, ok
}

func (lt *LookupTable) Len() int {
	n := 0
	for i := range lt.shards {
		s := &lt.shards[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Iterate yields entries in dictionary line order.
func (lt *LookupTable) Iterate(yield func(LookupEntry) bool) {
	for _, le := range lt.entries() {
		if !yield(le) {
			return
		}
	}
}

func (lt *LookupTable) entries() []LookupEntry {
	var all []LookupEntry
	for i := range lt.shards {
		s := &lt.shards[i]
		s.mu.RLock()
		for _, le := range s.entries {
			all = append(all, le)
		}
		s.mu.RUnlock()
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Line < all[j].Line })
	return all
}

func (lt *LookupTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Entries []LookupEntry `json:"entries"`
	}{
		Entries: lt.entries(),
	})
}

// Save writes the table as JSON to path.
func (lt *LookupTable) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	je := json.NewEncoder(f)
	je.SetIndent("", "  ")
	return je.Encode(lt)
}
