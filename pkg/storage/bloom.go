package storage

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	bloomCapacity = 100000
	falsePositive = 0.01
)

// Filter is a concurrency safe bloom filter of known DIDs. It only ever
// grows, deleted DIDs stay in the set.
type Filter struct {
	mu sync.RWMutex
	b  *bloom.BloomFilter
}

func NewFilter() *Filter {
	return &Filter{b: bloom.NewWithEstimates(bloomCapacity, falsePositive)}
}

func (f *Filter) Add(did string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.b.AddString(did)
}

// MayContain is false only when did was never added
func (f *Filter) MayContain(did string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.b.TestString(did)
}

func (f *Filter) MarshalBinary() ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.b.GobEncode()
}

func (f *Filter) UnmarshalBinary(b []byte) error {
	n := bloom.NewWithEstimates(bloomCapacity, falsePositive)
	if err := n.GobDecode(b); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.b = n
	return nil
}
