package scheduling

import (
	"sync"
	"time"
)

// partitionLocks serializes all mutations of one (doctorId, date) queue
// partition. Booking, position allocation and reordering for a partition
// execute strictly one at a time; slot enumeration reads stay lock-free.
type partitionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPartitionLocks() *partitionLocks {
	return &partitionLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key, creating it on first use, and returns the
// matching unlock function.
func (p *partitionLocks) lock(key string) func() {
	p.mu.Lock()
	m, ok := p.locks[key]
	if !ok {
		m = &sync.Mutex{}
		p.locks[key] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// partitionKey identifies one (doctorId, date) queue partition.
func partitionKey(doctorID string, date time.Time) string {
	return doctorID + "|" + date.Format("2006-01-02")
}
