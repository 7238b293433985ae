package db

import (
	"fmt"
	"sync"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// pushKeyAlphabet is ordered by ASCII value so generated keys sort the same
// way as strings and as creation order.
const pushKeyAlphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// pushKeys generates lexicographically increasing keys in the style of
// database push IDs: a millisecond timestamp, a per-process sequence and a
// random suffix.
type pushKeys struct {
	mu   sync.Mutex
	last int64
	seq  int
	now  func() time.Time
}

func (p *pushKeys) next() (string, error) {
	p.mu.Lock()
	ms := p.now().UnixMilli()
	if ms <= p.last {
		ms = p.last
		p.seq++
	} else {
		p.last = ms
		p.seq = 0
	}
	seq := p.seq
	p.mu.Unlock()

	suffix, err := nanoid.Generate(pushKeyAlphabet, 6)
	if err != nil {
		return "", fmt.Errorf("push key: %w", err)
	}
	return fmt.Sprintf("-M%013d%04d%s", ms, seq, suffix), nil
}
