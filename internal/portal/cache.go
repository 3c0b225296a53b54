package portal

import (
	"errors"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// GifEntry is one list entry. Entries are immutable once appended.
type GifEntry struct {
	Link      string
	Submitter solana.PublicKey
}

// FetchStatus classifies the outcome of a list account fetch
type FetchStatus int

const (
	FetchUnknown FetchStatus = iota
	FetchOK
	FetchNotFound
	FetchDecodeError
	FetchTransportError
)

func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchNotFound:
		return "not-found"
	case FetchDecodeError:
		return "decode-error"
	case FetchTransportError:
		return "transport-error"
	default:
		return "unknown"
	}
}

// FetchResult is the typed outcome of a fetch
type FetchResult struct {
	Status FetchStatus
	Err    error
}

func classifyFetch(err error) FetchResult {
	switch {
	case err == nil:
		return FetchResult{Status: FetchOK}
	case errors.Is(err, ErrAccountNotFound):
		return FetchResult{Status: FetchNotFound, Err: err}
	case errors.Is(err, ErrDecode):
		return FetchResult{Status: FetchDecodeError, Err: err}
	default:
		return FetchResult{Status: FetchTransportError, Err: err}
	}
}

// ListCache is the local mirror of the remote list.
//
// nil entries mean the list account is not initialized (or could not be
// fetched); an empty slice means it is initialized and empty. A refresh
// replaces the whole content, never merges.
type ListCache struct {
	mu        sync.RWMutex
	entries   []GifEntry
	last      FetchResult
	seq       uint64
	committed uint64
}

// Entries returns a copy of the cached list; ok is false for the uninitialized sentinel
func (c *ListCache) Entries() (entries []GifEntry, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entries == nil {
		return nil, false
	}
	return append(make([]GifEntry, 0, len(c.entries)), c.entries...), true
}

// LastFetch returns the result of the fetch the cache currently reflects
func (c *ListCache) LastFetch() FetchResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// begin reserves a sequence number for a fetch about to start
func (c *ListCache) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// commit replaces the cache with the outcome of fetch seq. A fetch that
// started before the committed one is dropped so a slow response cannot
// overwrite a newer one. entries must be non-nil when res is FetchOK.
func (c *ListCache) commit(seq uint64, entries []GifEntry, res FetchResult) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.committed {
		return false
	}
	c.committed = seq
	c.last = res
	if res.Status != FetchOK {
		c.entries = nil
		return true
	}
	c.entries = entries
	return true
}

// reset drops everything, back to the unknown state. reset takes a sequence
// number of its own, so fetches still in flight are dropped when they land.
func (c *ListCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.committed = c.seq
	c.entries = nil
	c.last = FetchResult{}
}
