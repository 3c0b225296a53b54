package portal

import (
	"context"
)

// Refresh fetches the list account and replaces the cache with what it holds.
// The returned error is only ErrNotConnected; fetch failures are reported in
// the result and leave the cache empty.
func (p *Portal) Refresh(ctx context.Context) (FetchResult, error) {
	pc, err := p.program()
	if err != nil {
		return FetchResult{}, err
	}
	return p.refresh(ctx, pc), nil
}

func (p *Portal) refresh(ctx context.Context, pc ProgramClient) FetchResult {
	seq := p.cache.begin()
	address := p.BaseAccount()

	acct, err := pc.FetchBaseAccount(ctx, address)
	res := classifyFetch(err)
	if err != nil {
		switch res.Status {
		case FetchNotFound:
			log.Infow("list account not initialized", "address", address.String())
		default:
			log.Errorw("Error in getGifList", "address", address.String(), "status", res.Status.String(), "err", err)
		}
		p.cache.commit(seq, nil, res)
		return res
	}

	entries := make([]GifEntry, 0, len(acct.GifList))
	for _, item := range acct.GifList {
		entries = append(entries, GifEntry{Link: item.GifLink, Submitter: item.UserAddress})
	}
	if !p.cache.commit(seq, entries, res) {
		log.Debugw("dropped stale list fetch", "seq", seq)
	}
	return res
}
