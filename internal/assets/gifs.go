// Package assets selects impact-screen media. Selection state is
// process-scoped: the last-shown map lives for the lifetime of the process
// and is never swept.
package assets

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultGif is served when a rank has no media or loading fails client-side.
const DefaultGif = "/assets/gifs/default.gif"

// GifPicker chooses an animation for a rank bucket (1=best .. 6=worst),
// avoiding an immediate repeat of the last one shown for that bucket.
type GifPicker struct {
	mu        sync.Mutex
	byRank    map[int][]string
	lastShown map[int]string
	rnd       *rand.Rand
}

func NewGifPicker() *GifPicker {
	return newGifPicker(defaultManifest(), rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGifPickerWithSource is test-only for deterministic picks.
func NewGifPickerWithSource(byRank map[int][]string, rnd *rand.Rand) *GifPicker {
	return newGifPicker(byRank, rnd)
}

func newGifPicker(byRank map[int][]string, rnd *rand.Rand) *GifPicker {
	return &GifPicker{
		byRank:    byRank,
		lastShown: make(map[int]string),
		rnd:       rnd,
	}
}

// Pick returns a gif path for the rank. Unknown ranks and empty buckets fall
// back to DefaultGif; a bucket with more than one entry never repeats the
// previous pick for that bucket.
func (p *GifPicker) Pick(rank int) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates, ok := p.byRank[rank]
	if !ok || len(candidates) == 0 {
		return DefaultGif
	}

	pick := candidates[p.rnd.Intn(len(candidates))]
	if len(candidates) > 1 {
		for pick == p.lastShown[rank] {
			pick = candidates[p.rnd.Intn(len(candidates))]
		}
	}
	p.lastShown[rank] = pick
	return pick
}

func defaultManifest() map[int][]string {
	return map[int][]string{
		1: {"/assets/gifs/rank1/forest.gif", "/assets/gifs/rank1/high-five.gif", "/assets/gifs/rank1/sunshine.gif"},
		2: {"/assets/gifs/rank2/sprout.gif", "/assets/gifs/rank2/thumbs-up.gif"},
		3: {"/assets/gifs/rank3/balance.gif", "/assets/gifs/rank3/thinking.gif"},
		4: {"/assets/gifs/rank4/cloudy.gif", "/assets/gifs/rank4/hmm.gif"},
		5: {"/assets/gifs/rank5/smokestack.gif", "/assets/gifs/rank5/oh-no.gif"},
		6: {"/assets/gifs/rank6/alarm.gif", "/assets/gifs/rank6/melting.gif"},
	}
}
