package assets

import (
	"math/rand"
	"testing"
)

func TestPickFallsBackForUnknownRank(t *testing.T) {
	p := NewGifPickerWithSource(map[int][]string{1: {"a.gif"}}, rand.New(rand.NewSource(1)))
	if got := p.Pick(99); got != DefaultGif {
		t.Fatalf("expected default gif, got %q", got)
	}
	if got := p.Pick(2); got != DefaultGif {
		t.Fatalf("expected default gif for empty bucket, got %q", got)
	}
}

func TestPickSingleCandidateMayRepeat(t *testing.T) {
	p := NewGifPickerWithSource(map[int][]string{1: {"only.gif"}}, rand.New(rand.NewSource(1)))
	if p.Pick(1) != "only.gif" || p.Pick(1) != "only.gif" {
		t.Fatal("single-candidate bucket must always serve its gif")
	}
}

func TestPickNeverRepeatsImmediately(t *testing.T) {
	p := NewGifPickerWithSource(map[int][]string{
		3: {"a.gif", "b.gif", "c.gif"},
	}, rand.New(rand.NewSource(42)))

	last := p.Pick(3)
	for i := 0; i < 100; i++ {
		next := p.Pick(3)
		if next == last {
			t.Fatalf("immediate repeat of %q on iteration %d", next, i)
		}
		last = next
	}
}

func TestDefaultManifestCoversAllRanks(t *testing.T) {
	manifest := defaultManifest()
	for rank := 1; rank <= 6; rank++ {
		if len(manifest[rank]) == 0 {
			t.Fatalf("rank %d has no gifs", rank)
		}
	}
}
