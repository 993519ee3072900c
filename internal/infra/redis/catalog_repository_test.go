package redis

import (
	"context"
	"testing"
	"time"

	"carboquiz/internal/catalog"
	"carboquiz/internal/domain"
)

type countingLoader struct {
	catalog.Loader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.Loader.LoadCatalog(ctx)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:   1,
			Text: "Pick one",
			Options: []domain.Option{
				{ID: 1, Text: "a", CarbonFootprint: 10, Rank: 1},
				{ID: 2, Text: "b", CarbonFootprint: 20, Rank: 2},
			},
		},
	}
}

func TestCatalogRepositoryCachesInRedis(t *testing.T) {
	client := newTestClient(t)
	loader := &countingLoader{Loader: catalog.NewStaticLoader(sampleQuestions())}
	repo := NewCatalogRepository(client, loader, time.Minute)

	questions, err := repo.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}

	// Second call should hit cache, loader not incremented.
	_, _ = repo.GetCatalog(context.Background())
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestCatalogRepositorySharesCacheAcrossInstances(t *testing.T) {
	client := newTestClient(t)
	first := &countingLoader{Loader: catalog.NewStaticLoader(sampleQuestions())}
	second := &countingLoader{Loader: catalog.NewStaticLoader(sampleQuestions())}

	if _, err := NewCatalogRepository(client, first, time.Minute).GetCatalog(context.Background()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if _, err := NewCatalogRepository(client, second, time.Minute).GetCatalog(context.Background()); err != nil {
		t.Fatalf("read through second instance: %v", err)
	}
	if second.calls != 0 {
		t.Fatalf("expected second loader untouched, got %d calls", second.calls)
	}
}

func TestCatalogRepositoryPropagatesLoaderError(t *testing.T) {
	repo := NewCatalogRepository(newTestClient(t), catalog.NewStaticLoader(nil), time.Minute)
	if _, err := repo.GetCatalog(context.Background()); err != domain.ErrCatalogNotFound {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}
}
