package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
)

func TestRecommendationRepository_KeepsNewest(t *testing.T) {
	repo := NewRecommendationRepository()
	ctx := context.Background()
	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.Save(ctx, recommendation.Recommendation{ID: "new", AccountID: 7, Gameweek: 3, CreatedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, recommendation.Recommendation{ID: "old", AccountID: 7, Gameweek: 3, CreatedAt: base}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := repo.GetLatest(ctx, 7, 3)
	if err != nil || !ok {
		t.Fatalf("GetLatest ok=%v err=%v", ok, err)
	}
	if got.ID != "new" {
		t.Fatalf("got %s, want new", got.ID)
	}

	if _, ok, _ := repo.GetLatest(ctx, 7, 4); ok {
		t.Fatalf("expected no recommendation for gw4")
	}
}

func TestRecommendationRepository_ReturnsCopies(t *testing.T) {
	repo := NewRecommendationRepository()
	ctx := context.Background()
	item := recommendation.Recommendation{
		ID: "r1", AccountID: 1, Gameweek: 1,
		Starting: []recommendation.ScoredAsset{{Asset: asset.Asset{ID: 5, Name: "Saka"}}},
	}
	if err := repo.Save(ctx, item); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _, _ := repo.GetLatest(ctx, 1, 1)
	got.Starting[0].Name = "changed"

	again, _, _ := repo.GetLatest(ctx, 1, 1)
	if again.Starting[0].Name != "Saka" {
		t.Fatalf("stored recommendation was mutated")
	}
}
