package domain

import (
	"errors"
	"testing"
)

func TestReviewValidateRange(t *testing.T) {
	base := Review{ClientID: "C1", RestaurantID: "R1", VisitType: "familiar"}

	for _, rating := range []int{0, -1, 6} {
		review := base
		review.Rating = rating
		if err := review.Validate(); !errors.Is(err, ErrRatingOutOfRange) {
			t.Fatalf("rating %d: expected ErrRatingOutOfRange, got %v", rating, err)
		}
	}
	for rating := 1; rating <= 5; rating++ {
		review := base
		review.Rating = rating
		if err := review.Validate(); err != nil {
			t.Fatalf("rating %d wrongly rejected: %v", rating, err)
		}
	}
}

func TestBuildReviewList(t *testing.T) {
	payload := map[string]any{
		"resenas": []any{
			map[string]any{"id_cliente": "C1", "id_restaurante": "R1", "valoracion": float64(4), "tipo_visita": "negocios"},
			map[string]any{"valoracion": float64(5)},
		},
	}
	reviews, ok := BuildReviewList(payload)
	if !ok || len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %v %d", ok, len(reviews))
	}
	if reviews[0].Rating != 4 || reviews[0].VisitType != "negocios" {
		t.Fatalf("unexpected review: %+v", reviews[0])
	}
}

func TestReviewsByRestaurant(t *testing.T) {
	index := ReviewsByRestaurant([]Review{{RestaurantID: "R1", Rating: 4}})
	if index["R1"].Rating != 4 {
		t.Fatalf("unexpected index: %+v", index)
	}
}
