package domain

import "testing"

func sampleCatalog() []Restaurant {
	return []Restaurant{
		{ID: "R1", Name: "Casa X", Stars: 2, Budget: 3, Cuisine: "Española", City: "Madrid", Region: "Madrid"},
		{ID: "R2", Name: "Trattoria Roma", Stars: 0, Budget: 2, Cuisine: "Italiana", City: "Sevilla", Region: "Andalucía"},
		{ID: "R3", Name: "Bar Pepe", Stars: 2, Budget: 1, Cuisine: "Española", City: "Madrid", Region: "Madrid"},
	}
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	filtered := Filter{Search: "casa"}.Apply(sampleCatalog())
	if len(filtered) != 1 || filtered[0].ID != "R1" {
		t.Fatalf("unexpected result: %+v", filtered)
	}
}

func TestFilterSearchNoMatchYieldsEmpty(t *testing.T) {
	filtered := Filter{Search: "pizza"}.Apply(sampleCatalog())
	if len(filtered) != 0 {
		t.Fatalf("expected empty result, got %+v", filtered)
	}
}

func TestFilterSearchMatchesCityAndCuisine(t *testing.T) {
	if filtered := (Filter{Search: "sevilla"}).Apply(sampleCatalog()); len(filtered) != 1 || filtered[0].ID != "R2" {
		t.Fatalf("city search: %+v", filtered)
	}
	if filtered := (Filter{Search: "italiana"}).Apply(sampleCatalog()); len(filtered) != 1 || filtered[0].ID != "R2" {
		t.Fatalf("cuisine search: %+v", filtered)
	}
}

func TestFilterExactFields(t *testing.T) {
	filtered := Filter{Stars: "2", Budget: "1"}.Apply(sampleCatalog())
	if len(filtered) != 1 || filtered[0].ID != "R3" {
		t.Fatalf("unexpected result: %+v", filtered)
	}

	filtered = Filter{Cuisine: "Española"}.Apply(sampleCatalog())
	if len(filtered) != 2 {
		t.Fatalf("expected 2 results, got %d", len(filtered))
	}
}

func TestFilterZeroKeepsAll(t *testing.T) {
	filter := Filter{}
	if !filter.IsZero() {
		t.Fatal("expected zero filter")
	}
	if filtered := filter.Apply(sampleCatalog()); len(filtered) != 3 {
		t.Fatalf("expected full catalog, got %d", len(filtered))
	}
}

func TestFeatured(t *testing.T) {
	catalog := append(sampleCatalog(), Restaurant{ID: "R4", Name: "Alta Mar", Stars: 3})
	featured := Featured(catalog)
	if len(featured) != 3 {
		t.Fatalf("expected 3 featured, got %d", len(featured))
	}
	for _, restaurant := range featured {
		if restaurant.Stars < 2 {
			t.Fatalf("featured restaurant below 2 stars: %+v", restaurant)
		}
	}
}

func TestCuisineOptionsSortedDistinct(t *testing.T) {
	options := CuisineOptions(sampleCatalog())
	if len(options) != 2 || options[0] != "Española" || options[1] != "Italiana" {
		t.Fatalf("unexpected options: %v", options)
	}
}
