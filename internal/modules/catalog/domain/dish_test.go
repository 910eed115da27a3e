package domain

import "testing"

func TestBuildDishList(t *testing.T) {
	payload := map[string]any{
		"platos": []any{
			map[string]any{"nombre": "Gazpacho", "tipo": "ENTRANTE", "precio": 6.5, "sin_alergeno": true},
			map[string]any{"nombre": "Cochinillo", "tipo": "principal", "precio": 24.0},
			map[string]any{"nombre": "sin tipo", "tipo": "RACION", "precio": 3.0},
		},
	}

	dishes, ok := BuildDishList(payload)
	if !ok {
		t.Fatal("expected dish list")
	}
	if len(dishes) != 2 {
		t.Fatalf("expected 2 dishes, got %d", len(dishes))
	}
	if dishes[0].Category != CategoryStarter || !dishes[0].FreeOfAllergen {
		t.Fatalf("unexpected first dish: %+v", dishes[0])
	}
	if dishes[1].Category != CategoryMain || dishes[1].FreeOfAllergen {
		t.Fatalf("unexpected second dish: %+v", dishes[1])
	}
}

func TestGroupDishesFixedCategories(t *testing.T) {
	dishes := []Dish{
		{Name: "Flan", Category: CategoryDessert},
		{Name: "Gazpacho", Category: CategoryStarter},
		{Name: "Tarta", Category: CategoryDessert},
	}

	grouped := GroupDishes(dishes)
	if len(grouped[CategoryDessert]) != 2 {
		t.Fatalf("expected 2 desserts, got %d", len(grouped[CategoryDessert]))
	}
	if len(grouped[CategoryStarter]) != 1 {
		t.Fatalf("expected 1 starter, got %d", len(grouped[CategoryStarter]))
	}
	if len(grouped[CategoryDrink]) != 0 {
		t.Fatal("expected no drinks")
	}
}

func TestBuildAllergenList(t *testing.T) {
	payload := map[string]any{
		"alergenos": []any{
			map[string]any{"nombre": "Gluten"},
			map[string]any{"nombre": " "},
			map[string]any{"nombre": "Lactosa"},
		},
	}
	allergens, ok := BuildAllergenList(payload)
	if !ok {
		t.Fatal("expected allergen list")
	}
	if len(allergens) != 2 || allergens[0].Name != "Gluten" || allergens[1].Name != "Lactosa" {
		t.Fatalf("unexpected allergens: %+v", allergens)
	}
}
