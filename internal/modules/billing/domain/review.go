package domain

import (
	"errors"
	"strings"

	"theknifeweb/internal/shared/normalization"
)

var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5 stars")

// Review is a client's star rating and visit-type tag for a restaurant. It is
// linked to invoices post-hoc for display, never stored on the invoice itself.
type Review struct {
	ClientID     string
	RestaurantID string
	Rating       int
	VisitType    string
}

// Validate rejects out-of-range ratings before any network call. Zero stars
// in particular never reaches the server.
func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrRatingOutOfRange
	}
	if strings.TrimSpace(r.ClientID) == "" || strings.TrimSpace(r.RestaurantID) == "" {
		return errors.New("review requires client and restaurant ids")
	}
	return nil
}

// NormalizeReview constructs a Review from a loosely typed map.
func NormalizeReview(raw map[string]any) (Review, bool) {
	restaurantID := normalization.AsString(raw["id_restaurante"])
	if restaurantID == "" {
		return Review{}, false
	}
	return Review{
		ClientID:     normalization.AsString(raw["id_cliente"]),
		RestaurantID: restaurantID,
		Rating:       normalization.AsInt(raw["valoracion"]),
		VisitType:    normalization.AsString(raw["tipo_visita"]),
	}, true
}

// BuildReviewList projects the {"resenas": [...]} envelope into records.
func BuildReviewList(payload any) ([]Review, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	rawItems := normalization.AsInterfaceSlice(container["resenas"])
	if rawItems == nil {
		rawItems = normalization.AsInterfaceSlice(container["items"])
	}
	if rawItems == nil {
		return nil, false
	}
	result := make([]Review, 0, len(rawItems))
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if review, ok := NormalizeReview(rawMap); ok {
				result = append(result, review)
			}
		}
	}
	return result, true
}

// ReviewsByRestaurant indexes reviews by restaurant id. Populated before the
// personal-area render consults it, matching the strict fetch order.
func ReviewsByRestaurant(reviews []Review) map[string]Review {
	index := make(map[string]Review, len(reviews))
	for _, review := range reviews {
		index[review.RestaurantID] = review
	}
	return index
}
