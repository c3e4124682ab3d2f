package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkhalil/rent-finder/internal/property"
)

// reviewBody is the payload for adding or updating a review.
type reviewBody struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Reviews returns the reviews for a property.
func (c *Client) Reviews(ctx context.Context, propertyID int64) ([]*property.Review, error) {
	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/api/Reviews/%d", propertyID), &raw); err != nil {
		return nil, err
	}

	var direct []*property.Review
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Values []*property.Review `json:"$values"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding reviews: %w", err)
	}
	return wrapped.Values, nil
}

// AddReview submits a review for a property. Review routes are scoped by
// user id, which the caller resolves from the bearer token claims.
func (c *Client) AddReview(ctx context.Context, userID string, propertyID int64, rating int, comment string) error {
	body := reviewBody{Rating: rating, Comment: comment}
	return c.post(ctx, fmt.Sprintf("/api/Reviews/%s/%d", userID, propertyID), body, nil)
}

// UpdateReview replaces the rating and comment of an existing review.
func (c *Client) UpdateReview(ctx context.Context, userID string, reviewID int64, rating int, comment string) error {
	body := reviewBody{Rating: rating, Comment: comment}
	return c.put(ctx, fmt.Sprintf("/api/Reviews/%s/%d", userID, reviewID), body, nil)
}

// DeleteReview removes one of the user's reviews.
func (c *Client) DeleteReview(ctx context.Context, userID string, reviewID int64) error {
	return c.del(ctx, fmt.Sprintf("/api/Reviews/%s/%d", userID, reviewID))
}
