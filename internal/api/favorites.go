package api

import (
	"context"
	"fmt"

	"github.com/mkhalil/rent-finder/internal/property"
)

// AddFavorite marks a property as a favorite for the current user.
// The backend answers these writes with a plain text body.
func (c *Client) AddFavorite(ctx context.Context, propertyID int64) error {
	return c.post(ctx, fmt.Sprintf("/api/Favorites/%d", propertyID), nil, nil)
}

// RemoveFavorite removes a property from the current user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, propertyID int64) error {
	return c.del(ctx, fmt.Sprintf("/api/Favorites/remove/%d", propertyID))
}

// IsFavorite reports whether a property is in the current user's
// favorites.
func (c *Client) IsFavorite(ctx context.Context, propertyID int64) (bool, error) {
	var member bool
	if err := c.get(ctx, fmt.Sprintf("/api/Favorites/added/%d", propertyID), &member); err != nil {
		return false, err
	}
	return member, nil
}

// favoriteEntry is the reduced listing shape the favorites endpoint
// returns.
type favoriteEntry struct {
	PropertyID   int64  `json:"propertyId"`
	Title        string `json:"title"`
	MainImageURL string `json:"mainImageUrl"`
	City         string `json:"city"`
	Governate    string `json:"governate"`
	Price        int64  `json:"price"`
	ListingType  string `json:"listingType"`
	AddedAt      string `json:"addedToFavoritesAt"`
}

// Favorites returns the current user's favorite properties.
func (c *Client) Favorites(ctx context.Context) ([]*property.Property, error) {
	var resp struct {
		Values []favoriteEntry `json:"$values"`
	}
	if err := c.get(ctx, "/api/Favorites", &resp); err != nil {
		return nil, err
	}

	props := make([]*property.Property, 0, len(resp.Values))
	for _, fav := range resp.Values {
		props = append(props, favoriteToProperty(fav))
	}
	return props, nil
}

// favoriteToProperty converts a favorites entry to the common property
// shape used by views.
func favoriteToProperty(fav favoriteEntry) *property.Property {
	p := &property.Property{
		ID:           fav.PropertyID,
		Title:        fav.Title,
		Price:        fav.Price,
		PropertyType: fav.ListingType,
		City:         fav.City,
		Governate:    fav.Governate,
		ListedAt:     fav.AddedAt,
		IsFavorite:   true,
	}
	if fav.MainImageURL != "" {
		p.Images = property.StringList{fav.MainImageURL}
	}
	return p
}
