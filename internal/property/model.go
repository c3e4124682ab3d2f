// Package property provides the rental property domain model.
package property

import "encoding/json"

// ListingType distinguishes rental listings from sale listings.
type ListingType string

const (
	ListingTypeRent ListingType = "Rent"
	ListingTypeSale ListingType = "Sale"
)

// ValidListingType returns true if s is a known listing type.
func ValidListingType(s string) bool {
	switch ListingType(s) {
	case ListingTypeRent, ListingTypeSale:
		return true
	}
	return false
}

// Property represents a rental property listing as served by the backend.
type Property struct {
	ID                     int64      `json:"propertyId"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Price                  int64      `json:"price"`
	PropertyType           string     `json:"propertyType"`
	Size                   int64      `json:"size"`
	Bedrooms               int        `json:"bedrooms"`
	Bathrooms              int        `json:"bathrooms"`
	Street                 string     `json:"street"`
	City                   string     `json:"city"`
	Governate              string     `json:"governate"`
	ListedAt               string     `json:"listedAt"`
	Images                 StringList `json:"propertyImages"`
	Owner                  *OwnerInfo `json:"ownerInfo,omitempty"`
	InternalAmenities      StringList `json:"internalAmenities"`
	ExternalAmenities      StringList `json:"externalAmenities"`
	AccessibilityAmenities StringList `json:"accessibilityAmenities"`

	// IsFavorite is the client-side shadow of the server's favorite
	// membership for the current user. It is not part of the listing
	// payload itself and may transiently diverge from the server value
	// while a toggle is in flight.
	IsFavorite bool `json:"isFavorite,omitempty"`
}

// OwnerInfo identifies the listing owner.
type OwnerInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Review is a user review attached to a property.
type Review struct {
	ID         int64  `json:"reviewId,omitempty"`
	PropertyID int64  `json:"propertyId"`
	UserID     string `json:"userId,omitempty"`
	UserName   string `json:"userName,omitempty"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	ReviewDate string `json:"reviewDate,omitempty"`
}

// Filters controls server-side filtering and pagination for listings.
type Filters struct {
	Page                    int
	PageSize                int
	PropertyType            string
	City                    string
	Governate               string
	Bedrooms                int
	Bathrooms               int
	Size                    int64
	MinPrice                int64
	MaxPrice                int64
	SortBy                  string
	Search                  string
	InternalAmenityIDs      []int64
	ExternalAmenityIDs      []int64
	AccessibilityAmenityIDs []int64
}

// Page is one page of listing results.
type Page struct {
	PageIndex  int         `json:"pageIndex"`
	PageSize   int         `json:"pageSize"`
	TotalCount int         `json:"totalCount"`
	Properties []*Property `json:"data"`
}

// StringList is a []string that unmarshals from either a bare JSON array
// or the reference-preserving {"$id": ..., "$values": [...]} wrapper the
// backend emits.
type StringList []string

// UnmarshalJSON accepts both list encodings.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*l = plain
		return nil
	}

	var wrapped struct {
		Values []string `json:"$values"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Values
	return nil
}
