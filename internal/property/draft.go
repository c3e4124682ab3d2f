package property

import (
	"fmt"
	"regexp"
)

// Image is an image attachment for a draft, already read into memory.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Draft is the in-progress state of an add-property form. It lives from
// form-open until successful submission or explicit discard.
type Draft struct {
	Title        string
	Description  string
	Price        int64
	PropertyType string
	Size         int64
	Bedrooms     int
	Bathrooms    int
	Street       string
	City         string
	Governate    string
	LocationURL  string
	ListingType  string

	InternalAmenityIDs      []int64
	ExternalAmenityIDs      []int64
	AccessibilityAmenityIDs []int64

	Images []Image
}

var locationURLPattern = regexp.MustCompile(`^https?://.+`)

// Validate checks the draft against the listing form rules and returns
// field-level error messages keyed by field name. A nil map means the
// draft is valid and ready for submission.
func (d *Draft) Validate() map[string][]string {
	errs := make(map[string][]string)

	addErr := func(field, msg string) {
		errs[field] = append(errs[field], msg)
	}

	if d.Title == "" {
		addErr("title", "title is required")
	} else if len(d.Title) < 3 {
		addErr("title", "title must be at least 3 characters")
	}

	if d.Description == "" {
		addErr("description", "description is required")
	} else if len(d.Description) < 10 {
		addErr("description", "description must be at least 10 characters")
	}

	if d.Price < 1 {
		addErr("price", "price must be at least 1")
	}

	if d.PropertyType == "" {
		addErr("propertyType", "property type is required")
	}

	if d.Size < 1 {
		addErr("size", "size must be at least 1")
	}

	if d.Bedrooms < 0 {
		addErr("bedrooms", "bedrooms cannot be negative")
	}

	if d.Bathrooms < 1 {
		addErr("bathrooms", "bathrooms must be at least 1")
	}

	if d.Street == "" {
		addErr("street", "street is required")
	}
	if d.City == "" {
		addErr("city", "city is required")
	}
	if d.Governate == "" {
		addErr("governate", "governate is required")
	}

	if d.LocationURL == "" {
		addErr("locationUrl", "location URL is required")
	} else if !locationURLPattern.MatchString(d.LocationURL) {
		addErr("locationUrl", "location URL must start with http:// or https://")
	}

	if d.ListingType == "" {
		addErr("listingType", "listing type is required")
	} else if !ValidListingType(d.ListingType) {
		addErr("listingType", fmt.Sprintf("unknown listing type: %s", d.ListingType))
	}

	if len(d.Images) == 0 {
		addErr("images", "at least one image is required")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Reset clears the draft back to its zero state after a successful
// submission.
func (d *Draft) Reset() {
	*d = Draft{}
}
