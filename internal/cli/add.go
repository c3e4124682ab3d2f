package cli

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/listing"
	"github.com/mkhalil/rent-finder/internal/payment"
	"github.com/mkhalil/rent-finder/internal/property"
)

func newAddCmd() *cobra.Command {
	var (
		draft  property.Draft
		images []string
		card   cardFlags
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a paid property listing",
		Long:  "Validate a new listing, charge the listing fee to the given card, and publish the listing. The card is only charged when the listing form is valid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, &draft, images, card)
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "listing title")
	cmd.Flags().StringVar(&draft.Description, "description", "", "listing description")
	cmd.Flags().Int64Var(&draft.Price, "price", 0, "price")
	cmd.Flags().StringVar(&draft.PropertyType, "type", "", "property type (e.g. Apartment, Villa)")
	cmd.Flags().Int64Var(&draft.Size, "size", 0, "size in sqm")
	cmd.Flags().IntVar(&draft.Bedrooms, "beds", 0, "bedrooms")
	cmd.Flags().IntVar(&draft.Bathrooms, "baths", 0, "bathrooms")
	cmd.Flags().StringVar(&draft.Street, "street", "", "street address")
	cmd.Flags().StringVar(&draft.City, "city", "", "city")
	cmd.Flags().StringVar(&draft.Governate, "governate", "", "governate")
	cmd.Flags().StringVar(&draft.LocationURL, "location-url", "", "map link for the listing")
	cmd.Flags().StringVar(&draft.ListingType, "listing-type", string(property.ListingTypeRent), "Rent or Sale")
	cmd.Flags().Int64SliceVar(&draft.InternalAmenityIDs, "internal-amenities", nil, "internal amenity ids")
	cmd.Flags().Int64SliceVar(&draft.ExternalAmenityIDs, "external-amenities", nil, "external amenity ids")
	cmd.Flags().Int64SliceVar(&draft.AccessibilityAmenityIDs, "accessibility-amenities", nil, "accessibility amenity ids")
	cmd.Flags().StringSliceVar(&images, "image", nil, "image file (repeatable)")

	card.register(cmd)

	return cmd
}

// cardFlags collects the card details for the listing fee.
type cardFlags struct {
	number   string
	expMonth int64
	expYear  int64
	cvc      string
	name     string
}

func (c *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.number, "card-number", "", "card number")
	cmd.Flags().Int64Var(&c.expMonth, "card-exp-month", 0, "card expiry month")
	cmd.Flags().Int64Var(&c.expYear, "card-exp-year", 0, "card expiry year")
	cmd.Flags().StringVar(&c.cvc, "card-cvc", "", "card security code")
	cmd.Flags().StringVar(&c.name, "card-name", "", "cardholder name")
}

func (c cardFlags) card() payment.Card {
	return payment.Card{
		Number:   c.number,
		ExpMonth: c.expMonth,
		ExpYear:  c.expYear,
		CVC:      c.cvc,
		Name:     c.name,
	}
}

func runAdd(cmd *cobra.Command, draft *property.Draft, imagePaths []string, card cardFlags) error {
	var err error
	draft.Images, err = loadImages(imagePaths)
	if err != nil {
		return err
	}

	stripeKey := getStripeKey()
	if stripeKey == "" {
		return fmt.Errorf("no payment key configured (set RF_STRIPE_KEY or stripe_key in the config)")
	}
	confirmer, err := payment.NewStripeConfirmer(stripeKey)
	if err != nil {
		return fmt.Errorf("setting up payment: %w", err)
	}

	c := newAPIClient()
	pipeline := listing.New(c, confirmer, c)

	id, err := pipeline.Submit(cmd.Context(), draft, card.card())
	if err != nil {
		return renderSubmitError(err)
	}

	if isJSON() {
		return printJSON(map[string]int64{"propertyId": id})
	}
	fmt.Printf("Listing published! Its id is %d.\n", id)
	return nil
}

// renderSubmitError turns pipeline failures into readable CLI errors,
// listing field errors one per line.
func renderSubmitError(err error) error {
	var perr *listing.Error
	if errors.As(err, &perr) && len(perr.Fields) > 0 {
		fields := make([]string, 0, len(perr.Fields))
		for f := range perr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		msg := perr.Message
		for _, f := range fields {
			for _, m := range perr.Fields[f] {
				msg += fmt.Sprintf("\n  %s: %s", f, m)
			}
		}
		return errors.New(msg)
	}
	return err
}

// loadImages reads listing images from disk.
func loadImages(paths []string) ([]property.Image, error) {
	var images []property.Image
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading image %s: %w", path, err)
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		images = append(images, property.Image{
			Name:        filepath.Base(path),
			ContentType: contentType,
			Data:        data,
		})
	}
	return images, nil
}
