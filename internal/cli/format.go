package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mkhalil/rent-finder/internal/property"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printListingSummary prints a single listing in text format.
func printListingSummary(p *property.Property) {
	fmt.Printf("Listing #%d\n", p.ID)
	fmt.Printf("  Title:     %s\n", p.Title)
	fmt.Printf("  Price:     %s EGP\n", formatPrice(p.Price))
	if p.PropertyType != "" {
		fmt.Printf("  Type:      %s\n", p.PropertyType)
	}
	if p.City != "" || p.Governate != "" {
		fmt.Printf("  Location:  %s, %s\n", p.City, p.Governate)
	}
	if p.Street != "" {
		fmt.Printf("  Street:    %s\n", p.Street)
	}
	if p.Size > 0 {
		fmt.Printf("  Size:      %d sqm\n", p.Size)
	}
	fmt.Printf("  Beds:      %d\n", p.Bedrooms)
	fmt.Printf("  Baths:     %d\n", p.Bathrooms)
	if p.IsFavorite {
		fmt.Printf("  Favorite:  yes\n")
	}
	if p.Owner != nil {
		fmt.Printf("  Owner:     %s %s (%s)\n", p.Owner.FirstName, p.Owner.LastName, p.Owner.Email)
	}
	if p.Description != "" {
		fmt.Printf("  About:     %s\n", truncate(p.Description, 120))
	}
	for _, img := range p.Images {
		fmt.Printf("  Image:     %s\n", img)
	}
}

// printListingTable prints listings as a formatted table.
func printListingTable(props []*property.Property) error {
	if len(props) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tPRICE\tCITY\tBED\tBATH\tFAV"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t-----\t----\t---\t----\t---"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		fav := ""
		if p.IsFavorite {
			fav = "*"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			p.ID, truncate(p.Title, 40), formatPrice(p.Price), p.City,
			p.Bedrooms, p.Bathrooms, fav); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d listings\n", len(props))
	return nil
}

// printReviews prints reviews in text format.
func printReviews(reviews []*property.Review) {
	if len(reviews) == 0 {
		fmt.Println("No reviews.")
		return
	}

	for _, r := range reviews {
		name := r.UserName
		if name == "" {
			name = "anonymous"
		}
		fmt.Printf("[#%d] %s rated %d/5", r.ID, name, r.Rating)
		if r.ReviewDate != "" {
			fmt.Printf(" on %s", r.ReviewDate)
		}
		fmt.Println()
		if r.Comment != "" {
			fmt.Printf("  %s\n", r.Comment)
		}
	}
}

// formatPrice formats a price with thousands separators.
func formatPrice(price int64) string {
	s := strconv.FormatInt(price, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// truncate shortens a string to max characters, appending an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
