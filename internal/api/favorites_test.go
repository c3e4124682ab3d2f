package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFavoriteRoutes(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		fmt.Fprint(w, "done")
	}))
	defer srv.Close()

	c := New(srv.URL, "t")

	if err := c.AddFavorite(context.Background(), 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/Favorites/5" {
		t.Errorf("add hit %s %s", gotMethod, gotPath)
	}

	if err := c.RemoveFavorite(context.Background(), 5); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/Favorites/remove/5" {
		t.Errorf("remove hit %s %s", gotMethod, gotPath)
	}
}

func TestIsFavorite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/Favorites/added/9" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, "true")
	}))
	defer srv.Close()

	member, err := New(srv.URL, "t").IsFavorite(context.Background(), 9)
	if err != nil {
		t.Fatalf("is favorite: %v", err)
	}
	if !member {
		t.Error("expected membership to be true")
	}
}

func TestFavoritesConvertsEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"$id":"1","$values":[
			{"propertyId":3,"title":"Loft","price":8000,"city":"Giza","listingType":"Rent","mainImageUrl":"https://img/3.jpg"}
		]}`)
	}))
	defer srv.Close()

	props, err := New(srv.URL, "t").Favorites(context.Background())
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("favorites = %d, want 1", len(props))
	}

	p := props[0]
	if p.ID != 3 || p.Title != "Loft" || p.City != "Giza" {
		t.Errorf("converted = %+v", p)
	}
	if !p.IsFavorite {
		t.Error("favorites entries must be marked as favorites")
	}
	if len(p.Images) != 1 || p.Images[0] != "https://img/3.jpg" {
		t.Errorf("images = %v", p.Images)
	}
}
