package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/mkhalil/rent-finder/internal/property"
)

// listResponse mirrors the backend's paginated GetAll payload, including
// the reference-preserving $values wrapper around the data array.
type listResponse struct {
	PageIndex  int `json:"pageIndex"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	Data       struct {
		Values []*property.Property `json:"$values"`
	} `json:"data"`
}

const defaultPageSize = 12

// ListProperties returns one page of listings, filtered server-side.
func (c *Client) ListProperties(ctx context.Context, f property.Filters) (*property.Page, error) {
	params := url.Values{}

	pageSize := f.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	page := f.Page
	if page == 0 {
		page = 1
	}
	params.Set("PageSize", strconv.Itoa(pageSize))
	params.Set("PageIndex", strconv.Itoa(page))

	if f.PropertyType != "" {
		params.Set("PropertyType", f.PropertyType)
	}
	if f.City != "" {
		params.Set("City", f.City)
	}
	if f.Governate != "" {
		params.Set("Governate", f.Governate)
	}
	if f.Bedrooms > 0 {
		params.Set("Bedrooms", strconv.Itoa(f.Bedrooms))
	}
	if f.Bathrooms > 0 {
		params.Set("Bathrooms", strconv.Itoa(f.Bathrooms))
	}
	if f.Size > 0 {
		params.Set("Size", strconv.FormatInt(f.Size, 10))
	}
	if f.MinPrice > 0 {
		params.Set("MinPrice", strconv.FormatInt(f.MinPrice, 10))
	}
	if f.MaxPrice > 0 {
		params.Set("MaxPrice", strconv.FormatInt(f.MaxPrice, 10))
	}
	if f.SortBy != "" {
		params.Set("SortBy", f.SortBy)
	}
	if f.Search != "" {
		params.Set("SearchTerm", f.Search)
	}
	for _, id := range f.InternalAmenityIDs {
		params.Add("InternalAmenityIds", strconv.FormatInt(id, 10))
	}
	for _, id := range f.ExternalAmenityIDs {
		params.Add("ExternalAmenityIds", strconv.FormatInt(id, 10))
	}
	for _, id := range f.AccessibilityAmenityIDs {
		params.Add("AccessibilityAmenityIds", strconv.FormatInt(id, 10))
	}

	var resp listResponse
	if err := c.get(ctx, "/api/Properties/GetAll?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	return &property.Page{
		PageIndex:  resp.PageIndex,
		PageSize:   resp.PageSize,
		TotalCount: resp.TotalCount,
		Properties: resp.Data.Values,
	}, nil
}

// GetProperty returns a single property by id. The backend has no by-id
// endpoint, so this scans GetAll pages for a match.
func (c *Client) GetProperty(ctx context.Context, id int64) (*property.Property, error) {
	for page := 1; ; page++ {
		result, err := c.ListProperties(ctx, property.Filters{Page: page, PageSize: 100})
		if err != nil {
			return nil, err
		}
		for _, p := range result.Properties {
			if p.ID == id {
				return p, nil
			}
		}
		if page*result.PageSize >= result.TotalCount || len(result.Properties) == 0 {
			return nil, &Error{Status: http.StatusNotFound, Message: fmt.Sprintf("property %d not found", id)}
		}
	}
}

// UserProperties returns the listings owned by the authenticated user.
// The response shape varies; all known wrappings are handled.
func (c *Client) UserProperties(ctx context.Context) ([]*property.Property, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/Properties/get-user-properties", &raw); err != nil {
		if StatusOf(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return unwrapPropertyList(raw)
}

// unwrapPropertyList decodes a property array that may arrive bare, under
// $values, or under data / data.$values.
func unwrapPropertyList(raw json.RawMessage) ([]*property.Property, error) {
	var direct []*property.Property
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Values []*property.Property `json:"$values"`
		Data   json.RawMessage      `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding property list: %w", err)
	}
	if wrapped.Values != nil {
		return wrapped.Values, nil
	}
	if wrapped.Data != nil {
		return unwrapPropertyList(wrapped.Data)
	}
	return nil, nil
}

// CreateRequest is the multipart submission for a new listing: the draft
// form fields, its images, and the payment confirmation metadata.
type CreateRequest struct {
	Draft           *property.Draft
	PaymentIntentID string
	PaymentAmount   int64 // minor currency units

	// IdempotencyKey makes the create call safe against duplicate
	// deliveries; the listing fee has already been charged by the time
	// this request is sent.
	IdempotencyKey string
}

// createResponse covers the id shapes the backend has returned.
type createResponse struct {
	PropertyID int64 `json:"propertyId"`
	ID         int64 `json:"id"`
}

// CreateProperty submits a new listing and returns its id.
func (c *Client) CreateProperty(ctx context.Context, req CreateRequest) (int64, error) {
	body, contentType, err := encodeCreateForm(req)
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/Properties/Create", body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	var resp createResponse
	if err := c.do(httpReq, &resp); err != nil {
		return 0, err
	}
	if resp.PropertyID != 0 {
		return resp.PropertyID, nil
	}
	return resp.ID, nil
}

// DeleteProperty removes one of the user's own listings.
func (c *Client) DeleteProperty(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/api/Properties/Delete/%d", id))
}

// encodeCreateForm builds the multipart body for CreateProperty.
func encodeCreateForm(req CreateRequest) (io.Reader, string, error) {
	d := req.Draft
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"Title", d.Title},
		{"Description", d.Description},
		{"Price", strconv.FormatInt(d.Price, 10)},
		{"PropertyType", d.PropertyType},
		{"Size", strconv.FormatInt(d.Size, 10)},
		{"Bedrooms", strconv.Itoa(d.Bedrooms)},
		{"Bathrooms", strconv.Itoa(d.Bathrooms)},
		{"Street", d.Street},
		{"City", d.City},
		{"Governate", d.Governate},
		{"LocationUrl", d.LocationURL},
		{"ListingType", d.ListingType},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", f.name, err)
		}
	}

	amenityFields := []struct {
		name string
		ids  []int64
	}{
		{"InternalAmenityIds", d.InternalAmenityIDs},
		{"ExternalAmenityIds", d.ExternalAmenityIDs},
		{"AccessibilityAmenityIds", d.AccessibilityAmenityIDs},
	}
	for _, af := range amenityFields {
		for i, id := range af.ids {
			name := fmt.Sprintf("%s[%d]", af.name, i)
			if err := w.WriteField(name, strconv.FormatInt(id, 10)); err != nil {
				return nil, "", fmt.Errorf("writing field %s: %w", name, err)
			}
		}
	}

	for _, img := range d.Images {
		part, err := createImagePart(w, img.Name, img.ContentType)
		if err != nil {
			return nil, "", fmt.Errorf("creating image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("writing image %s: %w", img.Name, err)
		}
	}

	if err := w.WriteField("paymentIntentId", req.PaymentIntentID); err != nil {
		return nil, "", fmt.Errorf("writing payment intent id: %w", err)
	}
	if err := w.WriteField("paymentAmount", strconv.FormatInt(req.PaymentAmount, 10)); err != nil {
		return nil, "", fmt.Errorf("writing payment amount: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// createImagePart adds an image file part with its real content type
// (CreateFormFile would hardcode application/octet-stream).
func createImagePart(w *multipart.Writer, name, contentType string) (io.Writer, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="Images"; filename="%s"`, name))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}
