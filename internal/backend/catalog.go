package backend

import (
	"context"
	"fmt"
	"net/url"
)

// Product is the catalog entry shape the clinic backend publishes for the
// web. Thumbnail is base64-encoded image data rendered inline by the site.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	CategoryName string  `json:"categoryName"`
	ProviderName string  `json:"providerName"`
	Thumbnail    string  `json:"thumbnail,omitempty"`
}

// ProductsPage is one page of catalog results.
type ProductsPage struct {
	Data       []Product `json:"data"`
	TotalCount int       `json:"totalCount"`
}

// Categories lists the category names published for the web shop.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return fetchJSON[[]string](ctx, c, "/api/v1/category/public/getCategoriesNamesForWeb", requestOptions{})
}

// Products returns one page of the full catalog.
func (c *Client) Products(ctx context.Context, page, size int) (*ProductsPage, error) {
	path := fmt.Sprintf("/api/v1/products/public/getProductsPaginated?page=%d&size=%d", page, size)
	result, err := fetchJSON[ProductsPage](ctx, c, path, requestOptions{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ProductsByCategory returns one page of the catalog filtered by category.
func (c *Client) ProductsByCategory(ctx context.Context, category string, page, size int) (*ProductsPage, error) {
	path := fmt.Sprintf("/api/v1/products/public/getByCategoryForWeb?categoryName=%s&page=%d&size=%d",
		url.QueryEscape(category), page, size)
	result, err := fetchJSON[ProductsPage](ctx, c, path, requestOptions{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchProducts runs a free-text search. The upstream endpoint is
// unpaginated.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]Product, error) {
	path := "/api/v1/products/public/searchProduct?searchTerm=" + url.QueryEscape(term)
	return fetchJSON[[]Product](ctx, c, path, requestOptions{})
}
