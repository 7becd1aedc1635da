package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Drives a running server through a browse, add-to-cart and quote so the
// outbox receives add_to_cart and begin_checkout events.
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "storefront service base URL")
	flag.Parse()

	c := &client{base: *baseURL, session: "smoke-" + uuid.NewString(), http: &http.Client{Timeout: 10 * time.Second}}

	var listing struct {
		Products []struct {
			ID      string `json:"_id"`
			Name    string `json:"name"`
			InStock bool   `json:"inStock"`
			Pre     bool   `json:"isPreOrder"`
		} `json:"products"`
	}
	if err := c.call(http.MethodGet, "/api/v1/products?limit=50", nil, &listing); err != nil {
		log.Fatalf("Failed to list products: %v", err)
	}

	productID := ""
	for _, p := range listing.Products {
		if p.InStock && !p.Pre {
			productID = p.ID
			fmt.Printf("Picked product: %s (%s)\n", p.Name, p.ID)
			break
		}
	}
	if productID == "" {
		log.Fatalf("No in-stock product among %d listed", len(listing.Products))
	}

	if err := c.call(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": productID, "quantity": 1}, nil); err != nil {
		log.Fatalf("Failed to add to cart: %v", err)
	}
	fmt.Println("Added to cart")

	var quote struct {
		Total json.Number `json:"total"`
	}
	if err := c.call(http.MethodGet, "/api/v1/checkout/quote?delivery_area=inside_dhaka", nil, &quote); err != nil {
		log.Fatalf("Failed to quote checkout: %v", err)
	}
	fmt.Printf("Checkout total: %s\n", quote.Total)

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Now check the events:")
	fmt.Printf("  HTTP: curl -H 'X-Session-ID: %s' '%s/api/v1/events?aggregate_id=%s'\n", c.session, c.base, c.session)
	fmt.Printf("  CLI:  go run ./cmd/check_events -aggregate %s\n", c.session)
}

type client struct {
	base    string
	session string
	http    *http.Client
}

func (c *client) call(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Session-ID", c.session)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
