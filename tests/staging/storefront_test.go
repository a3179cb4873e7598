//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

type listingsResponse struct {
	Listings []struct {
		SlotID   int    `json:"slot_id"`
		Name     string `json:"name"`
		Price    string `json:"price"`
		Currency string `json:"currency"`
		Language string `json:"language"`
	} `json:"listings"`
	Count int `json:"count"`
}

func TestStorefrontListings(t *testing.T) {
	resp, body := makeAnonymousRequest(t, "GET", "/api/v1/storefront/listings", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var listings listingsResponse
	if err := json.Unmarshal(body, &listings); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if listings.Count != len(listings.Listings) {
		t.Errorf("Count %d does not match %d listings", listings.Count, len(listings.Listings))
	}

	for _, l := range listings.Listings {
		if l.Name == "" {
			t.Errorf("Listing in slot %d has empty name", l.SlotID)
		}
		if l.Currency == "" {
			t.Errorf("Listing in slot %d has empty currency", l.SlotID)
		}
	}
}

// TestStorefrontLocalization requests the same listings in both languages
// and expects the language echo to follow.
func TestStorefrontLocalization(t *testing.T) {
	for _, lang := range []string{"en", "fr"} {
		resp, body := makeAnonymousRequest(t, "GET", "/api/v1/storefront/listings?lang="+lang, nil)

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("lang=%s: expected status 200, got %d", lang, resp.StatusCode)
		}

		var listings listingsResponse
		if err := json.Unmarshal(body, &listings); err != nil {
			t.Fatalf("lang=%s: failed to unmarshal response: %v", lang, err)
		}

		for _, l := range listings.Listings {
			if l.Language != lang {
				t.Errorf("lang=%s: listing in slot %d localized as %q", lang, l.SlotID, l.Language)
			}
		}
	}
}
