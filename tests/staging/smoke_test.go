//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

// TestVersion verifies the deployment exposes build information
func TestVersion(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/version", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var version struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &version); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if version.Version == "" {
		t.Error("Expected a version string")
	}
}

// TestListBettables verifies the bettable list endpoint responds
func TestListBettables(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/bettables", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var bettables []struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(body, &bettables); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	for _, b := range bettables {
		if b.Kind != "match" && b.Kind != "extra" {
			t.Errorf("Unexpected bettable kind %q", b.Kind)
		}
	}
}

// TestAuthRequired verifies API routes reject missing keys
func TestAuthRequired(t *testing.T) {
	req, err := http.NewRequest("GET", stagingURL+"/api/v1/bettables", nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}
