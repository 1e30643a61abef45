package resolve

import (
	"encoding/json"
	"testing"
)

const authPagePayload = `[[94,118,116,80,77,82,93,66,85,115,110,104,93,123,96,70,57,131,82,95,78,131],1,[14,2,6,10,11,5,0,12,12,5,3,2,4,0,15,11,8,8,11,8,13,16],1,9,3,117]`

func TestExtractAuthPayload(t *testing.T) {
	html := `var json = JSON.parse('` + authPagePayload + `');`

	payload, err := extractAuthPayload(html)
	if err != nil {
		t.Fatalf("Failed to extract payload: %v", err)
	}
	if len(payload) != 7 {
		t.Fatalf("Expected 7 payload elements, got %d", len(payload))
	}
	if code, ok := payload[6].(float64); !ok || code != 117 {
		t.Errorf("Expected payload[6] = 117, got %v", payload[6])
	}
}

func TestExtractAuthPayload_Missing(t *testing.T) {
	if _, err := extractAuthPayload("<html>no payload here</html>"); err == nil {
		t.Error("Expected error for page without payload, got nil")
	}
}

func TestExtractAuthPayload_BadJSON(t *testing.T) {
	if _, err := extractAuthPayload(`JSON.parse('not-json')`); err == nil {
		t.Error("Expected error for malformed payload, got nil")
	}
}

func TestComputeAuthorization(t *testing.T) {
	var payload []any
	if err := json.Unmarshal([]byte(authPagePayload), &payload); err != nil {
		t.Fatalf("Failed to unmarshal test payload: %v", err)
	}

	param, token, err := computeAuthorization(payload)
	if err != nil {
		t.Fatalf("Failed to compute authorization: %v", err)
	}
	if param != "u" {
		t.Errorf("Expected param 'u', got %q", param)
	}
	// Pairwise subtraction then reversal because payload[1] is 1
	if token != "uLYHx4FToXeloU3RJEEliN" {
		t.Errorf("Expected token 'uLYHx4FToXeloU3RJEEliN', got %q", token)
	}
	if len(token) != 22 {
		t.Errorf("Expected token length 22, got %d", len(token))
	}
}

func TestComputeAuthorization_ShortPayload(t *testing.T) {
	if _, _, err := computeAuthorization([]any{[]any{}, float64(0)}); err == nil {
		t.Error("Expected error for short payload, got nil")
	}
}
