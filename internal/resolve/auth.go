package resolve

import (
	"encoding/json"
	"errors"
	"regexp"
)

// The converter service embeds its request authorization as a JSON.parse
// payload in the landing page. The token is reconstructed by pairwise
// subtraction of the first and (reversed) third arrays, optionally reversed
// as a whole, capped at 32 characters. Element 6 carries the query parameter
// name as a char code.

const maxAuthTokenLength = 32

var authPayloadPattern = regexp.MustCompile(`JSON\.parse\('([^']+)'\)`)

var errAuthExtraction = errors.New("failed to extract auth data from page")

// extractAuthPayload pulls the JSON.parse('...') payload out of the landing page
func extractAuthPayload(html string) ([]any, error) {
	matches := authPayloadPattern.FindStringSubmatch(html)
	if matches == nil {
		return nil, errAuthExtraction
	}
	var payload []any
	if err := json.Unmarshal([]byte(matches[1]), &payload); err != nil {
		return nil, errAuthExtraction
	}
	return payload, nil
}

// computeAuthorization derives the query parameter name and auth token from
// the extracted payload.
func computeAuthorization(payload []any) (string, string, error) {
	if len(payload) < 7 {
		return "", "", errAuthExtraction
	}
	first, ok := payload[0].([]any)
	if !ok {
		return "", "", errAuthExtraction
	}
	third, ok := payload[2].([]any)
	if !ok {
		return "", "", errAuthExtraction
	}
	if len(third) < len(first) {
		return "", "", errAuthExtraction
	}

	token := make([]byte, 0, len(first))
	for i := range first {
		a, okA := first[i].(float64)
		b, okB := third[len(third)-(i+1)].(float64)
		if !okA || !okB {
			return "", "", errAuthExtraction
		}
		token = append(token, byte(int64(a)-int64(b)))
	}

	if reversed, ok := payload[1].(float64); ok && reversed != 0 {
		for i, j := 0, len(token)-1; i < j; i, j = i+1, j-1 {
			token[i], token[j] = token[j], token[i]
		}
	}
	if len(token) > maxAuthTokenLength {
		token = token[:maxAuthTokenLength]
	}

	param := "u"
	if code, ok := payload[6].(float64); ok {
		param = string(rune(byte(code)))
	}
	return param, string(token), nil
}
