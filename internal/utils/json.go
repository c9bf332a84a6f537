package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const maxRequestBody = 8 << 20

// DecodeJSONRequest decodes the body of r into dst, rejecting unknown fields
// and bodies over 8MB.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
