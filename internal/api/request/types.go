package request

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// UpdateSettingsRequest is the request body for changing conversation settings.
// Omitted fields are left unchanged; Rows and Cols must be given together.
type UpdateSettingsRequest struct {
	Rows         *int  `json:"rows,omitempty"`
	Cols         *int  `json:"cols,omitempty"`
	PatternTypes *int  `json:"pattern_types,omitempty"`
	TimedMode    *bool `json:"timed_mode,omitempty"`
}

// LinkRequest is the request body for submitting cell-order tokens.
// Consecutive tokens form pairs.
type LinkRequest struct {
	Orders []OrderToken `json:"orders"`
}

// Tokens returns the raw order tokens
func (r LinkRequest) Tokens() []string {
	tokens := make([]string, len(r.Orders))
	for i, o := range r.Orders {
		tokens[i] = string(o)
	}
	return tokens
}

// OrderToken accepts either a JSON number or a JSON string.
// Strings are kept verbatim so malformed selections reach the validator.
type OrderToken string

// UnmarshalJSON implements json.Unmarshaler
func (t *OrderToken) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = OrderToken(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*t = OrderToken(n.String())
	return nil
}
