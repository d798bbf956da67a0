package claim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"net/url"
	"strings"
)

// Hosts do not reliably decode these before handing over the query string.
var queryDecoder = strings.NewReplacer(
	"%22", `"`,
	"%7B", "{", "%7b", "{",
	"%3A", ":", "%3a", ":",
	"%2C", ",", "%2c", ",",
	"%7D", "}", "%7d", "}",
	"%2F", "/", "%2f", "/",
	"%20", " ",
)

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

type rawParameters struct {
	ArbitrableContractAddress flexString `json:"arbitrableContractAddress"`
	ArbitratorContractAddress flexString `json:"arbitratorContractAddress"`
	DisputeID                 flexString `json:"disputeID"`
	ArbitrableChainID         flexString `json:"arbitrableChainID"`
	ArbitrableJSONRPCURL      flexString `json:"arbitrableJsonRpcUrl"`
}

// ParseQuery extracts DisplayParameters from a query string holding a URL
// encoded JSON object, with or without the leading '?'. Missing required
// fields yield ErrParametersUnavailable, an undecodable payload another
// KindInvalidParameters error. Either way resolution does not start.
func ParseQuery(rawQuery string) (*DisplayParameters, error) {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if rawQuery == "" {
		return nil, ErrParametersUnavailable
	}

	raw, err := decodeQuery(rawQuery)
	if err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Err: err}
	}

	params := &DisplayParameters{
		ArbitrableContractAddress: strings.TrimSpace(string(raw.ArbitrableContractAddress)),
		ArbitratorContractAddress: strings.TrimSpace(string(raw.ArbitratorContractAddress)),
		DisputeID:                 strings.TrimSpace(string(raw.DisputeID)),
		ArbitrableChainID:         strings.TrimSpace(string(raw.ArbitrableChainID)),
		ArbitrableJSONRPCURL:      strings.TrimSpace(string(raw.ArbitrableJSONRPCURL)),
	}
	if params.ArbitrableContractAddress == "" || params.DisputeID == "" || params.ArbitratorContractAddress == "" {
		return nil, ErrParametersUnavailable
	}
	return params, nil
}

func decodeQuery(rawQuery string) (*rawParameters, error) {
	candidate := queryDecoder.Replace(rawQuery)
	raw := &rawParameters{}
	firstErr := json.Unmarshal([]byte(candidate), raw)
	if firstErr == nil {
		return raw, nil
	}
	// something else is still encoded, fall back to a full decode
	unescaped, err := url.PathUnescape(candidate)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode query: %w", firstErr)
	}
	raw = &rawParameters{}
	if err := json.Unmarshal([]byte(unescaped), raw); err != nil {
		return nil, fmt.Errorf("couldn't decode query: %w", err)
	}
	return raw, nil
}

// parseBigInt reads a decimal or 0x-prefixed hex integer.
func parseBigInt(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	if s == "" {
		return nil, false
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok || n.Sign() < 0 {
		return nil, false
	}
	return n, true
}

// DisputeIDNumber is the numeric dispute id used in the Dispute filter.
func (p *DisplayParameters) DisputeIDNumber() (*big.Int, error) {
	n, ok := parseBigInt(p.DisputeID)
	if !ok {
		return nil, fmt.Errorf("invalid dispute id %q", p.DisputeID)
	}
	return n, nil
}

// ChainIDNumber is nil when arbitrableChainID is missing or not a number.
func (p *DisplayParameters) ChainIDNumber() *big.Int {
	n, ok := parseBigInt(p.ArbitrableChainID)
	if !ok {
		return nil
	}
	return n
}
