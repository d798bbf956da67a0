package claim_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/tranvictor/claimview/claim"
)

const literalQuery = `{"arbitrableContractAddress":"0xC1a1Ee5C1a1Ee5C1a1Ee5C1a1Ee5C1a1Ee5C1a1E","arbitratorContractAddress":"0x988b3A538b618C7A603e1c11Ab82Cd16dbE28069","disputeID":"42","arbitrableChainID":"100","arbitrableJsonRpcUrl":"https://rpc.gnosischain.com/"}`

var wantParams = claim.DisplayParameters{
	ArbitrableContractAddress: "0xC1a1Ee5C1a1Ee5C1a1Ee5C1a1Ee5C1a1Ee5C1a1E",
	ArbitratorContractAddress: "0x988b3A538b618C7A603e1c11Ab82Cd16dbE28069",
	DisputeID:                 "42",
	ArbitrableChainID:         "100",
	ArbitrableJSONRPCURL:      "https://rpc.gnosischain.com/",
}

func TestParseQueryEncodings(t *testing.T) {
	partial := strings.NewReplacer(`"`, "%22", "{", "%7B", ":", "%3A", ",", "%2C", "}", "%7D", "/", "%2F")
	lower := strings.NewReplacer(`"`, "%22", "{", "%7b", ":", "%3a", ",", "%2c", "}", "%7d", "/", "%2f")
	braceOnly := strings.NewReplacer("{", "%7B", "}", "%7D")

	tests := []struct {
		name  string
		query string
	}{
		{"literal", literalQuery},
		{"literal with question mark", "?" + literalQuery},
		{"host left the special characters encoded", "?" + partial.Replace(literalQuery)},
		{"lower case escapes", lower.Replace(literalQuery)},
		{"only braces encoded", braceOnly.Replace(literalQuery)},
		{"fully escaped", "?" + url.QueryEscape(literalQuery)},
		{"path escaped", url.PathEscape(literalQuery)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := claim.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("ParseQuery(%q): %s", tc.query, err)
			}
			if *got != wantParams {
				t.Fatalf("got %+v, want %+v", *got, wantParams)
			}
		})
	}
}

func TestParseQueryNumericFields(t *testing.T) {
	got, err := claim.ParseQuery(`{"arbitrableContractAddress":"0x1","arbitratorContractAddress":"0x2","disputeID":17,"arbitrableChainID":100}`)
	if err != nil {
		t.Fatalf("ParseQuery: %s", err)
	}
	if got.DisputeID != "17" || got.ArbitrableChainID != "100" {
		t.Fatalf("numbers not kept as strings: %+v", got)
	}
	if got.ArbitrableJSONRPCURL != "" {
		t.Fatalf("optional url should be empty, got %q", got.ArbitrableJSONRPCURL)
	}
}

func TestParseQueryUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"only question mark", "?"},
		{"missing arbitrable", `{"arbitratorContractAddress":"0x2","disputeID":"1"}`},
		{"missing arbitrator", `{"arbitrableContractAddress":"0x1","disputeID":"1"}`},
		{"missing dispute", `{"arbitrableContractAddress":"0x1","arbitratorContractAddress":"0x2"}`},
		{"empty dispute", `{"arbitrableContractAddress":"0x1","arbitratorContractAddress":"0x2","disputeID":""}`},
		{"null dispute", `{"arbitrableContractAddress":"0x1","arbitratorContractAddress":"0x2","disputeID":null}`},
		{"not json", "foo=bar"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := claim.ParseQuery(tc.query)
			if got != nil {
				t.Fatalf("expected no parameters, got %+v", got)
			}
			if claim.KindOf(err) != claim.KindInvalidParameters {
				t.Fatalf("expected InvalidParameters, got %v", err)
			}
		})
	}

	_, err := claim.ParseQuery("")
	if !errors.Is(err, claim.ErrParametersUnavailable) {
		t.Fatalf("empty query should be ErrParametersUnavailable, got %v", err)
	}
}

func TestDisputeIDNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"42", "42", true},
		{"0x2a", "42", true},
		{"010", "10", true},
		{"-1", "", false},
		{"abc", "", false},
	}
	for _, tc := range tests {
		p := claim.DisplayParameters{DisputeID: tc.in}
		n, err := p.DisputeIDNumber()
		if tc.ok != (err == nil) {
			t.Fatalf("DisputeIDNumber(%q) err = %v", tc.in, err)
		}
		if tc.ok && n.String() != tc.want {
			t.Fatalf("DisputeIDNumber(%q) = %s, want %s", tc.in, n, tc.want)
		}
	}
}
