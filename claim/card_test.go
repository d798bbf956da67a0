package claim_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/tranvictor/claimview/claim"
)

func TestFormatAmount(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	tests := []struct {
		in   *big.Int
		want string
	}{
		{big.NewInt(0), "0"},
		{big.NewInt(1000), "1,000"},
		{big.NewInt(1234567), "1,234,567"},
		{huge, "123456789012345678901234567890"},
		{nil, ""},
	}
	for _, tc := range tests {
		if got := claim.FormatAmount(tc.in); got != tc.want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	got := claim.FormatTimestamp(big.NewInt(2000000000))
	if got != "2000000000 (2033-05-18 03:33:20 UTC)" {
		t.Fatalf("FormatTimestamp = %q", got)
	}
}

func TestRecordFields(t *testing.T) {
	r := claim.ClaimRecord{
		Claimant:          alice.Hex(),
		Beneficiary:       bob.Hex(),
		Coverage:          big.NewInt(1000),
		EndTime:           big.NewInt(2000000000),
		DocumentReference: testDocument,
	}
	fields := r.Fields("https://gw.example/ipfs/")
	labels := []string{}
	for _, f := range fields {
		labels = append(labels, f.Label)
	}
	if strings.Join(labels, ",") != "Beneficiary,Claimant,Coverage,End Time,IPFS link to Policy" {
		t.Fatalf("labels = %v", labels)
	}
	if fields[0].Value != bob.Hex() || fields[1].Value != alice.Hex() {
		t.Fatalf("beneficiary/claimant swapped: %+v", fields[:2])
	}
	if fields[4].Link != "https://gw.example/ipfs/"+testDocument {
		t.Fatalf("document link = %q", fields[4].Link)
	}

	r.DocumentReference = "bafy..."
	if link := r.Fields("")[4].Link; link != "" {
		t.Fatalf("unparseable reference should have no link, got %q", link)
	}
}
