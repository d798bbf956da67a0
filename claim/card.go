package claim

import (
	"math/big"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tranvictor/claimview/cidref"
)

// Field is one labelled line of the claim card. Link is set when the value
// points somewhere.
type Field struct {
	Label string
	Value string
	Link  string
}

var numberPrinter = message.NewPrinter(language.English)

// FormatAmount groups digits ("1,000"). Values beyond int64 print plain.
func FormatAmount(n *big.Int) string {
	if n == nil {
		return ""
	}
	if n.IsInt64() {
		return numberPrinter.Sprintf("%d", n.Int64())
	}
	return n.String()
}

// FormatTimestamp renders a unix timestamp with its UTC date.
func FormatTimestamp(ts *big.Int) string {
	if ts == nil {
		return ""
	}
	if !ts.IsInt64() {
		return ts.String()
	}
	return ts.String() + " (" + time.Unix(ts.Int64(), 0).UTC().Format("2006-01-02 15:04:05 MST") + ")"
}

// Fields lists the card lines in display order.
func (r ClaimRecord) Fields(gateway string) []Field {
	doc := Field{Label: "IPFS link to Policy", Value: r.DocumentReference}
	if link := cidref.Link(r.DocumentReference, gateway); link != r.DocumentReference {
		doc.Link = link
	}
	return []Field{
		{Label: "Beneficiary", Value: r.Beneficiary},
		{Label: "Claimant", Value: r.Claimant},
		{Label: "Coverage", Value: FormatAmount(r.Coverage)},
		{Label: "End Time", Value: FormatTimestamp(r.EndTime)},
		doc,
	}
}
