// Package cidref interprets the content-addressed document reference stored
// in a policy, so it can be shown as a gateway link.
package cidref

import (
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

const DefaultGateway = "https://cdn.kleros.link/ipfs/"

var codecNames = map[uint64]string{
	cid.Raw:         "raw",
	cid.DagProtobuf: "dag-pb",
	cid.DagCBOR:     "dag-cbor",
	cid.DagJSON:     "dag-json",
	cid.Libp2pKey:   "libp2p-key",
}

// Document is a parsed reference. Path is whatever followed the CID, e.g.
// "/policy.pdf".
type Document struct {
	Reference    string
	CID          cid.Cid
	Path         string
	Version      uint64
	Codec        string
	HashFunction string
	URL          string
}

// Describe parses ref, accepting a bare CID as well as "ipfs://<cid>" and
// "/ipfs/<cid>" forms, and builds its link on gateway.
func Describe(ref, gateway string) (Document, error) {
	doc := Document{Reference: ref}

	trimmed := strings.TrimSpace(ref)
	trimmed = strings.TrimPrefix(trimmed, "ipfs://")
	trimmed = strings.TrimPrefix(trimmed, "/ipfs/")
	cidPart, path := trimmed, ""
	if i := strings.Index(trimmed, "/"); i >= 0 {
		cidPart, path = trimmed[:i], trimmed[i:]
	}
	if cidPart == "" {
		return doc, fmt.Errorf("empty document reference")
	}

	c, err := cid.Decode(cidPart)
	if err != nil {
		return doc, fmt.Errorf("document reference %q is not a CID: %w", ref, err)
	}
	decoded, err := multihash.Decode(c.Hash())
	if err != nil {
		return doc, fmt.Errorf("document reference %q has a bad multihash: %w", ref, err)
	}

	doc.CID = c
	doc.Path = path
	doc.Version = c.Version()
	doc.Codec = CodecName(c.Type())
	doc.HashFunction = decoded.Name
	doc.URL = GatewayURL(gateway, c, path)
	return doc, nil
}

func CodecName(code uint64) string {
	if name, found := codecNames[code]; found {
		return name
	}
	return fmt.Sprintf("0x%x", code)
}

// GatewayURL joins gateway, c and path. An empty gateway uses DefaultGateway.
func GatewayURL(gateway string, c cid.Cid, path string) string {
	if gateway == "" {
		gateway = DefaultGateway
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return gateway + c.String() + path
}

// Link returns the gateway URL of ref, or ref unchanged when it does not
// parse as a CID.
func Link(ref, gateway string) string {
	doc, err := Describe(ref, gateway)
	if err != nil {
		return ref
	}
	return doc.URL
}
