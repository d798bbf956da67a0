package ui

import (
	"github.com/tranvictor/claimview/claim"
	"github.com/tranvictor/claimview/networks"
)

const LoadingMessage = "Loading claim..."

// RenderView draws a session snapshot: the warning panel, the provider
// warning, the loading line or the claim card.
func RenderView(u UI, v claim.View, gateway string) {
	switch v.State {
	case claim.StateError:
		u.Warn("%s", v.Error.Title)
		if v.Error.Detail != "" {
			u.Indent().Info("%s", u.Style(StyledText{Text: v.Error.Detail, Severity: SeverityError}))
		}
	case claim.StateProviderError:
		u.Warn("%s", v.ProviderError)
	case claim.StateLoaded:
		rows := [][]string{}
		for _, f := range v.Record.Fields(gateway) {
			value := f.Value
			if f.Link != "" {
				value = f.Link
			}
			rows = append(rows, []string{f.Label, value})
		}
		u.Table(nil, rows)
	default:
		u.Info(LoadingMessage)
	}
}

// RenderParameters prints what was read from the query string.
func RenderParameters(u UI, p *claim.DisplayParameters) {
	if p == nil {
		return
	}
	rows := [][2]string{
		{"Arbitrable", p.ArbitrableContractAddress},
		{"Arbitrator", p.ArbitratorContractAddress},
		{"Dispute", p.DisputeID},
	}
	if p.ArbitrableChainID != "" {
		chain := p.ArbitrableChainID
		if id := p.ChainIDNumber(); id != nil {
			chain = networks.DescribeChainID(id)
		}
		rows = append(rows, [2]string{"Chain", chain})
	}
	if p.ArbitrableJSONRPCURL != "" {
		rows = append(rows, [2]string{"RPC", p.ArbitrableJSONRPCURL})
	}
	u.KeyValue(rows)
}
