package web

import (
	"encoding/json"
	"net/http"

	"github.com/tranvictor/claimview/claim"
)

type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, apiError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

type claimJSON struct {
	Claimant          string `json:"claimant"`
	Beneficiary       string `json:"beneficiary"`
	Coverage          string `json:"coverage"`
	EndTime           string `json:"endTime"`
	DocumentReference string `json:"documentReference"`
	DocumentURL       string `json:"documentUrl,omitempty"`
}

// viewJSON keeps big numbers as decimal strings so no precision is lost in
// JavaScript consumers.
type viewJSON struct {
	State         string                   `json:"state"`
	Parameters    *claim.DisplayParameters `json:"parameters,omitempty"`
	Claim         *claimJSON               `json:"claim,omitempty"`
	Error         *claim.ErrorState        `json:"error,omitempty"`
	ProviderError string                   `json:"providerError,omitempty"`
}

func toViewJSON(v claim.View, gateway string) viewJSON {
	out := viewJSON{
		State:         v.State.String(),
		Parameters:    v.Parameters,
		Error:         v.Error,
		ProviderError: v.ProviderError,
	}
	if v.Record != nil {
		c := &claimJSON{
			Claimant:          v.Record.Claimant,
			Beneficiary:       v.Record.Beneficiary,
			DocumentReference: v.Record.DocumentReference,
		}
		if v.Record.Coverage != nil {
			c.Coverage = v.Record.Coverage.String()
		}
		if v.Record.EndTime != nil {
			c.EndTime = v.Record.EndTime.String()
		}
		for _, f := range v.Record.Fields(gateway) {
			if f.Link != "" {
				c.DocumentURL = f.Link
			}
		}
		out.Claim = c
	}
	return out
}
