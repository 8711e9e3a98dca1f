package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// stages reported in the failure envelope
const (
	StageRetrieve = "retrieve"
	StageDecode   = "decode"
	StageValidate = "validate"
	StageEncode   = "encode"
)

type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, v envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("stage", StageEncode).Msg("write json")
	}
}

func writeOK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, envelope{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, code int, stage string, err error) {
	zerolog.Ctx(r.Context()).Warn().Err(err).Str("stage", stage).Int("status", code).Msg("request failed")
	writeJSON(w, r, code, envelope{Status: "error", Stage: stage, Message: err.Error()})
}
