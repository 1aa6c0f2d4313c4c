package httpapi

import (
	"encoding/json"
	"net/http"

	"carprice/pkg/types"
)

// Detail prefixes returned with 400 responses.
const (
	msgBadRequest = "Erro ao processar a requisição. Detalhe: "
	msgBadCar     = "Erro ao processar a requisição. Verifique se a marca e modelo são válidos. Detalhe: "
)

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, types.ErrorResponse{Detail: detail, Code: status})
}
