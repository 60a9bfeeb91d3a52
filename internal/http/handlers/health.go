package handlers

import (
	"net/http"

	"healthrecord-backend/internal/response"
)

func Health(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
