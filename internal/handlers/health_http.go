package handlers

import (
	"context"
	"net/http"
	"time"

	"offboard-checklist/internal/utils"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Ready reports 503 until the store answers a ping.
func Ready(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			utils.Error(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
