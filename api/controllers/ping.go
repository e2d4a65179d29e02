package controllers

import (
	"net/http"

	"github.com/olivercruz/dishpatch-backend/api/responses"
)

// PublicPing is an unauthenticated reachability probe.
func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "pong"})
	}
}
