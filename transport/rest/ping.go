package rest

import "net/http"

// pingHandler answers liveness probes. It sits outside the session middleware so probes never get a cookie.
func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
