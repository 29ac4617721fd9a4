package handlers

import (
	"log"
	"net/http"
)

// respondWithError writes a plain-text error response and logs the cause.
// userMsg goes to the client; logMsg (falling back to userMsg) and err go
// to the log, so internals like SQL errors never leak into a page.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}
