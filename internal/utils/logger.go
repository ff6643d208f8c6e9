package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line for a service-layer event (a search, a booking
// transition, a ticket render). Messages carry identifiers and counts only,
// never passenger details.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, rid, message)
}
