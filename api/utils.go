package api

import (
	"net/http"

	"entsearch/util"

	"go.uber.org/zap"
)

// maxErrorMessageLength bounds messages returned to clients
const maxErrorMessageLength = 256

// sanitizeErrorMessage removes credentials from messages before sending them to clients
func sanitizeErrorMessage(message string) string {
	message = util.SanitizeString(message)

	if len(message) > maxErrorMessageLength {
		message = message[:maxErrorMessageLength-3] + "..."
	}
	return message
}

// writeError writes an error response to the client and logs it with proper sanitization
func writeError(w http.ResponseWriter, statusCode int, message string, err error, logger *zap.SugaredLogger) {
	if logger != nil {
		if err != nil {
			logger.Errorw(message,
				"error", util.SanitizeError(err),
				"status_code", statusCode)
		} else {
			logger.Errorw(message,
				"status_code", statusCode)
		}
	}

	http.Error(w, sanitizeErrorMessage(message), statusCode)
}
