package utils

import (
	"strings"

	"github.com/google/uuid"
)

func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {

	if logMessagesBuilder.Len() == logMessagesBuilder.Cap() {

		logMessagesBuilder.Grow(len(strToAdd))
	}

	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}

// StartLogMessage writes the "[Name API] req=<id>" header of a request log.
func StartLogMessage(logMessagesBuilder *strings.Builder, name string) string {
	requestID := uuid.NewString()
	AddToLogMessage(logMessagesBuilder, "["+name+" API] req="+requestID)
	return requestID
}
