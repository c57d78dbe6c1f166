package service

import (
	"fmt"
	"time"
)

const messageDateLayout = "01/02/2006"

const messageSignature = "Don Miguel Vacation Manager"

// FormatReminder renders the vacation reminder SMS body.
func FormatReminder(employeeName string, start, end time.Time, totalHours, daysUntil int) string {
	return fmt.Sprintf("🏖️ VACATION ALERT: %s starts vacation %s (%s to %s). Total: %d hours. - %s",
		employeeName,
		whenPhrase(daysUntil),
		start.Format(messageDateLayout),
		end.Format(messageDateLayout),
		totalHours,
		messageSignature,
	)
}

func whenPhrase(daysUntil int) string {
	switch daysUntil {
	case 0:
		return "TODAY"
	case 1:
		return "TOMORROW"
	default:
		return fmt.Sprintf("in %d days", daysUntil)
	}
}
