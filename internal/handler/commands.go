package handler

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"vacation-manager/pkg/businessdays"
	"vacation-manager/pkg/holidays"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const sweepTimeout = 5 * time.Minute

const helpText = `📋 Available commands:

/schedule - Registered reminder times
/sweep - Run a reminder sweep now
/duration YYYY-MM-DD YYYY-MM-DD - Business days, hours and return date
    Example: /duration 2024-07-01 2024-07-05
/checkday YYYY-MM-DD - Is the date a business day
/holidays [year] - Company holidays and plant closures
/reloadclosures - Reload plant closure days from file

/register UID EMAIL FIRST LAST DEPARTMENT SHIFT [PHONE] - Add a supervisor
/supervisors - List supervisors
/whois UID - Supervisor linked to an identity
/addemployee SUP FIRST LAST PHONE DEPARTMENT SHIFT LINE AREA - Add an employee
/roster SUP - Employees of a supervisor

/request SUP EMP YYYY-MM-DD YYYY-MM-DD - File a vacation request
/approve SUP REQ - Approve a request
/deny SUP REQ - Deny a request
/requests SUP [pending|approved|denied] - Requests of a supervisor
/stats SUP - Dashboard numbers

/prefs SUP - Reminder settings
/setprefs SUP key=value... - Change reminder settings
    Keys: enabled, days, per_day, times, phone, tz
    Example: /setprefs 1 days=3 times=08:00,14:00 phone=none
/help - Show this message`

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	args := message.CommandArguments()

	switch message.Command() {
	case "start", "help":
		h.reply(message.Chat.ID, helpText)
	case "schedule":
		h.showSchedule(message)
	case "sweep":
		h.runSweep(message)
	case "duration":
		h.showDuration(message, args)
	case "checkday":
		h.checkDay(message, args)
	case "holidays":
		h.showHolidays(message, args)
	case "reloadclosures":
		h.reloadClosures(message)
	case "register":
		h.registerSupervisor(message, args)
	case "supervisors":
		h.listSupervisors(message)
	case "whois":
		h.whois(message, args)
	case "addemployee":
		h.addEmployee(message, args)
	case "roster":
		h.showRoster(message, args)
	case "request":
		h.createRequest(message, args)
	case "approve":
		h.decideRequest(message, args, true)
	case "deny":
		h.decideRequest(message, args, false)
	case "requests":
		h.listRequests(message, args)
	case "stats":
		h.showStats(message, args)
	case "prefs":
		h.showPreferences(message, args)
	case "setprefs":
		h.updatePreferences(message, args)
	default:
		h.reply(message.Chat.ID, "❌ Unknown command. Use /help for the list of commands.")
	}
}

func (h *Handler) showSchedule(message *tgbotapi.Message) {
	slots := h.scheduler.SlotLabels()
	if len(slots) == 0 {
		h.reply(message.Chat.ID, "⏸ No reminder times are registered.")
		return
	}
	h.reply(message.Chat.ID, "⏰ Reminder times: "+strings.Join(slots, ", "))
}

func (h *Handler) runSweep(message *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	result, ran, err := h.scheduler.RunNow(ctx)
	if !ran {
		h.reply(message.Chat.ID, "⏳ A sweep is already running, try again later.")
		return
	}

	text := FormatSweepResult(result.SweepID, result.Sent, result.Failed, result.Skipped)
	if err != nil {
		text += "\n⚠️ " + err.Error()
	}
	h.reply(message.Chat.ID, text)
}

func (h *Handler) showDuration(message *tgbotapi.Message, args string) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		h.reply(message.Chat.ID, "❌ Usage: /duration YYYY-MM-DD YYYY-MM-DD")
		return
	}

	duration, err := h.services.Vacations.CalculateDuration(parts[0], parts[1])
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("📅 %s to %s\nBusiness days: %d\nTotal hours: %d\nReturn date: %s",
		parts[0], parts[1], duration.BusinessDays, duration.TotalHours,
		duration.ReturnDate.Format(businessdays.DateLayout)))
}

func (h *Handler) showHolidays(message *tgbotapi.Message, args string) {
	year := h.now().Year()
	if args = strings.TrimSpace(args); args != "" {
		parsed, err := strconv.Atoi(args)
		if err != nil || parsed < 1 {
			h.reply(message.Chat.ID, "❌ Usage: /holidays [year]")
			return
		}
		year = parsed
	}

	text := FormatHolidays(year)

	closures, err := h.services.Closures.ForYear(year)
	if err != nil {
		h.logger.WithError(err).WithField("year", year).Warn("Failed to read plant closures")
		text += "\n⚠️ Plant closures unavailable"
	} else if len(closures) > 0 {
		text += "\n🏭 Plant closures: " + formatDates(closures)
	}

	h.reply(message.Chat.ID, text)
}

func (h *Handler) checkDay(message *tgbotapi.Message, args string) {
	date, err := businessdays.ParseDate(args)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Usage: /checkday YYYY-MM-DD")
		return
	}
	label := date.Format(businessdays.DateLayout)

	if weekday := date.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		h.reply(message.Chat.ID, fmt.Sprintf("📅 %s is a %s (weekend).", label, weekday))
		return
	}
	if name, ok := holidays.Name(date); ok {
		h.reply(message.Chat.ID, fmt.Sprintf("🎉 %s is a holiday: %s.", label, name))
		return
	}

	closed, err := h.services.Closures.IsNonWorkingDay(date)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Failed to read closures: "+err.Error())
		return
	}
	if closed {
		h.reply(message.Chat.ID, fmt.Sprintf("🏭 %s is a plant closure day.", label))
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("✅ %s is a business day.", label))
}

func (h *Handler) reloadClosures(message *tgbotapi.Message) {
	if h.closuresFile == "" {
		h.reply(message.Chat.ID, "❌ No closure file is configured.")
		return
	}

	count, err := h.services.Closures.LoadFromJSON(h.closuresFile)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Failed to load closures: "+err.Error())
		return
	}

	dates, err := h.services.Closures.Dates()
	if err != nil {
		h.reply(message.Chat.ID, "❌ Failed to read closures: "+err.Error())
		return
	}
	h.services.Vacations.SetClosures(dates)

	h.reply(message.Chat.ID, fmt.Sprintf("✅ Loaded %d closure days.", count))
}

// FormatHolidays lists the observances of a year, one per line.
func FormatHolidays(year int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Holidays %d:", year)
	for _, o := range holidays.Observances(year) {
		fmt.Fprintf(&b, "\n%s %s - %s", o.Date.Format(businessdays.DateLayout), o.Date.Weekday().String()[:3], o.Name)
	}
	return b.String()
}

func formatDates(dates []time.Time) string {
	labels := make([]string, 0, len(dates))
	for _, d := range dates {
		labels = append(labels, d.Format(businessdays.DateLayout))
	}
	return strings.Join(labels, ", ")
}

// FormatSweepResult summarises a sweep for a chat reply.
func FormatSweepResult(sweepID string, sent, failed int, skipped map[string]int) string {
	text := fmt.Sprintf("📨 Sweep %s\nSent: %d\nFailed: %d", sweepID, sent, failed)

	reasons := make([]string, 0, len(skipped))
	for reason := range skipped {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		text += fmt.Sprintf("\nSkipped (%s): %d", reason, skipped[reason])
	}
	return text
}
