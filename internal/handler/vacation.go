package handler

import (
	"fmt"
	"strings"
	"vacation-manager/internal/models"
	"vacation-manager/pkg/businessdays"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) createRequest(message *tgbotapi.Message, args string) {
	parts := strings.Fields(args)
	if len(parts) != 4 {
		h.reply(message.Chat.ID, "❌ Usage: /request SUP EMP YYYY-MM-DD YYYY-MM-DD")
		return
	}

	supervisor, ok := h.lookupSupervisor(message.Chat.ID, parts[0])
	if !ok {
		return
	}
	employeeID, err := parseID(parts[1])
	if err != nil {
		h.reply(message.Chat.ID, fmt.Sprintf("❌ Invalid employee id %q.", parts[1]))
		return
	}

	request, err := h.services.Vacations.Create(supervisor.ID, employeeID, parts[2], parts[3])
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("📝 Request #%d for %s\n%s to %s\nTotal hours: %d\nReturn date: %s\nStatus: %s",
		request.ID, request.Employee.FullName(),
		request.StartDate.Format(businessdays.DateLayout),
		request.EndDate.Format(businessdays.DateLayout),
		request.TotalHours,
		request.ReturnDate.Format(businessdays.DateLayout),
		request.Status))
}

func (h *Handler) decideRequest(message *tgbotapi.Message, args string, approve bool) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		name := "deny"
		if approve {
			name = "approve"
		}
		h.reply(message.Chat.ID, fmt.Sprintf("❌ Usage: /%s SUP REQ", name))
		return
	}

	supervisorID, err := parseID(parts[0])
	if err != nil {
		h.reply(message.Chat.ID, fmt.Sprintf("❌ Invalid supervisor id %q.", parts[0]))
		return
	}
	requestID, err := parseID(parts[1])
	if err != nil {
		h.reply(message.Chat.ID, fmt.Sprintf("❌ Invalid request id %q.", parts[1]))
		return
	}

	var request *models.VacationRequest
	if approve {
		request, err = h.services.Vacations.Approve(supervisorID, requestID)
	} else {
		request, err = h.services.Vacations.Deny(supervisorID, requestID)
	}
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	icon := "🚫"
	if approve {
		icon = "✅"
	}
	h.reply(message.Chat.ID, fmt.Sprintf("%s Request #%d %s: %s, %s to %s",
		icon, request.ID, request.Status, request.Employee.FullName(),
		request.StartDate.Format(businessdays.DateLayout),
		request.EndDate.Format(businessdays.DateLayout)))
}

func (h *Handler) listRequests(message *tgbotapi.Message, args string) {
	parts := strings.Fields(args)
	if len(parts) != 1 && len(parts) != 2 {
		h.reply(message.Chat.ID, "❌ Usage: /requests SUP [pending|approved|denied]")
		return
	}

	supervisor, ok := h.lookupSupervisor(message.Chat.ID, parts[0])
	if !ok {
		return
	}
	status := ""
	if len(parts) == 2 {
		status = canonicalStatus(parts[1])
	}

	requests, err := h.services.Vacations.ListForSupervisor(supervisor.ID, status)
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}
	if len(requests) == 0 {
		h.reply(message.Chat.ID, fmt.Sprintf("📋 No requests for %s.", supervisor.FullName()))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Requests for %s:", supervisor.FullName())
	for _, r := range requests {
		b.WriteString("\n" + formatRequestLine(r))
	}
	h.reply(message.Chat.ID, b.String())
}

func (h *Handler) showStats(message *tgbotapi.Message, args string) {
	supervisor, ok := h.lookupSupervisor(message.Chat.ID, args)
	if !ok {
		return
	}

	stats, err := h.services.Vacations.DashboardStats(supervisor.ID, h.now())
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s\nEmployees: %d\nPending: %d\nApproved: %d\nDenied: %d",
		supervisor.FullName(), stats.TotalEmployees,
		stats.PendingRequests, stats.ApprovedRequests, stats.DeniedRequests)
	if len(stats.UpcomingVacations) == 0 {
		b.WriteString("\nUpcoming: none")
	} else {
		b.WriteString("\nUpcoming:")
		for _, r := range stats.UpcomingVacations {
			b.WriteString("\n" + formatRequestLine(r))
		}
	}
	h.reply(message.Chat.ID, b.String())
}

func formatRequestLine(r models.VacationRequest) string {
	return fmt.Sprintf("#%d %s %s to %s (%dh) %s",
		r.ID, r.Employee.FullName(),
		r.StartDate.Format(businessdays.DateLayout),
		r.EndDate.Format(businessdays.DateLayout),
		r.TotalHours, r.Status)
}

// canonicalStatus maps "approved" to "Approved". Unknown values pass through for the service to reject.
func canonicalStatus(value string) string {
	for _, status := range []string{models.VacationStatusPending, models.VacationStatusApproved, models.VacationStatusDenied} {
		if strings.EqualFold(value, status) {
			return status
		}
	}
	return value
}
