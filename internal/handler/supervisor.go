package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"vacation-manager/internal/models"
	"vacation-manager/internal/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) registerSupervisor(message *tgbotapi.Message, args string) {
	parts := strings.Fields(args)
	if len(parts) != 6 && len(parts) != 7 {
		h.reply(message.Chat.ID, "❌ Usage: /register UID EMAIL FIRST LAST DEPARTMENT SHIFT [PHONE]")
		return
	}

	supervisor := &models.Supervisor{
		FirebaseUID: parts[0],
		Email:       parts[1],
		FirstName:   parts[2],
		LastName:    parts[3],
		Department:  parts[4],
		Shift:       parts[5],
	}
	if len(parts) == 7 {
		supervisor.PhoneNumber = parts[6]
	}

	if err := h.services.Supervisors.Register(supervisor); err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	// new supervisors get default reminders, so the timers may need a slot
	if err := h.services.Preferences.RescheduleAll(); err != nil {
		h.logger.WithError(err).Warn("Failed to reschedule after registration")
	}

	h.reply(message.Chat.ID, fmt.Sprintf("✅ Supervisor #%d registered: %s (%s, %s shift)",
		supervisor.ID, supervisor.FullName(), supervisor.Department, supervisor.Shift))
}

func (h *Handler) listSupervisors(message *tgbotapi.Message) {
	supervisors, err := h.services.Supervisors.List()
	if err != nil {
		h.reply(message.Chat.ID, "❌ Failed to list supervisors: "+err.Error())
		return
	}
	if len(supervisors) == 0 {
		h.reply(message.Chat.ID, "👥 No supervisors registered.")
		return
	}

	var b strings.Builder
	b.WriteString("👥 Supervisors:")
	for _, s := range supervisors {
		fmt.Fprintf(&b, "\n#%d %s - %s, %s shift", s.ID, s.FullName(), s.Department, s.Shift)
	}
	h.reply(message.Chat.ID, b.String())
}

func (h *Handler) whois(message *tgbotapi.Message, args string) {
	uid := strings.TrimSpace(args)
	if uid == "" {
		h.reply(message.Chat.ID, "❌ Usage: /whois UID")
		return
	}

	supervisor, err := h.services.Supervisors.GetByFirebaseUID(uid)
	if errors.Is(err, repository.ErrNotFound) {
		h.reply(message.Chat.ID, "❌ No supervisor is linked to "+uid+".")
		return
	}
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.reply(message.Chat.ID, formatSupervisor(supervisor))
}

func (h *Handler) addEmployee(message *tgbotapi.Message, args string) {
	parts := strings.Fields(args)
	if len(parts) != 8 {
		h.reply(message.Chat.ID, "❌ Usage: /addemployee SUP FIRST LAST PHONE DEPARTMENT SHIFT LINE AREA")
		return
	}

	supervisor, ok := h.lookupSupervisor(message.Chat.ID, parts[0])
	if !ok {
		return
	}

	employee := &models.Employee{
		FirstName:   parts[1],
		LastName:    parts[2],
		PhoneNumber: parts[3],
		Department:  parts[4],
		Shift:       parts[5],
		WorkLine:    parts[6],
		WorkArea:    parts[7],
	}
	if err := h.services.Employees.Add(supervisor.ID, employee); err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("✅ Employee #%d added to %s: %s",
		employee.ID, supervisor.FullName(), employee.FullName()))
}

func (h *Handler) showRoster(message *tgbotapi.Message, args string) {
	supervisor, ok := h.lookupSupervisor(message.Chat.ID, args)
	if !ok {
		return
	}

	employees, err := h.services.Employees.Roster(supervisor.ID)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Failed to load roster: "+err.Error())
		return
	}
	if len(employees) == 0 {
		h.reply(message.Chat.ID, fmt.Sprintf("👥 %s has no employees.", supervisor.FullName()))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 Roster of %s:", supervisor.FullName())
	for _, e := range employees {
		fmt.Fprintf(&b, "\n#%d %s - line %s, %s", e.ID, e.FullName(), e.WorkLine, e.WorkArea)
	}
	h.reply(message.Chat.ID, b.String())
}

// lookupSupervisor parses a supervisor id argument and loads it, replying on failure.
func (h *Handler) lookupSupervisor(chatID int64, arg string) (*models.Supervisor, bool) {
	id, err := parseID(arg)
	if err != nil {
		h.reply(chatID, fmt.Sprintf("❌ Invalid supervisor id %q.", strings.TrimSpace(arg)))
		return nil, false
	}

	supervisor, err := h.services.Supervisors.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		h.reply(chatID, fmt.Sprintf("❌ Supervisor #%d not found.", id))
		return nil, false
	}
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return nil, false
	}
	return supervisor, true
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func formatSupervisor(s *models.Supervisor) string {
	phone := s.PhoneNumber
	if phone == "" {
		phone = "not set"
	}
	return fmt.Sprintf("👤 #%d %s\nEmail: %s\nDepartment: %s\nShift: %s\nPhone: %s",
		s.ID, s.FullName(), s.Email, s.Department, s.Shift, phone)
}
