package handler

import (
	"fmt"
	"strconv"
	"strings"
	"vacation-manager/internal/models"
	"vacation-manager/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const setPrefsUsage = "❌ Usage: /setprefs SUP key=value...\nKeys: enabled, days, per_day, times, phone, tz"

func (h *Handler) showPreferences(message *tgbotapi.Message, args string) {
	supervisor, ok := h.lookupSupervisor(message.Chat.ID, args)
	if !ok {
		return
	}

	pref, err := h.services.Preferences.Get(supervisor.ID)
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.reply(message.Chat.ID, formatPreference(supervisor, pref))
}

// updatePreferences applies key=value overrides on top of the current settings.
func (h *Handler) updatePreferences(message *tgbotapi.Message, args string) {
	parts := strings.Fields(args)
	if len(parts) < 2 {
		h.reply(message.Chat.ID, setPrefsUsage)
		return
	}

	supervisor, ok := h.lookupSupervisor(message.Chat.ID, parts[0])
	if !ok {
		return
	}

	current, err := h.services.Preferences.Get(supervisor.ID)
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	input, err := applyPreferenceArgs(current, parts[1:])
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error()+"\n"+setPrefsUsage)
		return
	}

	pref, err := h.services.Preferences.Update(supervisor.ID, input)
	if err != nil {
		if pref == nil {
			h.reply(message.Chat.ID, "❌ "+err.Error())
			return
		}
		h.logger.WithError(err).WithField("supervisor_id", supervisor.ID).Warn("Preference saved but reschedule failed")
	}

	h.reply(message.Chat.ID, "✅ Saved.\n"+formatPreference(supervisor, pref))
}

func applyPreferenceArgs(current *models.NotificationPreference, args []string) (service.PreferenceInput, error) {
	input := service.PreferenceInput{
		SMSEnabled:          current.SMSEnabled,
		DaysBeforeVacation:  current.DaysBeforeVacation,
		NotificationsPerDay: current.NotificationsPerDay,
		NotificationTimes:   current.Times(),
		PhoneNumberOverride: current.PhoneNumberOverride,
		Timezone:            current.Timezone,
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || value == "" {
			return input, fmt.Errorf("expected key=value, got %q", arg)
		}

		var err error
		switch strings.ToLower(key) {
		case "enabled":
			input.SMSEnabled, err = strconv.ParseBool(value)
		case "days":
			input.DaysBeforeVacation, err = strconv.Atoi(value)
		case "per_day":
			input.NotificationsPerDay, err = strconv.Atoi(value)
		case "times":
			input.NotificationTimes = strings.Split(value, ",")
		case "phone":
			if strings.EqualFold(value, "none") {
				input.PhoneNumberOverride = nil
			} else {
				phone := value
				input.PhoneNumberOverride = &phone
			}
		case "tz":
			input.Timezone = value
		default:
			return input, fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return input, fmt.Errorf("invalid value for %s: %q", key, value)
		}
	}
	return input, nil
}

func formatPreference(supervisor *models.Supervisor, pref *models.NotificationPreference) string {
	state := "on"
	if !pref.SMSEnabled {
		state = "off"
	}
	phone := pref.OverridePhone()
	if phone == "" {
		phone = "supervisor phone"
	}

	return fmt.Sprintf("🔔 Reminders for %s: %s\nDays before: %d\nPer day: %d\nTimes: %s\nPhone: %s\nTimezone: %s",
		supervisor.FullName(), state,
		pref.DaysBeforeVacation, pref.NotificationsPerDay,
		strings.Join(pref.Times(), ", "), phone, pref.Timezone)
}
