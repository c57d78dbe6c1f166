package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReminder(t *testing.T) {
	start := day(2024, 7, 1)
	end := day(2024, 7, 5)

	tests := []struct {
		name      string
		daysUntil int
		want      string
	}{
		{
			name:      "today",
			daysUntil: 0,
			want:      "🏖️ VACATION ALERT: Ana Garcia starts vacation TODAY (07/01/2024 to 07/05/2024). Total: 32 hours. - Don Miguel Vacation Manager",
		},
		{
			name:      "tomorrow",
			daysUntil: 1,
			want:      "🏖️ VACATION ALERT: Ana Garcia starts vacation TOMORROW (07/01/2024 to 07/05/2024). Total: 32 hours. - Don Miguel Vacation Manager",
		},
		{
			name:      "several days",
			daysUntil: 2,
			want:      "🏖️ VACATION ALERT: Ana Garcia starts vacation in 2 days (07/01/2024 to 07/05/2024). Total: 32 hours. - Don Miguel Vacation Manager",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatReminder("Ana Garcia", start, end, 32, tt.daysUntil))
		})
	}
}
