package phone

import "strings"

var stripper = strings.NewReplacer("-", "", "(", "", ")", "", " ", "")

// Normalize - best-effort US-centric E.164 formatting. The result is not validated.
func Normalize(raw string) string {
	if strings.HasPrefix(raw, "+") {
		return raw
	}
	if strings.HasPrefix(raw, "1") {
		return "+" + raw
	}
	return "+1" + stripper.Replace(raw)
}
