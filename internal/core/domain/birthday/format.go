package birthday

import (
	"fmt"
	"strings"
	"time"
)

const (
	whatsappLinkFormat = "https://api.whatsapp.com/send?phone=%s"
	telegramLinkFormat = "https://web.telegram.org/#/im?p=%s"
)

// FormatRecord renders one reply line for a record. With showAge the
// parenthesized part is the age at now, otherwise the stored date.
func FormatRecord(r Record, showAge bool, now time.Time) string {
	var inner string
	if showAge {
		inner = fmt.Sprintf("%d", r.Date.Age(now))
	} else {
		inner = r.Date.String()
	}

	link := contactLink(r)
	if link == "" {
		return fmt.Sprintf("- %s (%s)", r.Name, inner)
	}
	return fmt.Sprintf("- %s (%s) - %s", r.Name, inner, link)
}

// FormatDigest renders the daily reminder message, ages shown.
func FormatDigest(records []Record, now time.Time) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, "The following people are celebrating their birthday today:")
	for _, r := range records {
		lines = append(lines, FormatRecord(r, true, now))
	}
	return strings.Join(lines, "\n")
}

// FormatList renders the full listing, stored dates shown.
func FormatList(records []Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, "You have the following birthdays registered:")
	for _, r := range records {
		lines = append(lines, FormatRecord(r, false, time.Time{}))
	}
	return strings.Join(lines, "\n")
}

func contactLink(r Record) string {
	// Unknown tags fall through to no link, same as ServiceNone.
	switch r.Service {
	case ServiceWhatsapp:
		return fmt.Sprintf(whatsappLinkFormat, r.Handle)
	case ServiceTelegram:
		return fmt.Sprintf(telegramLinkFormat, r.Handle)
	}
	return ""
}
