package preferences

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"ideabreak/internal/storage"
)

// Form holds the editable values as shown in the window.
type Form struct {
	WorkMinutes     string
	BreakMinutes    string
	TimeoutSeconds  string
	DeadlineSeconds string
	Ideas           string
	Notifiers       []string
}

// FormFromSettings renders settings into form values. Durations that are not
// whole minutes are shown in seconds with an "s" suffix.
func FormFromSettings(settings storage.Settings) Form {
	return Form{
		WorkMinutes:     formatMinutes(settings.WorkDurationSeconds),
		BreakMinutes:    formatMinutes(settings.BreakDurationSeconds),
		TimeoutSeconds:  strconv.Itoa(settings.NotificationTimeoutSeconds),
		DeadlineSeconds: strconv.Itoa(settings.DeliveryDeadlineSeconds),
		Ideas:           strings.Join(settings.Ideas, "\n"),
		Notifiers:       append([]string(nil), settings.Notifiers...),
	}
}

// Apply parses form on top of base and validates the result.
func (form Form) Apply(base storage.Settings) (storage.Settings, error) {
	settings := base

	var err error
	if settings.WorkDurationSeconds, err = parseMinutes("work", form.WorkMinutes); err != nil {
		return base, err
	}
	if settings.BreakDurationSeconds, err = parseMinutes("break", form.BreakMinutes); err != nil {
		return base, err
	}
	if settings.NotificationTimeoutSeconds, err = parseInt("notification timeout", form.TimeoutSeconds); err != nil {
		return base, err
	}
	if settings.DeliveryDeadlineSeconds, err = parseInt("delivery deadline", form.DeadlineSeconds); err != nil {
		return base, err
	}
	settings.Ideas = splitIdeas(form.Ideas)
	settings.Notifiers = append([]string(nil), form.Notifiers...)

	if err := settings.Validate(); err != nil {
		return base, err
	}
	return settings, nil
}

func formatMinutes(seconds int) string {
	if seconds%60 == 0 {
		return strconv.Itoa(seconds / 60)
	}
	return strconv.Itoa(seconds) + "s"
}

func parseMinutes(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if seconds, ok := strings.CutSuffix(value, "s"); ok {
		return parseInt(field, seconds)
	}
	minutes, err := parseInt(field, value)
	if err != nil {
		return 0, err
	}
	return minutes * 60, nil
}

func parseInt(field, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Newf("%s: %q is not a whole number", field, value)
	}
	return parsed, nil
}

func splitIdeas(text string) []string {
	var ideas []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ideas = append(ideas, line)
		}
	}
	return ideas
}
