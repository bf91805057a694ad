package flow

import "healthbot/internal/catalog"

// Reserved tokens recognized in every booking state
const (
	BackToken     = "⬅️ Back"
	MainMenuToken = "🏠 Main Menu"
)

// rows lays labels out perRow to a row
func rows(labels []string, perRow int) [][]string {
	var out [][]string
	for i := 0; i < len(labels); i += perRow {
		end := i + perRow
		if end > len(labels) {
			end = len(labels)
		}
		out = append(out, append([]string(nil), labels[i:end]...))
	}
	return out
}

func withNav(options [][]string, back bool) [][]string {
	if back {
		return append(options, []string{BackToken, MainMenuToken})
	}
	return append(options, []string{MainMenuToken})
}

// matches accepts a button label typed with or without its leading emoji
func matches(text, label string) bool {
	return catalog.MatchLabel(text, label)
}

// pick returns the option the text selects
func pick(options []string, text string) (string, bool) {
	for _, o := range options {
		if matches(text, o) {
			return o, true
		}
	}
	return "", false
}
