package entities

import (
	"fmt"
	"strings"
	"unicode"

	domainerrors "sarb.backend/internal/domain/errors"
)

// Icon names the glyph shown on a service card. Values are Material icon
// ligature names.
type Icon string

const (
	IconPsychology   Icon = "psychology"
	IconVisibility   Icon = "visibility"
	IconAnalytics    Icon = "analytics"
	IconCloudQueue   Icon = "cloud_queue"
	IconSecurity     Icon = "security"
	IconSpeed        Icon = "speed"
	IconSmartToy     Icon = "smart_toy"
	IconScience      Icon = "science"
	IconRocketLaunch Icon = "rocket_launch"
	IconBalance      Icon = "balance"
	IconInsights     Icon = "insights"
	IconCode         Icon = "code"

	// IconCategory is shown for anything outside the known set.
	IconCategory Icon = "category"
)

var knownIcons = map[Icon]struct{}{
	IconPsychology: {}, IconVisibility: {}, IconAnalytics: {}, IconCloudQueue: {},
	IconSecurity: {}, IconSpeed: {}, IconSmartToy: {}, IconScience: {},
	IconRocketLaunch: {}, IconBalance: {}, IconInsights: {}, IconCode: {},
	IconCategory: {},
}

// Icons lists every accepted icon.
func Icons() []Icon {
	return []Icon{
		IconPsychology, IconVisibility, IconAnalytics, IconCloudQueue, IconSecurity, IconSpeed,
		IconSmartToy, IconScience, IconRocketLaunch, IconBalance, IconInsights, IconCode, IconCategory,
	}
}

// ParseIcon accepts snake_case ("smart_toy"), PascalCase ("SmartToy") or
// kebab-case names. Blank input selects IconCategory; unknown names fail.
func ParseIcon(s string) (Icon, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return IconCategory, nil
	}
	icon := Icon(normalizeIconName(s))
	if _, ok := knownIcons[icon]; !ok {
		return "", fmt.Errorf("unknown icon %q: %w", s, domainerrors.ErrInvalidInput)
	}
	return icon, nil
}

// ResolveIcon never fails: unknown stored values render as IconCategory.
func ResolveIcon(s string) Icon {
	icon, err := ParseIcon(s)
	if err != nil {
		return IconCategory
	}
	return icon
}

func normalizeIconName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
