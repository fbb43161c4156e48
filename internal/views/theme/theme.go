package theme

import (
	"strings"

	"sppgmenu/internal/nutrition"
)

// Option represents a selectable value exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Badge holds the utility classes for a coloured pill.
type Badge struct {
	Bg     string
	Text   string
	Border string
}

// Class joins the badge classes for a class attribute.
func (b Badge) Class() string {
	return strings.Join([]string{"inline-flex items-center rounded-full border px-2 py-0.5 text-xs font-medium", b.Bg, b.Text, b.Border}, " ")
}

func palette(color string) Badge {
	return Badge{
		Bg:     "bg-" + color + "-100",
		Text:   "text-" + color + "-800",
		Border: "border-" + color + "-200",
	}
}

var neutral = palette("gray")

var statusColors = map[nutrition.Status]string{
	nutrition.StatusCompliant: "green",
	nutrition.StatusUnder:     "amber",
	nutrition.StatusOver:      "red",
	nutrition.StatusMissing:   "gray",
}

var levelColors = map[nutrition.TargetLevel]string{
	nutrition.LevelTK:  "pink",
	nutrition.LevelSD:  "blue",
	nutrition.LevelSMP: "green",
	nutrition.LevelSMA: "purple",
}

// StatusBadge returns the badge for a compliance status.
func StatusBadge(status nutrition.Status) Badge {
	if color, ok := statusColors[status]; ok {
		return palette(color)
	}
	return neutral
}

// LevelBadge returns the badge for a target level.
func LevelBadge(level nutrition.TargetLevel) Badge {
	if color, ok := levelColors[level]; ok {
		return palette(color)
	}
	return neutral
}

// GradeBadge maps a grade's colour name onto badge classes.
func GradeBadge(grade nutrition.GradeInfo) Badge {
	if strings.TrimSpace(grade.Color) == "" {
		return neutral
	}
	return palette(grade.Color)
}

// StatusLabel is the Indonesian label shown for a status.
func StatusLabel(status nutrition.Status) string {
	switch status {
	case nutrition.StatusCompliant:
		return "Sesuai"
	case nutrition.StatusUnder:
		return "Kurang"
	case nutrition.StatusOver:
		return "Berlebih"
	default:
		return "Tidak ada data"
	}
}

// LevelOptions exposes the target levels for rendering in a form control.
func LevelOptions() []Option {
	levels := nutrition.Levels()
	options := make([]Option, 0, len(levels))
	for _, level := range levels {
		options = append(options, Option{Value: string(level), Label: level.Name() + " (" + string(level) + ")"})
	}
	return options
}
