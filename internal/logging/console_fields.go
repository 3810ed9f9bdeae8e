package logging

import (
	"log/slog"
	"strings"
	"time"
)

type infoField struct {
	label string
	value string
}

// infoHighlightKeys are printed first, in this order, when present.
var infoHighlightKeys = []string{
	FieldAlert,
	FieldEventType,
	"cue_source",
	"subtitle",
	"cue_count",
	"start",
	"end",
	"text",
	"output",
	"output_dir",
	"videos",
	"jobs",
	"succeeded",
	"failed",
	"attempt",
	"error",
	FieldErrorHint,
	FieldImpact,
	"duration",
}

// selectInfoFields returns formatted info-level fields and a count of hidden entries.
func selectInfoFields(attrs []kv) ([]infoField, int) {
	if len(attrs) == 0 {
		return nil, 0
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, len(attrs))
	hidden := 0

	consider := func(idx int) {
		used[idx] = true
		attr := attrs[idx]
		if skipInfoKey(attr.key) {
			return
		}
		if isDebugOnlyKey(attr.key) {
			hidden++
			return
		}
		value := formatValueForKey(attr.key, attr.value)
		if shouldHideInfoValue(attr.key, value) {
			hidden++
			return
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: value})
	}

	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if !used[idx] && attr.key == key {
				consider(idx)
				break
			}
		}
	}
	for idx := range attrs {
		if !used[idx] {
			consider(idx)
		}
	}
	return result, hidden
}

func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	if isDurationKey(key) && v.Kind() == slog.KindDuration {
		return v.Duration().Round(10 * time.Millisecond).String()
	}
	if v.Kind() == slog.KindBool {
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	value := formatValue(v)
	if key == "error" && len(value) > 200 {
		value = value[:200] + "…"
	}
	return value
}

func isDurationKey(key string) bool {
	return key == "duration" || key == "elapsed" || strings.HasSuffix(key, "_duration")
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldComponent, FieldVideo, FieldCueIndex, FieldStage:
		return true
	default:
		return false
	}
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case FieldRunID, "args", "input":
		return true
	}
	return strings.HasSuffix(key, "_path")
}

func shouldHideInfoValue(key, value string) bool {
	switch key {
	case "error", "text", "output":
		return false
	}
	return len(value) > 120
}

func displayLabel(key string) string {
	switch key {
	case FieldAlert:
		return "Alert"
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case "cue_source":
		return "Cues From"
	case "cue_count":
		return "Cues"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}

func attrValue(attrs []kv, key string) string {
	for _, kv := range attrs {
		if kv.key == key {
			return attrString(kv.value)
		}
	}
	return ""
}
