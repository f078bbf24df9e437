package config

import (
	"fmt"
	"strings"
)

// RenderDefaultTOML renders a commented config.toml with every default from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# notion2md configuration (TOML)\n\n")

	top, sections, order := splitSections(GetConfigOptions())
	for _, o := range top {
		b.WriteString(strings.Join(optionLines(o), "\n"))
		b.WriteString("\n\n")
	}
	for _, section := range order {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			b.WriteString(strings.Join(optionLines(o), "\n"))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// TOMLUpdate is the result of UpdateTOML. Added and Outdated hold full
// dotted keys in document order.
type TOMLUpdate struct {
	Content  string
	Added    []string
	Outdated []string
}

// Changed reports whether the update differs from the input.
func (u TOMLUpdate) Changed() bool {
	return len(u.Added) > 0 || len(u.Outdated) > 0
}

// UpdateTOML merges missing defaults into an existing TOML document and
// comments out keys that are no longer part of the schema. Missing keys of
// a table that already exists are added to that table.
func UpdateTOML(existing string) TOMLUpdate {
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]bool)
	tableEnd := make(map[string]int) // index in out after the table's last key
	firstTable := -1
	section := ""
	var outdated []string

	for _, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case trim == "" || strings.HasPrefix(trim, "#"):
			out = append(out, line)
			continue
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			if firstTable < 0 {
				firstTable = len(out)
			}
			out = append(out, line)
			tableEnd[section] = len(out)
			continue
		}
		key, ok := parseTOMLKey(trim)
		if !ok {
			out = append(out, line)
			continue
		}
		if section != "" {
			key = section + "." + key
		}
		seen[key] = true
		if !known[key] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema", indent+"# "+trim)
			outdated = append(outdated, key)
		} else {
			out = append(out, line)
		}
		if section != "" {
			tableEnd[section] = len(out)
		}
	}

	var missing []ConfigOption
	var added []string
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			missing = append(missing, o)
			added = append(added, o.Key)
		}
	}
	if len(missing) == 0 {
		return TOMLUpdate{Content: strings.Join(out, "\n"), Outdated: outdated}
	}

	top, sections, order := splitSections(missing)
	inserts := make(map[int][]string)
	var appended []string
	for _, o := range top {
		if firstTable < 0 {
			appended = append(appended, optionLines(o)...)
			continue
		}
		inserts[firstTable] = append(inserts[firstTable], optionLines(o)...)
	}
	for _, s := range order {
		end, exists := tableEnd[s]
		for i, o := range sections[s] {
			if exists {
				inserts[end] = append(inserts[end], optionLines(o)...)
				continue
			}
			if i == 0 {
				appended = append(appended, "["+s+"]")
			}
			appended = append(appended, optionLines(o)...)
		}
	}

	merged := make([]string, 0, len(out)+len(appended)+len(inserts)*2)
	for i := 0; i <= len(out); i++ {
		merged = append(merged, inserts[i]...)
		if i < len(out) {
			merged = append(merged, out[i])
		}
	}
	if len(appended) > 0 {
		merged = append(merged, "", "# Added by config update")
		merged = append(merged, appended...)
		merged = append(merged, "")
	}
	return TOMLUpdate{Content: strings.Join(merged, "\n"), Added: added, Outdated: outdated}
}

// splitSections separates dotted keys into TOML tables, keeping option order.
func splitSections(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	var top []ConfigOption
	sections := make(map[string][]ConfigOption)
	var order []string
	for _, o := range opts {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, exists := sections[section]; !exists {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func optionLines(o ConfigOption) []string {
	var lines []string
	if o.Comment != "" {
		lines = append(lines, "# "+o.Comment)
	}
	return append(lines, o.Key+" = "+tomlValue(o.Default))
}

func tomlValue(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []string:
		quoted := make([]string, len(x))
		for i, s := range x {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}

func parseTOMLKey(line string) (string, bool) {
	key, _, ok := strings.Cut(line, "=")
	if !ok {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key[:1], "[\"'") {
		return "", false
	}
	return key, true
}
