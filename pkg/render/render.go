// Package render writes an assembled hub configuration in the formats its
// consumers read: a table for operators, JSON and YAML for tooling, and a
// jupyterhub_config.py for the hub itself.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/hubconf/pkg/hub"
)

const maskedValue = "********"

// Parse returns the Format named s
func Parse(s string) (Format, error) {
	f, err := FormatString(s)
	if err != nil {
		return 0, fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(FormatStrings(), ", "))
	}
	return f, nil
}

// Render writes cfg to w in the given format
func Render(w io.Writer, cfg *hub.Config, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, Text(cfg))
		return err
	case FormatJSON:
		return JSON(w, cfg)
	case FormatYAML:
		return YAML(w, cfg)
	case FormatPython:
		_, err := io.WriteString(w, Python(cfg))
		return err
	default:
		return fmt.Errorf("unknown output format %s", format)
	}
}

// Text returns an aligned NAME/VALUE/SOURCE table. Secrets are masked.
func Text(cfg *hub.Config) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Variant: %s\n\n", cfg.Variant))
	sb.WriteString(fmt.Sprintf("%-48s %-44s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-48s %-44s %s\n", "----", "-----", "------"))

	for _, attr := range cfg.Attributes() {
		value := textValue(attr.Value)
		if attr.Secret() {
			value = maskedValue
		}
		if value == "" {
			value = "(empty)"
		}
		source := string(attr.Source)
		if attr.EnvKey != "" {
			source += " (" + attr.EnvKey + ")"
		}
		sb.WriteString(fmt.Sprintf("%-48s %-44s %s\n", attr.Name, value, source))
	}
	return sb.String()
}

func textValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ",")
	case map[string]string:
		parts := make([]string, 0, len(t))
		for _, k := range sortedKeys(t) {
			parts = append(parts, k+"="+t[k])
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// JSON writes the variant and the attribute list with sources
func JSON(w io.Writer, cfg *hub.Config) error {
	result := map[string]interface{}{
		"variant":    cfg.Variant,
		"attributes": cfg.Attributes(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// YAML writes the configuration tree grouped by collaborator
func YAML(w io.Writer, cfg *hub.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
