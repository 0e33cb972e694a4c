package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/doodlesbykumbi/hubconf/pkg/hub"
)

// Python returns a jupyterhub_config.py assigning every attribute on the
// hub's config object, in assembly order.
func Python(cfg *hub.Config) string {
	var sb strings.Builder
	sb.WriteString("# Configuration file for JupyterHub\n")
	sb.WriteString(fmt.Sprintf("# Generated by hubconf (variant: %s). Do not edit.\n\n", cfg.Variant))
	sb.WriteString("c = get_config()  # noqa\n")

	section := ""
	for _, attr := range cfg.Attributes() {
		if attr.Section() != section {
			section = attr.Section()
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("c.%s = %s\n", attr.Name, pythonLiteral(attr.Value)))
	}
	return sb.String()
}

func pythonLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return pythonString(t)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case []string:
		items := make([]string, len(t))
		for i, s := range t {
			items[i] = pythonString(s)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]string:
		items := make([]string, 0, len(t))
		for _, k := range sortedKeys(t) {
			items = append(items, pythonString(k)+": "+pythonString(t[k]))
		}
		return "{" + strings.Join(items, ", ") + "}"
	case nil:
		return "None"
	default:
		return pythonString(fmt.Sprint(v))
	}
}

// strconv's escape sequences are valid in Python string literals as long as
// s is valid UTF-8. Assemble rejects env values that are not.
func pythonString(s string) string {
	return strconv.Quote(s)
}
