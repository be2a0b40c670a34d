package params

import (
	"fmt"
	"strings"
)

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case []string:
		return "[" + strings.Join(t, ",") + "]"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
