package utils

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// OrderedMapToString formats the map into a single bracketed string, keeping insertion order.
// Example: [foo=1 bar=true]
func OrderedMapToString(m *orderedmap.OrderedMap[string, any]) string {
	if m == nil || m.Len() == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for el := m.Front(); el != nil; el = el.Next() {
		if sb.Len() > 1 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%s=%v", el.Key, el.Value))
	}
	sb.WriteByte(']')
	return sb.String()
}
