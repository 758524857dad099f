package profile

import (
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// Resolve returns the value of the first header matching a candidate,
// trying candidates in priority order. Matching ignores case and
// surrounding whitespace. The second result is false when nothing matched.
func Resolve(row model.RawRow, candidates []string) (model.Cell, bool) {
	for _, c := range candidates {
		want := strings.TrimSpace(c)
		for _, f := range row.Fields {
			if strings.EqualFold(strings.TrimSpace(f.Header), want) {
				return f.Value, true
			}
		}
	}
	return model.Cell{}, false
}
