package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/dynviz/internal/dynamo"
)

// ParseParams reads model parameter overrides given as "name=value".
// A later pair for the same name wins.
func ParseParams(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("param %q: want name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", name, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("param %s=%v: %w", name, v, dynamo.ErrParameterBounds)
		}
		out[name] = v
	}
	return out, nil
}
