// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package source

import (
	"strconv"
	"strings"

	"github.com/skyquorum/skyquorum/internal/vartype"
)

// SafeFloat coerces a loosely typed API field into a float64. Providers
// disagree on whether numbers arrive as JSON numbers or strings (wttr.in
// sends "14", Meteosource sends "57%"). Invalid or missing values become 0
// instead of failing the whole observation.
func SafeFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// FloatVar coerces an optional API field into an optional metric: nil stays
// unreported, everything else goes through SafeFloat.
func FloatVar(v any) vartype.VarFloat64 {
	var out vartype.VarFloat64
	if v == nil {
		return out
	}
	out.Set(SafeFloat(v))
	return out
}
