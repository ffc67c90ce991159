// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package fetch

import (
	"errors"
	"strings"
	"unicode"

	"github.com/skyquorum/skyquorum/internal/source"
)

// ErrNoSources is returned when an exclusion list removes every configured
// source. Running a batch against zero providers is treated as a
// configuration mistake rather than an empty result.
var ErrNoSources = errors.New("all sources are excluded")

// Filter removes every source whose name matches an entry in exclude. Names
// are matched case-insensitively and with punctuation ignored, so "wttr.in",
// "WTTRIN" and "wttr-in" all name the same source. Unknown exclusion entries
// are silently ignored.
func Filter(sources []source.Source, exclude []string) ([]source.Source, error) {
	if len(exclude) == 0 {
		return sources, nil
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[foldName(name)] = struct{}{}
	}

	kept := make([]source.Source, 0, len(sources))
	for _, src := range sources {
		if _, ok := excluded[foldName(src.Name())]; ok {
			continue
		}
		kept = append(kept, src)
	}
	if len(kept) == 0 {
		return nil, ErrNoSources
	}
	return kept, nil
}

// foldName reduces a source name to its lower-case alphanumeric characters.
func foldName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}
