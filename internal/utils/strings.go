// Copyright 2025 James D Elliot
// Licensed under the Apache License, Version 2.0
// Originally from: https://github.com/authelia/authelia
// See APACHE-LICENSE.txt for full license text

package utils

import (
	"strings"
)

// IsStringInSlice checks if a single string is in a slice of strings.
func IsStringInSlice(needle string, haystack []string) (inSlice bool) {
	for _, b := range haystack {
		if b == needle {
			return true
		}
	}

	return false
}

// ContainsAnyOf returns the first element of needles that is a substring of s.
func ContainsAnyOf(s string, needles []string) (match string, ok bool) {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return n, true
		}
	}

	return "", false
}

// HasAnyPrefix returns the first element of prefixes that s starts with.
func HasAnyPrefix(s string, prefixes []string) (match string, ok bool) {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return p, true
		}
	}

	return "", false
}

// AppendUnique appends the elements of extra that are not already in base.
func AppendUnique(base []string, extra ...string) []string {
	out := append([]string(nil), base...)
	for _, e := range extra {
		if !IsStringInSlice(e, out) {
			out = append(out, e)
		}
	}

	return out
}
