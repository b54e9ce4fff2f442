package design

import (
	"strconv"
	"strings"
)

// ColorFingerprint normalizes a CSS color for deduplication.
func ColorFingerprint(c string) string {
	return strings.ToLower(strings.Join(strings.Fields(c), ""))
}

// IsTransparent reports whether c is a fully transparent color sentinel.
func IsTransparent(c string) bool {
	fp := ColorFingerprint(c)
	if fp == "" || fp == "transparent" {
		return true
	}

	for _, fn := range []string{"rgba(", "hsla(", "rgb(", "hsl("} {
		if !strings.HasPrefix(fp, fn) || !strings.HasSuffix(fp, ")") {
			continue
		}
		args := fp[len(fn) : len(fp)-1]
		// "rgb(0 0 0 / 0)" form
		if i := strings.LastIndex(args, "/"); i >= 0 {
			return isZero(args[i+1:])
		}
		parts := strings.Split(args, ",")
		if len(parts) == 4 {
			return isZero(parts[3])
		}
		return false
	}
	return false
}

func isZero(alpha string) bool {
	alpha = strings.TrimSuffix(alpha, "%")
	v, err := strconv.ParseFloat(alpha, 64)
	return err == nil && v == 0
}
