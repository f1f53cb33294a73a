package utils

import (
	"fmt"
	"strings"
)

var fileSizeUnits = []string{"b", "kb", "mb", "gb", "tb"}

// FormatFileSize converts a byte length into a short lower-case unit string such as "12kb".
func FormatFileSize(byteCount int) string {
	if byteCount <= 0 {
		return "0b"
	}
	scaledValue := float64(byteCount)
	unitIndex := 0
	for scaledValue >= 1024 && unitIndex < len(fileSizeUnits)-1 {
		scaledValue /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d%s", byteCount, fileSizeUnits[0])
	}
	if scaledValue < 10 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0") + fileSizeUnits[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", scaledValue, fileSizeUnits[unitIndex])
}
