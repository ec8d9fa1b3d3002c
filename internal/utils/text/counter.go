// Package text holds small string helpers shared by the summarizers.
package text

import "unicode/utf8"

// CountRunes returns the number of Unicode code points in s. Summary
// lengths are reported in characters, not bytes.
//
//	CountRunes("hello")  // 5
//	CountRunes("héllo")  // 5
//	CountRunes("")       // 0
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}
