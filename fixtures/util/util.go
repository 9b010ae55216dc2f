// Package util is a fixture package: a single free function, giving the
// corpus the qualified name util.ToValue to look for.
package util

// ToValue maps a boolean to an integer: 1 for true, 0 for false
func ToValue(include bool) int {
	if include {
		return 1
	}
	return 0
}
