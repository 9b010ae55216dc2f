// Package account is a fixture package: a value type with a method, giving
// the corpus the qualified name Account.Sum to look for.
package account

// Account represents an account with a numeric identifier
type Account struct {
	ID int
}

// Sum returns the sum of two integers. The receiver takes no part in the
// arithmetic; the method exists for its qualified-name shape.
func (a Account) Sum(x, y int) int {
	return x + y
}
