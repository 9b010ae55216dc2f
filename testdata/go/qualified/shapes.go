// Fixture exercising Go qualification shapes: a type, a method with a
// receiver, and a free function.
package shapes

// Sample is a named type with one method.
type Sample struct {
	Title string
}

// Label returns the sample title.
func (s *Sample) Label() string {
	return s.Title
}

// Describe is a package-level free function.
func Describe(s Sample) string {
	return s.Title
}
