package matching

// Score returns how many normalized keywords the two lists share.
// The result is symmetric and never exceeds the smaller set's size.
func Score(subject, candidate []string) int {
	return Normalize(subject).Intersect(Normalize(candidate)).Len()
}

// Shared returns the sorted normalized keywords the two lists have in common
func Shared(subject, candidate []string) []string {
	return Normalize(subject).Intersect(Normalize(candidate)).Keywords()
}
