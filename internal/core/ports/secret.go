package ports

// SecretComparer decides whether a supplied secret matches the one stored on a
// directory record.
type SecretComparer interface {
	Matches(stored, supplied string) bool
}
