package sgp4

// Error is the domain error produced when inputs fail validation: orbital
// elements that cannot seed a propagator (an eccentricity outside [0, 1), a
// non-positive mean motion, a derived quantity that would require the square
// root of a negative number) or an observer location that is out of range.
// It is only ever returned before any numbers are crunched; propagation
// itself does not fail.
type Error struct {
	msg string
}

func newError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}
