package assert

import "github.com/oomph-ac/moveguard/oerror"

// IsTrue panics with an OomphError if ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
