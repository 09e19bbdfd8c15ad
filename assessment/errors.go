package assessment

import "fmt"

// UnknownClassError signals a configuration mismatch: an identifier from a
// detected feature has no entry in the loaded tables. Estimation over such a
// record must abort rather than emit a silent zero.
type UnknownClassError struct {
	Kind string
	Name string
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("unknown %s class %q", e.Kind, e.Name)
}
