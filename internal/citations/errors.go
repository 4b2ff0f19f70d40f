package citations

import "fmt"

// InvalidInputError rejects the whole extraction call. Nothing partial is
// produced when it is returned.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid extraction input: %s", e.Reason)
}

// AliasError marks a brand name that could not be expanded into search
// aliases. The brand is skipped; the remaining brands are still processed.
type AliasError struct {
	Brand  string
	Reason string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("cannot expand aliases for %q: %s", e.Brand, e.Reason)
}
