package ir

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON rejects any symbol kind outside the fixed four-variant set.
// A newer adapter emitting a kind this build doesn't know about is a schema
// mismatch, not something to silently downcast to an existing kind.
func (s *Symbol) UnmarshalJSON(data []byte) error {
	type alias Symbol
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if !a.Kind.valid() {
		return fmt.Errorf("ir: unknown symbol kind %q for symbol %q", a.Kind, a.ID)
	}
	*s = Symbol(a)
	return nil
}
