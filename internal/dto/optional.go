package dto

import "encoding/json"

// Optional is a tri-state JSON field: absent, present with a value, or
// present as an explicit null. encoding/json only invokes UnmarshalJSON for
// keys present in the payload, so Set stays false for omitted fields. An
// explicit null leaves Valid false with the zero Value.
//
// Partial updates depend on the distinction: an omitted field is left
// untouched, an explicit null clears the stored value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
