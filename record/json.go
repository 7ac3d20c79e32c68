package record

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the record as an array of [name, value] pairs, e.g.
//
//	[["ID","1"],["NAME","Alice"]]
//
// This is the persisted wire form. Changing it is a breaking-change boundary:
// blobs written with an older form will fail to decode.
func (r Record) MarshalJSON() ([]byte, error) {
	pairs := make([][2]string, len(r))
	for i, f := range r {
		pairs[i] = [2]string{f.Name, f.Value}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes the array-of-pairs form back into an ordered record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var pairs [][]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := make(Record, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return fmt.Errorf("record: pair %d has %d elements, want 2", i, len(p))
		}
		out[i] = Field{Name: p[0], Value: p[1]}
	}
	*r = out
	return nil
}
