package token

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount is a token amount on the wire. JSON carries it as a base-10
// string, keeping the encoding independent of the balance width.
type Amount uint64

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(a), 10))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a base-10 string: %w", err)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("bad amount %q: %w", s, err)
	}
	*a = Amount(v)
	return nil
}
