package epidtypes

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexBytes is a JSON-friendly byte slice, grounded on the teacher repo's
// types/hex2bytes.go HexBytes helper and generalized for any wire record
// this package needs to print or load from a fixture file.
type HexBytes []byte

func (b HexBytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *HexBytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("epidtypes: invalid hex string %q", data)
	}
	str := strings.TrimPrefix(string(data[1:len(data)-1]), "0x")
	bz, err := hex.DecodeString(str)
	if err != nil {
		return fmt.Errorf("epidtypes: decode hex: %w", err)
	}
	*b = bz
	return nil
}
