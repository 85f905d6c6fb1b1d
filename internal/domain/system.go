package domain

import (
	"encoding/json"
	"fmt"
)

// SystemType is the structural family of a section.
type SystemType string

const (
	SystemSlide           SystemType = "SLIDE"
	SystemBook            SystemType = "BOOK"
	SystemLift            SystemType = "LIFT"
	SystemCornerStructure SystemType = "CORNER-STRUCTURE"
	SystemDoor            SystemType = "DOOR"
)

func ParseSystemType(s string) (SystemType, error) {
	switch t := SystemType(s); t {
	case SystemSlide, SystemBook, SystemLift, SystemCornerStructure, SystemDoor:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown system %q", ErrValidationConflict, s)
	}
}

func (t *SystemType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseSystemType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
