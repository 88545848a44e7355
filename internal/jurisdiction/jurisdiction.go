// Package jurisdiction defines the taxing authorities the engine supports.
package jurisdiction

import (
	"errors"
	"strings"
)

// Official jurisdiction codes (v1).
// These codes are ENGINE-CONSTANTS.
// Do NOT rename or repurpose once used in stored calculation results.
const (
	CodeTexas    = "US_TX"
	CodeOklahoma = "US_OK"
	CodeGeorgia  = "US_GA"
)

var (
	ErrUnsupportedJurisdiction = errors.New("unsupported_jurisdiction")
	ErrUnknownState            = errors.New("unknown_state")
)

var stateCodes = map[string]string{
	"TX": CodeTexas,
	"OK": CodeOklahoma,
	"GA": CodeGeorgia,
}

// Resolve maps a location's state abbreviation to a jurisdiction code.
// County never changes the jurisdiction, only the form layout.
func Resolve(state string) (string, error) {
	code, ok := stateCodes[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return "", ErrUnknownState
	}
	return code, nil
}

// Supported reports whether the code names a jurisdiction this engine
// carries schedule tables and form layouts for.
func Supported(code string) bool {
	switch code {
	case CodeTexas, CodeOklahoma, CodeGeorgia:
		return true
	default:
		return false
	}
}
