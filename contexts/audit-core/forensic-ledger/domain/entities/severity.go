package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity orders forensic records from routine to existential.
// The ordering is load-bearing: automated responders compare severities.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
	SeverityEmergency
)

var severityNames = map[Severity]string{
	SeverityInfo:      "info",
	SeverityWarning:   "warning",
	SeverityError:     "error",
	SeverityCritical:  "critical",
	SeverityEmergency: "emergency",
}

// String returns the canonical lower-case name.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	_, ok := severityNames[s]
	return ok
}

// AtLeast reports whether s is equal to or more severe than other.
func (s Severity) AtLeast(other Severity) bool {
	return s >= other
}

// ParseSeverity maps a canonical name back to its Severity.
func ParseSeverity(value string) (Severity, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for severity, name := range severityNames {
		if name == normalized {
			return severity, true
		}
	}
	return SeverityInfo, false
}

// MarshalJSON encodes the severity by name so the audit contract stays
// readable for downstream forensic tooling.
func (s Severity) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal severity: unknown value %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the canonical name form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseSeverity(name)
	if !ok {
		return fmt.Errorf("unmarshal severity: unknown name %q", name)
	}
	*s = parsed
	return nil
}
