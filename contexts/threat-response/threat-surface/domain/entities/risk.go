package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RiskLevel orders threat sightings from background noise to emergency.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

var riskNames = map[RiskLevel]string{
	RiskLow:      "low",
	RiskMedium:   "medium",
	RiskHigh:     "high",
	RiskCritical: "critical",
}

func (r RiskLevel) String() string {
	if name, ok := riskNames[r]; ok {
		return name
	}
	return fmt.Sprintf("risk(%d)", int(r))
}

// Valid reports whether r is one of the defined levels.
func (r RiskLevel) Valid() bool {
	_, ok := riskNames[r]
	return ok
}

// Elevated reports whether the sighting demands automatic escalation.
func (r RiskLevel) Elevated() bool {
	return r >= RiskHigh
}

// ParseRiskLevel resolves a case-insensitive level name.
func ParseRiskLevel(name string) (RiskLevel, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for level, label := range riskNames {
		if label == needle {
			return level, true
		}
	}
	return 0, false
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown risk level %d", int(r))
	}
	return json.Marshal(r.String())
}

func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	level, ok := ParseRiskLevel(name)
	if !ok {
		return fmt.Errorf("unknown risk level %q", name)
	}
	*r = level
	return nil
}
