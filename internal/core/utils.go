package core

import (
	"encoding/json"
	"fmt"

	"github.com/qualitywatch/gate-report/internal/types"
)

// FindGate returns the gate with matching ID, or nil if not found.
func FindGate(gates []types.QualityGate, id string) *types.QualityGate {
	for i := range gates {
		if gates[i].ID == id {
			return &gates[i]
		}
	}
	return nil
}

// FindGateByName returns the gate with matching name, or nil if not found.
func FindGateByName(gates []types.QualityGate, name string) *types.QualityGate {
	for i := range gates {
		if gates[i].Name == name {
			return &gates[i]
		}
	}
	return nil
}

// GateConditionCount parses a gate's stored definition and returns how many
// conditions it declares. Returns 0 when the definition is missing or does
// not parse; the count is display sugar, not load-bearing.
func GateConditionCount(gate *types.QualityGate) int {
	if gate == nil || gate.Conf == "" {
		return 0
	}
	var def struct {
		Conditions []json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal([]byte(gate.Conf), &def); err != nil {
		return 0
	}
	return len(def.Conditions)
}

// Pluralize returns the singular or plural form based on count.
// Examples:
//
//	Pluralize(1, "condition", "conditions") => "1 condition"
//	Pluralize(2, "condition", "conditions") => "2 conditions"
//	Pluralize(0, "condition", "conditions") => "0 conditions"
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
