package orchestration

import "github.com/agbru/harmcalc/internal/harmonic"

// GetSummersToRun determines which engines should be executed for the given
// algorithm selection. Returns engines in alphabetically sorted key order
// for consistent, reproducible behavior.
//
// Parameters:
//   - algo: The selected algorithm key, or "all" for a comparison run.
//   - factory: The summer factory to retrieve implementations from.
//
// Returns:
//   - []harmonic.Summer: A slice of engines to execute, nil if the key is unknown.
func GetSummersToRun(algo string, factory harmonic.SummerFactory) []harmonic.Summer {
	if algo == "all" {
		keys := factory.List() // List() returns sorted keys
		summers := make([]harmonic.Summer, 0, len(keys))
		for _, k := range keys {
			if summer, err := factory.Get(k); err == nil {
				summers = append(summers, summer)
			}
		}
		return summers
	}
	if summer, err := factory.Get(algo); err == nil {
		return []harmonic.Summer{summer}
	}
	return nil
}
