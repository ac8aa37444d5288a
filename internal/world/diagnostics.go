package world

import "fmt"

// DiagnosticKind names a recoverable load or render condition. None of
// these abort the load; they are recorded so callers can ask whether the
// model was built cleanly.
type DiagnosticKind string

const (
	// DiagFieldDecode: a field could not be interpreted as expected and was
	// defaulted.
	DiagFieldDecode DiagnosticKind = "field_decode"
	// DiagHierarchyGap: a province, area or region has no parent mapping.
	DiagHierarchyGap DiagnosticKind = "hierarchy_gap"
	// DiagAssetMismatch: a bitmap pixel color has no definition entry.
	DiagAssetMismatch DiagnosticKind = "asset_mismatch"
)

// Diagnostic is one recorded warning.
type Diagnostic struct {
	Kind    DiagnosticKind `yaml:"kind"`
	Message string         `yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
