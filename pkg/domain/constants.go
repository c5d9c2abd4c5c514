package domain

// EndTarget is the reserved target name meaning "terminate the sequence here".
// It never resolves to a node ID, even when a node is literally named "END".
const EndTarget = "END"

// FormatVersion is written to Project.SavedWithVersion by the authoring DSL.
const FormatVersion = 1.7
