package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"

	// Build fields.
	FieldEntry    = "entry"
	FieldModules  = "modules"
	FieldWarnings = "warnings"
	FieldDuration = "duration"
	FieldResolver = "resolver"

	// Watch fields.
	FieldEvent    = "event"
	FieldDebounce = "debounce"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
