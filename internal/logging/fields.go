package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldInput      = "input"
	FieldOutput     = "output"

	// Run options.
	FieldFlavor = "flavor"
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesInvalid    = "files_invalid"
	FieldFilesFixed      = "files_fixed"
	FieldFindings        = "findings"
	FieldResidual        = "residual"
	FieldBytes           = "bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule     = "rule"
	FieldSeverity = "severity"
)
