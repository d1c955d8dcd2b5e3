package logging

// Field names shared by all log statements.
const (
	FieldRunID       = "run_id"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldRow         = "row"
	FieldFieldCount  = "field_count"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldSource      = "source"
	FieldAttempt     = "attempt"
	FieldMaxAttempts = "max_attempts"
	FieldDelay       = "delay"
	FieldModel       = "model"
	FieldCount       = "count"
	FieldDuration    = "duration_ms"
)
