package schedule

const (
	LogMsgScheduleImported = "Schedule imported"

	ErrMsgInvalidSchedule     = "invalid schedule"
	ErrMsgFailedToParse       = "failed to parse schedule"
	ErrMsgFailedToImportMatch = "failed to import match"
	ErrMsgFailedToImportExtra = "failed to import extra question"
)
