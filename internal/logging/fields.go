package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType names the kind of event a record describes (e.g. movie_added).
	FieldEventType = "event_type"
	// FieldErrorHint tells the reader what to do about a failure.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldTitle is the movie title an operation acted on.
	FieldTitle = "title"
	// FieldBackend is the storage format serving the catalog.
	FieldBackend = "backend"
	// FieldPath is a filesystem path.
	FieldPath = "path"
	// FieldSessionID is the standardized structured logging key for per-invocation session identifiers.
	FieldSessionID = "session_id"
)
