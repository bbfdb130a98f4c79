package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldRecordID   = "record_id"
	FieldCategory   = "category"
	FieldWindow     = "window"
	FieldYear       = "year"
	FieldMonth      = "month"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentRecords   = "records"
	ComponentAnalytics = "analytics"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
