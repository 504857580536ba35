package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUser        = "user"
	FieldSheet       = "sheet"
	FieldRows        = "rows"
	FieldComputation = "computation"
	FieldContentHash = "content_hash"
	FieldCacheKey    = "cache_key"
	FieldCacheHit    = "cache_hit"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentMetrics   = "metrics"
	ComponentQuality   = "quality"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentDashboard = "dashboard"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpRefresh  = "refresh"
	OpSnapshot = "snapshot"
	OpCompute  = "compute"
	OpValidate = "validate"
	OpParse    = "parse"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
