package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldRecordID   = "record_id"
	FieldRecords    = "records"
	FieldPhone      = "phone"
	FieldProduct    = "product"
	FieldAmount     = "amount_cents"
	FieldBonusRate  = "bonus_rate_percent"
	FieldRevision   = "revision"
	FieldBackend    = "backend"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
)

// Components defines standard component names.
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentLedger = "ledger"
	ComponentStore  = "store"
	ComponentAMQP   = "amqp"
	ComponentMirror = "mirror"
	ComponentExport = "export"
	ComponentCLI    = "cli"
)
