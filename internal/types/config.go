package types

// RunMode is the deployment mode of the application
type RunMode string

const (
	ModeLocal RunMode = "local"
	ModeProd  RunMode = "prod"
)

// LogLevel is the logging level of the application
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// AuthProvider identifies the identity backend validating sessions
type AuthProvider string

const (
	AuthProviderInvoicely AuthProvider = "invoicely"
	AuthProviderSupabase  AuthProvider = "supabase"
)

// StoreDriver selects the persistence backend at composition time
type StoreDriver string

const (
	StoreDriverMemory   StoreDriver = "memory"
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverDynamoDB StoreDriver = "dynamodb"
)
