package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// ExportFilePerm is the permission for exported data files.
	ExportFilePerm = 0644
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as credential probes.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are disabled unless explicitly configured.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Page sizes requested on the first page of each list endpoint.
const (
	// AccountsPageSize is the page size for account listings.
	AccountsPageSize = 5

	// ServicesPageSize is the page size for service listings.
	ServicesPageSize = 20

	// StandardPageSize is the common page size for API responses.
	StandardPageSize = 50

	// LogsPageSize is the page size for Serverless log listings.
	LogsPageSize = 500
)

// Bulk operations.
const (
	// DefaultBulkInterval is the pause between two steps of a bulk operation.
	DefaultBulkInterval = 1 * time.Second
)

// HTTP status codes commonly used.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusMultipleChoices is the first status outside the success range.
	HTTPStatusMultipleChoices = 300

	// HTTPStatusNotFound represents a missing resource.
	HTTPStatusNotFound = 404
)

// Validation and limits.
const (
	// MinimumArgumentCount is the minimum number of command line arguments
	// for commands that take a key and a value.
	MinimumArgumentCount = 2

	// StringTruncationLimit is used when truncating long values in tables.
	StringTruncationLimit = 60
)

// UI and display constants.
const (
	// CheckMarkSymbol is used to indicate current/active items.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Configuration names.
const (
	// AppName names the CLI, its config directory and environment prefix.
	AppName = "twilly"

	// ConfigDirName is the directory under the user's home holding the config.
	ConfigDirName = ".twilly"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// EnvPrefix prefixes every environment variable read by the CLI.
	EnvPrefix = "TWILLY"

	// DefaultProfile is the profile used when none is named.
	DefaultProfile = "default"

	// DefaultUserAgent is sent when no other User-Agent is configured.
	DefaultUserAgent = "twilly-go"
)
