package twilio

import (
	"strings"
	"time"
)

// LogTimeLayout is the timestamp format the Serverless logs API accepts.
const LogTimeLayout = "2006-01-02T15:04:05Z"

// ServerlessService is a Functions and Assets service.
type ServerlessService struct {
	SID                string            `json:"sid"                 yaml:"sid"`
	AccountSID         string            `json:"account_sid"         yaml:"account_sid"`
	UniqueName         string            `json:"unique_name"         yaml:"unique_name"`
	FriendlyName       string            `json:"friendly_name"       yaml:"friendly_name"`
	IncludeCredentials bool              `json:"include_credentials" yaml:"include_credentials"`
	UIEditable         bool              `json:"ui_editable"         yaml:"ui_editable"`
	DomainBase         string            `json:"domain_base"         yaml:"domain_base"`
	DateCreated        time.Time         `json:"date_created"        yaml:"date_created"`
	DateUpdated        time.Time         `json:"date_updated"        yaml:"date_updated"`
	URL                string            `json:"url"                 yaml:"url"`
	Links              map[string]string `json:"links"               yaml:"links"`
}

// ServerlessServiceCreateParams describes a new service.
type ServerlessServiceCreateParams struct {
	UniqueName         string `url:"UniqueName"`
	FriendlyName       string `url:"FriendlyName"`
	IncludeCredentials *bool  `url:"IncludeCredentials,omitempty"`
	UIEditable         *bool  `url:"UiEditable,omitempty"`
}

// ServerlessServiceUpdateParams changes a service.
type ServerlessServiceUpdateParams struct {
	FriendlyName       string `url:"FriendlyName,omitempty"`
	IncludeCredentials *bool  `url:"IncludeCredentials,omitempty"`
	UIEditable         *bool  `url:"UiEditable,omitempty"`
}

// ServerlessEnvironment is a deployment target of a service.
type ServerlessEnvironment struct {
	SID          string            `json:"sid"                     yaml:"sid"`
	AccountSID   string            `json:"account_sid"             yaml:"account_sid"`
	ServiceSID   string            `json:"service_sid"             yaml:"service_sid"`
	BuildSID     *string           `json:"build_sid,omitempty"     yaml:"build_sid,omitempty"`
	UniqueName   string            `json:"unique_name"             yaml:"unique_name"`
	DomainSuffix *string           `json:"domain_suffix,omitempty" yaml:"domain_suffix,omitempty"`
	DomainName   string            `json:"domain_name"             yaml:"domain_name"`
	DateCreated  time.Time         `json:"date_created"            yaml:"date_created"`
	DateUpdated  time.Time         `json:"date_updated"            yaml:"date_updated"`
	URL          string            `json:"url"                     yaml:"url"`
	Links        map[string]string `json:"links"                   yaml:"links"`
}

// ServerlessEnvironmentCreateParams describes a new environment.
type ServerlessEnvironmentCreateParams struct {
	UniqueName   string `url:"UniqueName"`
	DomainSuffix string `url:"DomainSuffix,omitempty"`
}

// LogLevel is the severity of a Serverless log line.
type LogLevel string

// Log levels.
const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// ParseLogLevel parses a level case-insensitively.
func ParseLogLevel(s string) (LogLevel, error) {
	for _, level := range []LogLevel{LogLevelInfo, LogLevelWarn, LogLevelError} {
		if strings.EqualFold(s, string(level)) {
			return level, nil
		}
	}

	return "", NewValidationError("unknown log level %q, expected INFO, WARN or ERROR", s)
}

// ServerlessLog is one log line emitted by a function.
type ServerlessLog struct {
	SID            string    `json:"sid"             yaml:"sid"`
	AccountSID     string    `json:"account_sid"     yaml:"account_sid"`
	ServiceSID     string    `json:"service_sid"     yaml:"service_sid"`
	EnvironmentSID string    `json:"environment_sid" yaml:"environment_sid"`
	BuildSID       string    `json:"build_sid"       yaml:"build_sid"`
	DeploymentSID  string    `json:"deployment_sid"  yaml:"deployment_sid"`
	FunctionSID    string    `json:"function_sid"    yaml:"function_sid"`
	RequestSID     string    `json:"request_sid"     yaml:"request_sid"`
	Level          LogLevel  `json:"level"           yaml:"level"`
	Message        string    `json:"message"         yaml:"message"`
	DateCreated    time.Time `json:"date_created"    yaml:"date_created"`
	URL            string    `json:"url"             yaml:"url"`
}

// ServerlessLogListParams filters a log listing. Times are sent in UTC.
type ServerlessLogListParams struct {
	FunctionSID string     `url:"FunctionSid,omitempty"`
	StartDate   *time.Time `layout:"2006-01-02T15:04:05Z" url:"StartDate,omitempty"`
	EndDate     *time.Time `layout:"2006-01-02T15:04:05Z" url:"EndDate,omitempty"`
	PageSize    int        `url:"PageSize,omitempty"`
}

// Validate checks the time range.
func (p *ServerlessLogListParams) Validate() error {
	if p == nil || p.StartDate == nil || p.EndDate == nil {
		return nil
	}

	if p.EndDate.Before(*p.StartDate) {
		return NewValidationError("end date %s is before start date %s",
			p.EndDate.UTC().Format(LogTimeLayout), p.StartDate.UTC().Format(LogTimeLayout))
	}

	return nil
}

// FilterLogsByLevel keeps the logs at one of the given levels. With no
// levels every log is kept.
func FilterLogsByLevel(logs []ServerlessLog, levels ...LogLevel) []ServerlessLog {
	if len(levels) == 0 {
		return logs
	}

	filtered := make([]ServerlessLog, 0, len(logs))

	for _, log := range logs {
		for _, level := range levels {
			if log.Level == level {
				filtered = append(filtered, log)

				break
			}
		}
	}

	return filtered
}
