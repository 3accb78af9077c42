package types

import (
	"fmt"
	"strings"
)

// Severity is the level at which a rule reports its findings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityOff:
		return "OFF"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts the spellings used in configuration files
// ("error", "warning", "warn", "off"), case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "off":
		return SeverityOff, nil
	}
	return SeverityOff, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Issue represents a lint issue found in an HTML document.
type Issue struct {
	Rule     string   `json:"rule"`
	Filename string   `json:"filename,omitempty"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ConfigRule is the per-rule section of the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
