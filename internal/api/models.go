package api

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/jobboard-api/internal/api/shared"
	"github.com/phrazzld/jobboard-api/internal/domain"
)

// decimalLiteral matches the decimal forms accepted for numeric string fields.
var decimalLiteral = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// NumericField is a job field sent either as a JSON number or as a string
// holding a number. Valid reports whether the value could be read as a
// finite number; an absent field is not valid.
type NumericField struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
// null reads as 0. Strings are trimmed, an empty string reads as 0, and
// decimal, exponent, 0x, 0o and 0b literals are accepted. Other JSON types,
// Infinity and NaN leave the field invalid without failing the decode.
func (n *NumericField) UnmarshalJSON(data []byte) error {
	*n = NumericField{}

	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		n.Valid = true
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.Value, n.Valid = parseNumericString(s)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		f, err := strconv.ParseFloat(string(data), 64)
		if err == nil && !math.IsInf(f, 0) {
			n.Value, n.Valid = f, true
		}
	}
	return nil
}

// parseNumericString reads s the way a loosely typed client would coerce it.
func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			digits := s[2:]
			if strings.ContainsAny(digits, "_+-") {
				return 0, false
			}
			v, err := strconv.ParseUint(digits, base, 64)
			if err != nil {
				return 0, false
			}
			return float64(v), true
		}
	}

	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// numericFieldValue lets validator tags apply to the parsed value.
func numericFieldValue(v reflect.Value) interface{} {
	if n, ok := v.Interface().(NumericField); ok {
		return n.Value
	}
	return nil
}

func init() {
	shared.RegisterCustomType(numericFieldValue, NumericField{})
}

// CreateJobRequest represents the request body for posting a job.
// Every field is required; a zero salary or position counts as missing.
type CreateJobRequest struct {
	Title        string       `json:"title"        validate:"required"`
	Description  string       `json:"description"  validate:"required"`
	Requirements string       `json:"requirements" validate:"required"`
	Salary       NumericField `json:"salary"       validate:"required"`
	Location     string       `json:"location"     validate:"required"`
	JobType      string       `json:"jobType"      validate:"required"`
	Experience   string       `json:"experience"   validate:"required"`
	Position     NumericField `json:"position"     validate:"required"`
	CompanyID    string       `json:"companyId"    validate:"required"`
}

// NumbersValid reports whether salary and position both hold numbers.
func (r CreateJobRequest) NumbersValid() bool {
	return r.Salary.Valid && r.Position.Valid
}

// toParams converts the request into domain parameters.
// It fails if companyId is not a valid UUID.
func (r CreateJobRequest) toParams() (domain.JobParams, error) {
	companyID, err := uuid.Parse(r.CompanyID)
	if err != nil {
		return domain.JobParams{}, domain.NewValidationError("companyId", "has invalid format", domain.ErrInvalidID)
	}

	return domain.JobParams{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Salary:       r.Salary.Value,
		Location:     r.Location,
		JobType:      r.JobType,
		Experience:   r.Experience,
		Position:     r.Position.Value,
		CompanyID:    companyID,
	}, nil
}

// CreateJobResponse is returned when a job has been posted.
type CreateJobResponse struct {
	Message string      `json:"message"`
	Job     *domain.Job `json:"job"`
	Success bool        `json:"success"`
}

// JobResponse wraps a single job.
type JobResponse struct {
	Job     *domain.Job `json:"job"`
	Success bool        `json:"success"`
}

// JobsResponse wraps a list of jobs; Jobs is never null.
type JobsResponse struct {
	Jobs    []*domain.Job `json:"jobs"`
	Success bool          `json:"success"`
}

// nonNil returns jobs, or an empty slice if jobs is nil.
func nonNil(jobs []*domain.Job) []*domain.Job {
	if jobs == nil {
		return []*domain.Job{}
	}
	return jobs
}
