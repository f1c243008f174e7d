package bedrock

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// Outcome routes control flow after a generation failure.
type Outcome int

const (
	// Fatal means the failure is unexpected and must abort the run.
	Fatal Outcome = iota
	// Fallback means the failure is a known recoverable condition and the
	// deterministic path should take over.
	Fallback
)

// Classification tags an Outcome with the originating condition name.
type Classification struct {
	Outcome   Outcome
	Condition string
}

// recoverableConditions is the closed set of generation-call conditions that
// degrade gracefully: throttling, token quota, access/validation problems
// with the model or region, and transient service faults. Everything else
// is fatal.
var recoverableConditions = []string{
	"ThrottlingException",
	"TooManyRequestsException",
	"Too many tokens per day",
	"AccessDeniedException",
	"ValidationException",
	"ResourceNotFoundException",
	"ServiceUnavailableException",
	"InternalServerException",
	"ModelErrorException",
	"ModelTimeoutException",
}

// Classify decides whether a failure from the generation call warrants
// falling back to the deterministic path. It is a pure lookup: the
// structured API error code when present, otherwise substring containment of
// a known condition in the error description. Unrecognized failures are
// Fatal.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Outcome: Fatal}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		for _, condition := range recoverableConditions {
			if code == condition {
				return Classification{Outcome: Fallback, Condition: condition}
			}
		}
	}

	msg := err.Error()
	for _, condition := range recoverableConditions {
		if strings.Contains(msg, condition) {
			return Classification{Outcome: Fallback, Condition: condition}
		}
	}

	return Classification{Outcome: Fatal}
}
