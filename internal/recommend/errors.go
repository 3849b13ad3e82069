package recommend

import "fmt"

// InputError reports resume text that cannot be analysed.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid resume text: %s", e.Reason)
}
