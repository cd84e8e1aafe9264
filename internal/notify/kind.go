package notify

import "fmt"

// Kind is the severity of a notification banner
type Kind int

const (
	// KindInfo is used for server-initiated messages
	KindInfo Kind = iota
	// KindSuccess confirms a completed operation
	KindSuccess
	// KindError reports a failed operation
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// ParseKind maps the wire names used by push events to a Kind.
// "danger" is accepted as an alias of "error".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "success":
		return KindSuccess, nil
	case "error", "danger":
		return KindError, nil
	case "info", "":
		return KindInfo, nil
	}
	return KindInfo, fmt.Errorf("unknown notification kind %q", s)
}
