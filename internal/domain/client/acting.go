package client

import "fmt"

type Kind int

const (
	KindNone Kind = iota
	KindRegistered
	KindGuest
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRegistered:
		return "registered"
	case KindGuest:
		return "guest"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Acting is the identity a booking is submitted for: a registered session
// client, a quick-registered guest, or nobody yet.
type Acting struct {
	kind Kind
	id   string
}

func NoClient() Acting {
	return Acting{kind: KindNone}
}

func RegisteredClient(id string) Acting {
	if id == "" {
		return NoClient()
	}
	return Acting{kind: KindRegistered, id: id}
}

func GuestClient(id string) Acting {
	if id == "" {
		return NoClient()
	}
	return Acting{kind: KindGuest, id: id}
}

func (a Acting) Kind() Kind { return a.kind }
func (a Acting) ID() string { return a.id }

func (a Acting) HasIdentifier() bool {
	switch a.kind {
	case KindRegistered, KindGuest:
		return a.id != ""
	case KindNone:
		return false
	default:
		return false
	}
}

func (a Acting) String() string {
	if a.kind == KindNone {
		return "none"
	}
	return a.kind.String() + ":" + a.id
}
