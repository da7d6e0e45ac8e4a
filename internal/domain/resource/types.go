package resource

// Kind tags what is being reserved.
type Kind string

const (
	KindVehicle  Kind = "vehicle"
	KindMechanic Kind = "mechanic"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindVehicle, KindMechanic:
		return true
	default:
		return false
	}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}
