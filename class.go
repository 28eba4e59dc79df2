package tagcache

// ExpirationClass partitions the reference index by whether entries carry a
// TTL. Each (tag segment, class) pair owns one reference set; flushing a
// class never touches the other's members.
type ExpirationClass uint8

const (
	// Forever indexes entries written without a TTL.
	Forever ExpirationClass = iota
	// Standard indexes entries written with a TTL.
	Standard
)

// token is the reference-key suffix for the class.
func (c ExpirationClass) token() string {
	if c == Forever {
		return "forever_ref"
	}
	return "standard_ref"
}

func (c ExpirationClass) String() string {
	if c == Forever {
		return "forever"
	}
	return "standard"
}
