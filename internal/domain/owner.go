package domain

// OwnerKind distinguishes authenticated-user carts from guest-session carts.
type OwnerKind string

const (
	OwnerUser    OwnerKind = "user"
	OwnerSession OwnerKind = "session"
)

// OwnerKey identifies whose cart is being read or written. Exactly one kind is
// set; a cart never belongs to both a user and a session.
type OwnerKey struct {
	Kind OwnerKind
	ID   string
}

func UserKey(id string) OwnerKey {
	return OwnerKey{Kind: OwnerUser, ID: id}
}

func SessionKey(id string) OwnerKey {
	return OwnerKey{Kind: OwnerSession, ID: id}
}

func (k OwnerKey) IsZero() bool {
	return k.ID == ""
}
