package ports

// Identity is the decoded token attached to every authenticated request.
// It carries everything the services need for role scoping.
type Identity struct {
	UserID  uint
	Name    string
	Email   string
	Cluster string
	Role    string
}
