package interfaces

// Repository defines the interface for the transient state store
type Repository interface {
	Session() SessionRepository
}
