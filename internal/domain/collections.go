package domain

// Collection names preserved from the original deployment, including the
// capitalized Tramites.
const (
	CollectionUsers          = "users"
	CollectionSessions       = "sessions"
	CollectionStaff          = "funcionarios"
	CollectionProcedureTypes = "tipo-tramites"
	CollectionProcedures     = "Tramites"
	CollectionPasswordResets = "password-resets"
)
