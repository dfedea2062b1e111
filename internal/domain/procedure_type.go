package domain

import "time"

// ProcedureType is an admin-managed catalog entry for trámite categories.
// Dates are stored as timestamps like every other entity; the upstream
// deployment stored them as locale strings, normalized here.
type ProcedureType struct {
	ID                  string    `bson:"_id"`
	Nombre              string    `bson:"nombre"`
	Estado              bool      `bson:"estado"`
	FechaCreacion       time.Time `bson:"fechaCreacion"`
	UltimaActualizacion time.Time `bson:"ultimaActualizacion"`
}
