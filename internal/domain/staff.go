package domain

import "time"

// Staff models a municipal staff member (funcionario) record.
type Staff struct {
	ID               string    `bson:"_id"`
	NombreCompleto   string    `bson:"nombreCompleto"`
	ApellidoCompleto string    `bson:"apellidoCompleto"`
	Email            string    `bson:"email"`
	Telefono         string    `bson:"telefono"`
	Cargo            string    `bson:"cargo"`
	Estado           bool      `bson:"estado"`
	FechaCreacion    time.Time `bson:"fechaCreacion"`
	FechaActualizado time.Time `bson:"fechaActualizado"`
}
