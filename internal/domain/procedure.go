package domain

import "time"

// ProcedureStatus enumerates lifecycle states for trámites.
type ProcedureStatus string

const (
	ProcedureStatusPendiente  ProcedureStatus = "pendiente"
	ProcedureStatusProcesando ProcedureStatus = "procesando"
	ProcedureStatusCompletado ProcedureStatus = "completado"
	ProcedureStatusRechazado  ProcedureStatus = "rechazado"
)

// Review stages run 1..4 over a fixed timeline.
const (
	ProcedureEtapaMin = 1
	ProcedureEtapaMax = 4
)

// Procedure is an administrative request (trámite) filed by a citizen.
// FechaCreado is immutable after creation; staff review mutates Estado,
// EtapaActual and FechaActualizado.
type Procedure struct {
	ID               string          `bson:"_id"`
	Solicitante      string          `bson:"solicitante"`
	Tipo             string          `bson:"tipo"`
	Departamento     string          `bson:"departamento"`
	Email            string          `bson:"email"`
	Telefono         string          `bson:"telefono"`
	Descripcion      string          `bson:"descripcion"`
	Estado           ProcedureStatus `bson:"estado"`
	EtapaActual      int             `bson:"etapaActual"`
	FechaCreado      time.Time       `bson:"fechaCreado"`
	FechaActualizado time.Time       `bson:"fechaActualizado"`
	FechaLimite      time.Time       `bson:"fechaLimite,omitempty"`
	UserID           string          `bson:"userId"`
}

// ValidStatus reports whether s is a known procedure status.
func ValidStatus(s ProcedureStatus) bool {
	switch s {
	case ProcedureStatusPendiente, ProcedureStatusProcesando, ProcedureStatusCompletado, ProcedureStatusRechazado:
		return true
	}
	return false
}
