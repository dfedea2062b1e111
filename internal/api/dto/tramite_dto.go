package dto

import "time"

// TramiteCreateRequest is the "new procedure" form payload.
type TramiteCreateRequest struct {
	Solicitante  string     `json:"solicitante"`
	Tipo         string     `json:"tipo"`
	Departamento string     `json:"departamento"`
	Email        string     `json:"email"`
	Telefono     string     `json:"telefono"`
	Descripcion  string     `json:"descripcion"`
	FechaLimite  *time.Time `json:"fecha_limite,omitempty"`
}

// TramiteReviewRequest advances the staff review.
type TramiteReviewRequest struct {
	Estado string `json:"estado"`
	Etapa  int    `json:"etapa"`
}
