package dto

// FuncionarioRequest is the admin create/edit modal payload.
type FuncionarioRequest struct {
	NombreCompleto   string `json:"nombre_completo"`
	ApellidoCompleto string `json:"apellido_completo"`
	Email            string `json:"email"`
	Telefono         string `json:"telefono"`
	Cargo            string `json:"cargo"`
	Estado           bool   `json:"estado"`
}

// TipoTramiteRequest is the catalog create/edit payload.
type TipoTramiteRequest struct {
	Nombre string `json:"nombre"`
	Estado bool   `json:"estado"`
}
