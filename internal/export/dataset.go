package export

import (
	"strconv"
	"strings"

	"github.com/spec-kit/tramites-portal/internal/domain"
)

// Dataset tags the exportable collections. The set is closed; every tag has
// an entry in the schema table below and unknown tags degrade to an empty
// document instead of failing.
type Dataset string

const (
	DatasetUsuarios     Dataset = "usuarios"
	DatasetSesiones     Dataset = "sesiones"
	DatasetFuncionarios Dataset = "funcionarios"
	DatasetTiposTramite Dataset = "tipos-tramite"
	DatasetTramites     Dataset = "tramites"
)

const filteredSuffix = "-filtrados"

// Filtered returns the tag for the filtered variant of d.
func (d Dataset) Filtered() Dataset {
	if strings.HasSuffix(string(d), filteredSuffix) {
		return d
	}
	return Dataset(string(d) + filteredSuffix)
}

// base strips the filtered suffix for schema lookup.
func (d Dataset) base() Dataset {
	return Dataset(strings.TrimSuffix(string(d), filteredSuffix))
}

// Schema describes one exportable dataset: the report title, the fixed
// column layout and the typed row mapper.
type Schema struct {
	Title     string
	Headers   []string
	ColWidths []float64
	mapRows   func(data any) ([][]string, bool)
}

var schemas = map[Dataset]Schema{
	DatasetUsuarios: {
		Title:     "Usuarios",
		Headers:   []string{"Nombre", "Correo", "Rol", "Proveedores", "En línea", "Último acceso", "Última salida"},
		ColWidths: []float64{24, 30, 12, 22, 10, 22, 22},
		mapRows:   usuarioRows,
	},
	DatasetSesiones: {
		Title:     "Sesiones",
		Headers:   []string{"Usuario", "Correo", "Proveedor", "Inicio de sesión", "Cierre de sesión", "Duración (seg)", "Estado"},
		ColWidths: []float64{24, 30, 14, 22, 22, 14, 12},
		mapRows:   sesionRows,
	},
	DatasetFuncionarios: {
		Title:     "Funcionarios",
		Headers:   []string{"Nombre Completo", "Apellido Completo", "Correo", "Teléfono", "Cargo", "Estado", "Fecha Creación", "Fecha Actualización"},
		ColWidths: []float64{22, 22, 30, 14, 18, 10, 22, 22},
		mapRows:   funcionarioRows,
	},
	DatasetTiposTramite: {
		Title:     "Tipos de Trámite",
		Headers:   []string{"Nombre", "Estado", "Fecha Creación", "Última Actualización"},
		ColWidths: []float64{32, 10, 22, 22},
		mapRows:   tipoTramiteRows,
	},
	DatasetTramites: {
		Title:     "Trámites",
		Headers:   []string{"Solicitante", "Tipo", "Departamento", "Correo", "Teléfono", "Descripción", "Estado", "Etapa", "Fecha Creado", "Fecha Límite"},
		ColWidths: []float64{22, 18, 18, 26, 14, 34, 12, 8, 22, 22},
		mapRows:   tramiteRows,
	},
}

// Resolve looks up the schema for a dataset tag and maps the rows. Unknown
// tags return an explicit empty schema so callers degrade to an empty
// document rather than failing.
func Resolve(d Dataset, data any) (Schema, [][]string, bool) {
	schema, ok := schemas[d.base()]
	if !ok {
		return Schema{Title: string(d)}, nil, false
	}
	if strings.HasSuffix(string(d), filteredSuffix) {
		schema.Title += " (filtrados)"
	}
	rows, _ := schema.mapRows(data)
	return schema, rows, true
}

func usuarioRows(data any) ([][]string, bool) {
	users, ok := data.([]domain.User)
	if !ok {
		return nil, false
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			orPlaceholder(u.DisplayName, "Sin nombre"),
			orPlaceholder(u.Email, "N/A"),
			capitalize(string(u.Role)),
			strings.Join(u.Providers, ", "),
			siNo(u.IsOnline),
			formatTime(u.LastLogin),
			formatTime(u.LastLogout),
		})
	}
	return rows, true
}

func sesionRows(data any) ([][]string, bool) {
	sessions, ok := data.([]domain.Session)
	if !ok {
		return nil, false
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		logout := "N/A"
		if s.LogoutTime != nil {
			logout = formatTime(*s.LogoutTime)
		}
		duration := "N/A"
		if s.DurationSeconds != nil {
			duration = strconv.FormatInt(*s.DurationSeconds, 10)
		}
		estado := "Finalizada"
		if s.IsActive {
			estado = "Activa"
		}
		rows = append(rows, []string{
			orPlaceholder(s.DisplayName, "Sin nombre"),
			orPlaceholder(s.Email, "N/A"),
			orPlaceholder(s.Provider, "N/A"),
			formatTime(s.LoginTime),
			logout,
			duration,
			estado,
		})
	}
	return rows, true
}

func funcionarioRows(data any) ([][]string, bool) {
	staff, ok := data.([]domain.Staff)
	if !ok {
		return nil, false
	}
	rows := make([][]string, 0, len(staff))
	for _, f := range staff {
		rows = append(rows, []string{
			orPlaceholder(f.NombreCompleto, "Sin nombre"),
			orPlaceholder(f.ApellidoCompleto, ""),
			orPlaceholder(f.Email, "N/A"),
			orPlaceholder(f.Telefono, "N/A"),
			orPlaceholder(f.Cargo, "N/A"),
			estadoLabel(f.Estado),
			formatTime(f.FechaCreacion),
			formatTime(f.FechaActualizado),
		})
	}
	return rows, true
}

func tipoTramiteRows(data any) ([][]string, bool) {
	types, ok := data.([]domain.ProcedureType)
	if !ok {
		return nil, false
	}
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{
			orPlaceholder(t.Nombre, "Sin nombre"),
			estadoLabel(t.Estado),
			formatTime(t.FechaCreacion),
			formatTime(t.UltimaActualizacion),
		})
	}
	return rows, true
}

func tramiteRows(data any) ([][]string, bool) {
	procs, ok := data.([]domain.Procedure)
	if !ok {
		return nil, false
	}
	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, []string{
			orPlaceholder(p.Solicitante, "Sin nombre"),
			orPlaceholder(p.Tipo, "N/A"),
			orPlaceholder(p.Departamento, "N/A"),
			orPlaceholder(p.Email, "N/A"),
			orPlaceholder(p.Telefono, "N/A"),
			p.Descripcion,
			capitalize(string(p.Estado)),
			strconv.Itoa(p.EtapaActual),
			formatTime(p.FechaCreado),
			formatTime(p.FechaLimite),
		})
	}
	return rows, true
}
