package repository

import "contactcenter_backend/internal/leads/domain"

const selectLeads = `
		SELECT
			idinterno,
			COALESCE(medio, ''),
			COALESCE(txtnombreapellid, ''),
			COALESCE(emlmail, ''),
			COALESCE(teltelefono, ''),
			COALESCE(base, ''),
			COALESCE(fecha_a_utilizar, ''),
			COALESCE(fecha_ult_gestion, ''),
			COALESCE(programa_interes, ''),
			COALESCE(resultado_gestion, ''),
			COALESCE(toques, ''),
			COALESCE(ultima_subcategoria, '')
		FROM dim_contactos`

const selectEvents = `
		SELECT
			f.dedup_key,
			f.idinterno,
			f.fecha,
			COALESCE(f.usuario, ''),
			COALESCE(f.idventa, ''),
			COALESCE(b.descripcion, '')
		FROM fact_contactos f
		LEFT JOIN dim_bases b ON b.iddatabase::text = f.iddatabase`

// leadsQuery builds the lead select for filter. The base is always bound
// as a parameter.
func leadsQuery(filter domain.Filter) (string, []any) {
	if filter.SourceBase == "" {
		return selectLeads, nil
	}
	return selectLeads + `
		WHERE base = $1`, []any{filter.SourceBase}
}

func eventsQuery(filter domain.Filter) (string, []any) {
	if filter.SourceBase == "" {
		return selectEvents, nil
	}
	return selectEvents + `
		WHERE b.descripcion = $1`, []any{filter.SourceBase}
}
