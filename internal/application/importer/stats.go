package importer

import "math"

// ErrorRecord fila rechazada durante la corrida, con su posición absoluta
// en el archivo (1-based), la fila cruda y el motivo.
type ErrorRecord struct {
	Row    int      `json:"row"`
	Raw    []string `json:"raw"`
	Reason string   `json:"reason"`
}

// Stats acumulado de una corrida de import. Efímero: se crea al inicio,
// se muta tras cada lote y se descarta al terminar. Cada fila termina
// contada exactamente en uno de Added/Updated/Errors.
type Stats struct {
	Total        int           `json:"total"`
	Processed    int           `json:"processed"`
	Added        int           `json:"added"`
	Updated      int           `json:"updated"`
	Errors       int           `json:"errors"`
	NotFound     int           `json:"not_found"` // solo corridas de price override
	Percentage   int           `json:"percentage"`
	ErrorRecords []ErrorRecord `json:"error_records"`
}

// ProgressFunc recibe un snapshot del acumulado después de cada lote.
type ProgressFunc func(Stats)

// ChannelProgress adapta un canal como callback de progreso. El envío es
// bloqueante: el consumidor debe leer hasta que el canal se cierre.
func ChannelProgress(ch chan<- Stats) ProgressFunc {
	return func(s Stats) {
		ch <- s
	}
}

func (s *Stats) addError(row int, raw []string, reason string) {
	s.Errors++
	s.ErrorRecords = append(s.ErrorRecords, ErrorRecord{Row: row, Raw: raw, Reason: reason})
}

// snapshot devuelve una copia del acumulado con el porcentaje calculado
// y los registros de error copiados (el caller puede retenerlos).
func (s *Stats) snapshot() Stats {
	out := *s
	if s.Total > 0 {
		out.Percentage = int(math.Round(float64(s.Processed) / float64(s.Total) * 100))
	}
	out.ErrorRecords = make([]ErrorRecord, len(s.ErrorRecords))
	copy(out.ErrorRecords, s.ErrorRecords)
	return out
}
