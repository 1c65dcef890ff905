package dto

// ImportErrorRecord fila rechazada durante un import.
type ImportErrorRecord struct {
	Row    int      `json:"row"`
	Raw    []string `json:"raw"`
	Reason string   `json:"reason"`
}

// ImportResultResponse resumen final de una corrida de import.
type ImportResultResponse struct {
	Total        int                 `json:"total"`
	Processed    int                 `json:"processed"`
	Added        int                 `json:"added"`
	Updated      int                 `json:"updated"`
	Errors       int                 `json:"errors"`
	NotFound     int                 `json:"not_found,omitempty"`
	Percentage   int                 `json:"percentage"`
	ErrorRecords []ImportErrorRecord `json:"error_records,omitempty"`
}
