package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Details lleva el detalle por línea en
// rechazos por stock insuficiente (renderizable como "hay N, pide M").
type ErrorResponse struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []StockShortageDetail `json:"details,omitempty"`
}

// StockShortageDetail una línea rechazada por stock insuficiente.
type StockShortageDetail struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Available   int64  `json:"available"`
	Requested   int64  `json:"requested"`
}
