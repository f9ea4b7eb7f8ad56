package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Error   string   `json:"error" example:"Invalid item ID format"`
	Details []string `json:"details,omitempty"`
}

// UnavailableResponse é o corpo devolvido pelo gate quando o banco está fora.
type UnavailableResponse struct {
	Error    string `json:"error" example:"Database unavailable"`
	Database string `json:"database" example:"disconnected"`
}

// MessageResponse é usado em confirmações simples (ex: exclusão).
type MessageResponse struct {
	Message string `json:"message" example:"Item deleted successfully"`
}
