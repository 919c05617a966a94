package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// Para rejeições do motor de ajuste, Category carrega o código da rejeição
// (ex.: NEGATIVE_RESULTING_STOCK) para a UI exibir a mensagem no campo.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"422"`
	Category string `json:"category" example:"NEGATIVE_RESULTING_STOCK"`
	Message  string `json:"message" example:"Ajuste rejeitado: o ajuste resultaria em estoque negativo"`
}
