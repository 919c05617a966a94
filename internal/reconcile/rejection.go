// Package reconcile concentra a aritmética de ajuste de estoque do PDV:
// conversão caixa/pacote, validação de ajustes e métricas derivadas
// (margem, desconto por caixa, dias de cobertura).
//
// Todas as funções são puras. Nada aqui faz I/O ou guarda estado entre chamadas.
package reconcile

// Rejection é o motivo tipado pelo qual uma entrada foi recusada.
// Implementa error para poder ser comparada com errors.Is.
type Rejection string

const (
	// InvalidPackagingConfig indica caseSize/packSize não positivos ou grandes demais.
	InvalidPackagingConfig Rejection = "INVALID_PACKAGING_CONFIG"
	// NegativeResultingStock indica que o delta levaria o estoque abaixo de zero.
	NegativeResultingStock Rejection = "NEGATIVE_RESULTING_STOCK"
	// NegativeTarget indica um valor absoluto ("definir para") negativo.
	NegativeTarget Rejection = "NEGATIVE_TARGET"
	// NoOpAdjustment indica que o delta resultante é exatamente zero.
	NoOpAdjustment Rejection = "NO_OP_ADJUSTMENT"
	// MissingReason indica que nenhum motivo de negócio válido foi escolhido.
	MissingReason Rejection = "MISSING_REASON"
	// InvalidInput indica modo/unidade desconhecidos, quantidade fora da faixa
	// aceita ou snapshot inconsistente.
	InvalidInput Rejection = "INVALID_INPUT"
)

var rejectionMessages = map[Rejection]string{
	InvalidPackagingConfig: "tamanho de caixa e pacote devem ser positivos",
	NegativeResultingStock: "o ajuste resultaria em estoque negativo",
	NegativeTarget:         "a quantidade alvo não pode ser negativa",
	NoOpAdjustment:         "o ajuste não altera o estoque",
	MissingReason:          "um motivo de ajuste deve ser informado",
	InvalidInput:           "modo, unidade ou quantidade de ajuste inválidos",
}

func (r Rejection) Error() string {
	return "reconcile: " + r.Message()
}

// Message devolve o texto legível, sem prefixo, usado nas mensagens de campo.
func (r Rejection) Message() string {
	if msg, ok := rejectionMessages[r]; ok {
		return msg
	}
	return string(r)
}
