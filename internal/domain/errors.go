package domain

// ValidationMessages maps validator tags to user-facing messages
var ValidationMessages = map[string]string{
	"required": "Campo obrigatório",
	"max":      "Excede o tamanho máximo",
	"min":      "Abaixo do tamanho mínimo",
	"gte":      "Deve ser maior ou igual ao mínimo",
	"email":    "Deve ser um e-mail válido",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Valor inválido: " + tag
}
