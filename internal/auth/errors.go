package auth

import "errors"

var (
	// ErrMissingToken indica que nenhum token foi apresentado.
	ErrMissingToken = errors.New("token não fornecido")
	// ErrInvalidSignature indica assinatura que não confere com o segredo.
	ErrInvalidSignature = errors.New("token inválido")
	// ErrExpiredToken indica token apresentado após o fim da validade.
	ErrExpiredToken = errors.New("token expirado")
	// ErrMalformedToken indica payload decodificável porém sem as claims obrigatórias,
	// ou um token que nem chega a ser decodificável.
	ErrMalformedToken = errors.New("token malformado")
)

// ValidationError indica entrada inválida na emissão de um token.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError cria erro de validação com mensagem voltada ao operador.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation informa se err é um erro de validação de entrada.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
