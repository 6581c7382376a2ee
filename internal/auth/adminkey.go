package auth

import (
	"github.com/alexedwards/argon2id"
)

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MB
	Iterations:  3,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// HashAdminKey gera um hash Argon2id da chave de operador
// (os parâmetros ficam embutidos no próprio hash).
func HashAdminKey(key string) (string, error) {
	return argon2id.CreateHash(key, params)
}

// VerifyAdminKey compara a chave apresentada com o hash configurado.
func VerifyAdminKey(key, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(key, encodedHash)
}
