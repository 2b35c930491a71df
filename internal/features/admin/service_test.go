package admin

import (
	"encoding/base64"
	"fmt"
	"testing"

	"golang.org/x/crypto/argon2"
)

func encodeHash(password string, salt []byte) string {
	var (
		memory      uint32 = 65536
		iterations  uint32 = 3
		parallelism uint8  = 2
	)
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, 32)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func TestVerifyArgon2id(t *testing.T) {
	salt := []byte("0123456789abcdef")
	encoded := encodeHash("секретный-пароль", salt)

	if !verifyArgon2id("секретный-пароль", encoded) {
		t.Error("правильный пароль должен проходить проверку")
	}
	if verifyArgon2id("неверный", encoded) {
		t.Error("неправильный пароль не должен проходить проверку")
	}
}

func TestVerifyArgon2idBadFormat(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=2$тут-не-base64",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$!!!",
	}
	for _, h := range cases {
		if verifyArgon2id("пароль", h) {
			t.Errorf("кривой хеш %q не должен проходить проверку", h)
		}
	}
}
