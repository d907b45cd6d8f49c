package common

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("верный пароль не прошёл проверку")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("неверный пароль прошёл проверку")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{"", "plaintext", "$argon2id$broken"} {
		if VerifyPassword("anything", hash) {
			t.Errorf("проверка по битому хешу %q не должна проходить", hash)
		}
	}
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	a, err := HashPassword("пароль")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("пароль")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("два хеша одного пароля совпали — соль не случайна")
	}
}
