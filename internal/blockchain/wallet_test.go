package blockchain

import (
	"regexp"
	"testing"

	"rdxfarm.ru/backend/internal/config"
)

func TestDepositAddressDeterministic(t *testing.T) {
	w := NewWallet(&config.Config{BlockchainSeed: "test-seed"})

	first := w.DepositAddress(42)
	second := w.DepositAddress(42)
	if first != second {
		t.Errorf("адрес должен быть детерминированным: %s != %s", first, second)
	}

	if matched, _ := regexp.MatchString(`^0x[0-9a-f]{40}$`, first); !matched {
		t.Errorf("некорректный формат адреса: %s", first)
	}

	if w.DepositAddress(43) == first {
		t.Error("разные пользователи не должны получать один адрес")
	}
}

func TestDepositAddressSeedDependent(t *testing.T) {
	a := NewWallet(&config.Config{BlockchainSeed: "seed-a"})
	b := NewWallet(&config.Config{BlockchainSeed: "seed-b"})

	if a.DepositAddress(1) == b.DepositAddress(1) {
		t.Error("адрес должен зависеть от seed")
	}
}
