package ethereum

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestERC20ABI_Selectors(t *testing.T) {
	cases := map[string]string{
		"allowance": "dd62ed3e",
		"approve":   "095ea7b3",
		"balanceOf": "70a08231",
	}

	for name, want := range cases {
		method, ok := erc20ABI.Methods[name]
		if !ok {
			t.Fatalf("method %s missing from ABI", name)
		}
		if got := hex.EncodeToString(method.ID); got != want {
			t.Errorf("%s selector: expected %s, got %s", name, want, got)
		}
	}
}

func TestBountyArenaABI_PackPickWinner(t *testing.T) {
	winner := common.HexToAddress("0x2222222222222222222222222222222222222222")
	data, err := bountyArenaABI.Pack("pickWinner", big.NewInt(5), winner)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	// 4-byte selector plus two 32-byte words.
	if len(data) != 4+64 {
		t.Errorf("expected 68 bytes of calldata, got %d", len(data))
	}
}

func TestBountyArenaABI_PackCreateBounty(t *testing.T) {
	var hash [32]byte
	_, err := bountyArenaABI.Pack("createBounty",
		hash, "Science", uint8(3), big.NewInt(100), big.NewInt(0), big.NewInt(86400))
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
}
