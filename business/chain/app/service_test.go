package app

import (
	"context"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/agentarena/arena-terminal/business/chain/domain"
	"github.com/agentarena/arena-terminal/internal/apperror"
	"github.com/agentarena/arena-terminal/internal/logger"
)

type stubClient struct {
	signer    common.Address
	hasSigner bool
	allowance *big.Int

	approved     *big.Int
	createParams *domain.CreateBountyParams
	pickedBounty uint64
	pickedWinner common.Address
}

func (s *stubClient) Signer() (common.Address, bool) { return s.signer, s.hasSigner }

func (s *stubClient) Allowance(_ context.Context, owner common.Address) (domain.Allowance, error) {
	return domain.Allowance{Owner: owner.Hex(), Amount: s.allowance}, nil
}

func (s *stubClient) BalanceOf(_ context.Context, _ common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (s *stubClient) TokenSymbol(_ context.Context) (string, error) { return "NEURON", nil }

func (s *stubClient) Approve(_ context.Context, amount *big.Int) (domain.TxResult, error) {
	s.approved = amount
	s.allowance = amount
	return domain.TxResult{Hash: "0xapprove", Status: domain.TxConfirmed}, nil
}

func (s *stubClient) CreateBounty(_ context.Context, p domain.CreateBountyParams) (domain.TxResult, error) {
	s.createParams = &p
	return domain.TxResult{Hash: "0xcreate", Status: domain.TxConfirmed}, nil
}

func (s *stubClient) PickWinner(_ context.Context, bountyID uint64, winner common.Address) (domain.TxResult, error) {
	s.pickedBounty = bountyID
	s.pickedWinner = winner
	return domain.TxResult{Hash: "0xpick", Status: domain.TxConfirmed}, nil
}

func newTestService(client *stubClient) *Service {
	return NewService(client, Config{TokenDecimals: 18}, logger.New(io.Discard, logger.LevelInfo, "test", nil))
}

func TestEnsureAllowance_SufficientSkipsApprove(t *testing.T) {
	client := &stubClient{hasSigner: true, allowance: big.NewInt(1000)}
	svc := newTestService(client)

	result, err := svc.EnsureAllowance(context.Background(), big.NewInt(500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Error("sufficient allowance must not approve")
	}
	if client.approved != nil {
		t.Error("approve must not be called")
	}
}

func TestEnsureAllowance_ShortfallApproves(t *testing.T) {
	client := &stubClient{hasSigner: true, allowance: big.NewInt(100)}
	svc := newTestService(client)

	result, err := svc.EnsureAllowance(context.Background(), big.NewInt(500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.Confirmed() {
		t.Fatalf("expected confirmed approve tx, got %+v", result)
	}
	if client.approved == nil || client.approved.Cmp(big.NewInt(500)) != 0 {
		t.Errorf("expected approve for 500, got %v", client.approved)
	}
}

func TestEnsureAllowance_NoSigner(t *testing.T) {
	svc := newTestService(&stubClient{})

	_, err := svc.EnsureAllowance(context.Background(), big.NewInt(1))
	if apperror.GetCode(err) != apperror.CodeNoSigner {
		t.Errorf("expected NO_SIGNER, got %v", err)
	}
}

func TestCreateBounty_HashesQuestionAndConvertsReward(t *testing.T) {
	client := &stubClient{hasSigner: true, allowance: big.NewInt(0)}
	svc := newTestService(client)

	result, err := svc.CreateBounty(context.Background(), CreateBountyInput{
		Question:   "What is the speed of light?",
		Category:   "Science",
		Difficulty: 3,
		Reward:     "100",
		Duration:   24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Confirmed() {
		t.Fatalf("expected confirmed tx, got %+v", result)
	}

	p := client.createParams
	if p == nil {
		t.Fatal("createBounty not called")
	}

	var wantHash [32]byte
	copy(wantHash[:], crypto.Keccak256([]byte("What is the speed of light?")))
	if p.QuestionHash != wantHash {
		t.Error("question must be committed as its keccak256 hash")
	}

	wantReward, _ := new(big.Int).SetString("100000000000000000000", 10)
	if p.Reward.Cmp(wantReward) != 0 {
		t.Errorf("expected reward in base units %s, got %s", wantReward, p.Reward)
	}

	// Zero starting allowance means the reward had to be approved first.
	if client.approved == nil || client.approved.Cmp(wantReward) != 0 {
		t.Errorf("expected approve for the reward, got %v", client.approved)
	}
}

func TestCreateBounty_Validation(t *testing.T) {
	svc := newTestService(&stubClient{hasSigner: true, allowance: big.NewInt(0)})
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateBountyInput
		code apperror.Code
	}{
		{"empty question", CreateBountyInput{Reward: "10", Difficulty: 3}, apperror.CodeRequiredField},
		{"difficulty too low", CreateBountyInput{Question: "q", Reward: "10", Difficulty: 0}, apperror.CodeInvalidInput},
		{"difficulty too high", CreateBountyInput{Question: "q", Reward: "10", Difficulty: 6}, apperror.CodeInvalidInput},
		{"bad reward", CreateBountyInput{Question: "q", Reward: "abc", Difficulty: 3}, apperror.CodeInvalidAmount},
		{"zero reward", CreateBountyInput{Question: "q", Reward: "0", Difficulty: 3}, apperror.CodeInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBounty(ctx, tc.in)
			if apperror.GetCode(err) != tc.code {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestPickWinner(t *testing.T) {
	client := &stubClient{hasSigner: true}
	svc := newTestService(client)

	winner := "0x1111111111111111111111111111111111111111"
	result, err := svc.PickWinner(context.Background(), 7, winner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Confirmed() {
		t.Fatalf("expected confirmed tx, got %+v", result)
	}
	if client.pickedBounty != 7 || client.pickedWinner != common.HexToAddress(winner) {
		t.Errorf("unexpected call: bounty=%d winner=%s", client.pickedBounty, client.pickedWinner.Hex())
	}
}

func TestPickWinner_RejectsBadAddress(t *testing.T) {
	svc := newTestService(&stubClient{hasSigner: true})

	_, err := svc.PickWinner(context.Background(), 7, "not-an-address")
	if apperror.GetCode(err) != apperror.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
