// Package app orchestrates wallet flows: allowance checks, bounty creation
// and winner selection.
package app

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/agentarena/arena-terminal/business/chain/domain"
	"github.com/agentarena/arena-terminal/internal/apperror"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/token"
)

// Config holds chain service settings.
type Config struct {
	TokenDecimals int32
}

// CreateBountyInput is the form-level input for posting a bounty. Reward is
// a display amount, not base units.
type CreateBountyInput struct {
	Question   string
	Category   string
	Difficulty uint8
	Reward     string
	MinRating  int64
	Duration   time.Duration
}

// Service exposes the wallet operations the UI triggers.
type Service struct {
	client ContractClient
	cfg    Config
	logger logger.LoggerInterface
}

// NewService creates the chain service.
func NewService(client ContractClient, cfg Config, log logger.LoggerInterface) *Service {
	if cfg.TokenDecimals <= 0 {
		cfg.TokenDecimals = 18
	}
	return &Service{client: client, cfg: cfg, logger: log}
}

// Wallet returns the signer address, or false in read-only mode.
func (s *Service) Wallet() (common.Address, bool) {
	return s.client.Signer()
}

// Balance reads the signer's NEURON balance in base units.
func (s *Service) Balance(ctx context.Context) (*big.Int, error) {
	from, ok := s.client.Signer()
	if !ok {
		return nil, apperror.New(apperror.CodeNoSigner,
			apperror.WithContext("no wallet configured"))
	}
	return s.client.BalanceOf(ctx, from)
}

// EnsureAllowance checks the BountyArena spending budget and approves the
// exact shortfall amount when it does not cover the spend. Returns the
// approve transaction, or nil when no approval was needed.
func (s *Service) EnsureAllowance(ctx context.Context, amount *big.Int) (*domain.TxResult, error) {
	from, ok := s.client.Signer()
	if !ok {
		return nil, apperror.New(apperror.CodeNoSigner,
			apperror.WithContext("no wallet configured"))
	}

	allowance, err := s.client.Allowance(ctx, from)
	if err != nil {
		return nil, err
	}
	if allowance.Covers(amount) {
		return nil, nil
	}

	s.logger.Info(ctx, "approving spend",
		"current", allowance.Amount.String(), "required", amount.String())

	result, err := s.client.Approve(ctx, amount)
	if err != nil {
		return nil, err
	}
	if !result.Confirmed() {
		return &result, apperror.New(apperror.CodeInsufficientAllowance,
			apperror.WithContext("approve transaction failed"))
	}
	return &result, nil
}

// CreateBounty validates the form input, ensures the allowance covers the
// reward and submits createBounty. The question is committed as its
// keccak256 hash; the text itself goes to the backend separately.
func (s *Service) CreateBounty(ctx context.Context, in CreateBountyInput) (domain.TxResult, error) {
	if in.Question == "" {
		return domain.TxResult{}, apperror.New(apperror.CodeRequiredField,
			apperror.WithContext("question is required"))
	}
	if in.Difficulty < 1 || in.Difficulty > 5 {
		return domain.TxResult{}, apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext("difficulty must be 1-5"))
	}

	reward, err := token.ParseDisplay(in.Reward, s.cfg.TokenDecimals)
	if err != nil {
		return domain.TxResult{}, apperror.New(apperror.CodeInvalidAmount,
			apperror.WithCause(err),
			apperror.WithContext("invalid reward amount"))
	}
	if reward.IsZero() {
		return domain.TxResult{}, apperror.New(apperror.CodeInvalidAmount,
			apperror.WithContext("reward must be positive"))
	}

	if _, err := s.EnsureAllowance(ctx, reward.Raw()); err != nil {
		return domain.TxResult{}, err
	}

	var questionHash [32]byte
	copy(questionHash[:], crypto.Keccak256([]byte(in.Question)))

	return s.client.CreateBounty(ctx, domain.CreateBountyParams{
		QuestionHash: questionHash,
		Category:     in.Category,
		Difficulty:   in.Difficulty,
		Reward:       reward.Raw(),
		MinRating:    big.NewInt(in.MinRating),
		Duration:     in.Duration,
	})
}

// PickWinner submits pickWinner for a bounty the signer created.
func (s *Service) PickWinner(ctx context.Context, bountyID uint64, winnerHex string) (domain.TxResult, error) {
	if !common.IsHexAddress(winnerHex) {
		return domain.TxResult{}, apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext("winner is not a valid address"))
	}
	return s.client.PickWinner(ctx, bountyID, common.HexToAddress(winnerHex))
}
