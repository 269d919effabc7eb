// Package ethereum implements wallet operations against the NEURON token
// and the BountyArena contract over an RPC node.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentarena/arena-terminal/business/chain/domain"
	"github.com/agentarena/arena-terminal/internal/apperror"
	"github.com/agentarena/arena-terminal/internal/cache"
	"github.com/agentarena/arena-terminal/internal/circuitbreaker"
	"github.com/agentarena/arena-terminal/internal/logger"
)

const (
	tracerName = "business/chain/infra/ethereum"
	meterName  = "business/chain/infra/ethereum"
)

// Config holds chain client settings.
type Config struct {
	ChainID             uint64
	NeuronToken         common.Address
	BountyArena         common.Address
	PrivateKey          string // hex, optional; read-only mode without it
	ReceiptPollInterval time.Duration
	ReceiptTimeout      time.Duration
}

// clientMetrics holds OTEL metric instruments.
type clientMetrics struct {
	contractCalls metric.Int64Counter
	txSubmitted   metric.Int64Counter
	confirmTime   metric.Float64Histogram
}

// Client performs contract reads and signed writes. Reads go through a
// circuit breaker; writes poll for receipts until confirmed, failed or
// timed out.
type Client struct {
	cfg    Config
	logger logger.LoggerInterface
	eth    *ethclient.Client

	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int

	cb        *circuitbreaker.CircuitBreaker[[]byte]
	metaCache *cache.Cache[string, string]

	tracer  trace.Tracer
	metrics *clientMetrics
}

// New creates a chain client over an established RPC connection. The
// private key is optional; without it only read operations work.
func New(cfg Config, eth *ethclient.Client, log logger.LoggerInterface) (*Client, error) {
	if eth == nil {
		return nil, apperror.New(apperror.CodeChainConnectionFailed,
			apperror.WithContext("no RPC connection available"))
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = 143
	}
	if cfg.ReceiptPollInterval <= 0 {
		cfg.ReceiptPollInterval = 2 * time.Second
	}
	if cfg.ReceiptTimeout <= 0 {
		cfg.ReceiptTimeout = 2 * time.Minute
	}

	c := &Client{
		cfg:       cfg,
		logger:    log,
		eth:       eth,
		chainID:   new(big.Int).SetUint64(cfg.ChainID),
		metaCache: cache.New[string, string](5 * time.Minute),
		tracer:    otel.Tracer(tracerName),
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, apperror.New(apperror.CodeConfigurationError,
				apperror.WithCause(err),
				apperror.WithContext("invalid chain private key"))
		}
		c.key = key
		c.from = crypto.PubkeyToAddress(key.PublicKey)
	}

	if err := c.initMetrics(); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	c.cb = circuitbreaker.New[[]byte](circuitbreaker.DefaultConfig("chain-rpc"))

	return c, nil
}

func (c *Client) initMetrics() error {
	meter := otel.Meter(meterName)
	var err error

	c.metrics = &clientMetrics{}

	c.metrics.contractCalls, err = meter.Int64Counter(
		"chain_contract_calls_total",
		metric.WithDescription("Total read-only contract calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	c.metrics.txSubmitted, err = meter.Int64Counter(
		"chain_tx_submitted_total",
		metric.WithDescription("Total transactions submitted"),
		metric.WithUnit("{tx}"),
	)
	if err != nil {
		return err
	}

	c.metrics.confirmTime, err = meter.Float64Histogram(
		"chain_tx_confirm_seconds",
		metric.WithDescription("Time from submission to receipt"),
		metric.WithUnit("s"),
	)
	return err
}

// Signer returns the wallet address, or false when running read-only.
func (c *Client) Signer() (common.Address, bool) {
	return c.from, c.key != nil
}

// Allowance reads the NEURON budget owner granted the BountyArena contract.
func (c *Client) Allowance(ctx context.Context, owner common.Address) (domain.Allowance, error) {
	out, err := c.call(ctx, c.cfg.NeuronToken, erc20ABI, "allowance", owner, c.cfg.BountyArena)
	if err != nil {
		return domain.Allowance{}, err
	}

	vals, err := erc20ABI.Unpack("allowance", out)
	if err != nil {
		return domain.Allowance{}, apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext("decode allowance result"))
	}

	return domain.Allowance{
		Owner:   owner.Hex(),
		Spender: c.cfg.BountyArena.Hex(),
		Amount:  vals[0].(*big.Int),
	}, nil
}

// BalanceOf reads the NEURON balance of an address.
func (c *Client) BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error) {
	out, err := c.call(ctx, c.cfg.NeuronToken, erc20ABI, "balanceOf", addr)
	if err != nil {
		return nil, err
	}
	vals, err := erc20ABI.Unpack("balanceOf", out)
	if err != nil {
		return nil, apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext("decode balance result"))
	}
	return vals[0].(*big.Int), nil
}

// TokenSymbol reads the NEURON symbol, cached across calls.
func (c *Client) TokenSymbol(ctx context.Context) (string, error) {
	if sym, ok := c.metaCache.Get(ctx, "symbol"); ok {
		return sym, nil
	}

	out, err := c.call(ctx, c.cfg.NeuronToken, erc20ABI, "symbol")
	if err != nil {
		return "", err
	}
	vals, err := erc20ABI.Unpack("symbol", out)
	if err != nil {
		return "", apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext("decode symbol result"))
	}

	sym := vals[0].(string)
	c.metaCache.Set(ctx, "symbol", sym, time.Hour)
	return sym, nil
}

// Approve grants the BountyArena contract a NEURON spending budget.
func (c *Client) Approve(ctx context.Context, amount *big.Int) (domain.TxResult, error) {
	ctx, span := c.tracer.Start(ctx, "chain.approve",
		trace.WithAttributes(attribute.String("amount", amount.String())),
	)
	defer span.End()

	data, err := erc20ABI.Pack("approve", c.cfg.BountyArena, amount)
	if err != nil {
		span.RecordError(err)
		return domain.TxResult{}, apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext("encode approve call"))
	}

	return c.sendTx(ctx, span, c.cfg.NeuronToken, data)
}

// CreateBounty submits BountyArena.createBounty.
func (c *Client) CreateBounty(ctx context.Context, p domain.CreateBountyParams) (domain.TxResult, error) {
	ctx, span := c.tracer.Start(ctx, "chain.create_bounty",
		trace.WithAttributes(
			attribute.String("category", p.Category),
			attribute.String("reward", p.Reward.String()),
		),
	)
	defer span.End()

	duration := new(big.Int).SetInt64(int64(p.Duration / time.Second))
	minRating := p.MinRating
	if minRating == nil {
		minRating = big.NewInt(0)
	}

	data, err := bountyArenaABI.Pack("createBounty",
		p.QuestionHash, p.Category, p.Difficulty, p.Reward, minRating, duration)
	if err != nil {
		span.RecordError(err)
		return domain.TxResult{}, apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext("encode createBounty call"))
	}

	return c.sendTx(ctx, span, c.cfg.BountyArena, data)
}

// PickWinner submits BountyArena.pickWinner for a bounty the signer created.
func (c *Client) PickWinner(ctx context.Context, bountyID uint64, winner common.Address) (domain.TxResult, error) {
	ctx, span := c.tracer.Start(ctx, "chain.pick_winner",
		trace.WithAttributes(
			attribute.Int64("bounty_id", int64(bountyID)),
			attribute.String("winner", winner.Hex()),
		),
	)
	defer span.End()

	data, err := bountyArenaABI.Pack("pickWinner", new(big.Int).SetUint64(bountyID), winner)
	if err != nil {
		span.RecordError(err)
		return domain.TxResult{}, apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext("encode pickWinner call"))
	}

	return c.sendTx(ctx, span, c.cfg.BountyArena, data)
}

// call performs a read-only contract call through the circuit breaker.
func (c *Client) call(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...interface{}) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "chain.call",
		trace.WithAttributes(
			attribute.String("contract", to.Hex()),
			attribute.String("method", method),
		),
	)
	defer span.End()

	c.metrics.contractCalls.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method)))

	data, err := contract.Pack(method, args...)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("encode %s call", method)))
	}

	out, err := c.cb.Execute(func() ([]byte, error) {
		return c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "call failed")
		if circuitbreaker.IsOpen(err) {
			return nil, apperror.New(apperror.CodeCircuitOpen,
				apperror.WithCause(err),
				apperror.WithContext("chain RPC circuit open"))
		}
		return nil, apperror.New(apperror.CodeChainRPCError,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("%s call failed", method)))
	}

	span.SetStatus(codes.Ok, "called")
	return out, nil
}

// sendTx signs and submits a transaction, then polls until the receipt
// arrives or the timeout elapses.
func (c *Client) sendTx(ctx context.Context, span trace.Span, to common.Address, data []byte) (domain.TxResult, error) {
	if c.key == nil {
		err := apperror.New(apperror.CodeNoSigner,
			apperror.WithContext("no private key configured"))
		span.RecordError(err)
		return domain.TxResult{}, err
	}

	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return domain.TxResult{}, apperror.New(apperror.CodeChainRPCError,
			apperror.WithCause(err),
			apperror.WithContext("fetch nonce"))
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return domain.TxResult{}, apperror.New(apperror.CodeChainRPCError,
			apperror.WithCause(err),
			apperror.WithContext("fetch gas price"))
	}

	gasLimit, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
		From: c.from,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return domain.TxResult{}, apperror.New(apperror.CodeContractCallFailed,
			apperror.WithCause(err),
			apperror.WithContext(truncate(err.Error(), 200)))
	}
	gasLimit += gasLimit / 10

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return domain.TxResult{}, apperror.New(apperror.CodeTxSendFailed,
			apperror.WithCause(err),
			apperror.WithContext("sign transaction"))
	}

	submittedAt := time.Now()
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return domain.TxResult{}, apperror.New(apperror.CodeTxSendFailed,
			apperror.WithCause(err),
			apperror.WithContext(truncate(err.Error(), 200)))
	}

	hash := signed.Hash()
	c.metrics.txSubmitted.Add(ctx, 1)
	span.SetAttributes(attribute.String("tx_hash", hash.Hex()))
	c.logger.Info(ctx, "transaction submitted",
		"hash", hash.Hex(), "to", to.Hex(), "nonce", nonce)

	result := c.waitReceipt(ctx, hash, submittedAt)
	if result.Status == domain.TxConfirmed {
		c.metrics.confirmTime.Record(ctx, time.Since(submittedAt).Seconds())
		span.SetStatus(codes.Ok, "confirmed")
		return result, nil
	}

	span.SetStatus(codes.Error, result.Error)
	if result.Error == "" {
		return result, apperror.New(apperror.CodeTxReverted,
			apperror.WithContext(hash.Hex()))
	}
	return result, apperror.New(apperror.CodeTxReverted,
		apperror.WithContext(truncate(result.Error, 200)))
}

// waitReceipt polls for the transaction receipt. The returned result is
// TxFailed when the receipt shows a revert or polling gives up.
func (c *Client) waitReceipt(ctx context.Context, hash common.Hash, submittedAt time.Time) domain.TxResult {
	result := domain.TxResult{
		Hash:        hash.Hex(),
		Status:      domain.TxPending,
		SubmittedAt: submittedAt,
	}

	deadline := time.Now().Add(c.cfg.ReceiptTimeout)
	ticker := time.NewTicker(c.cfg.ReceiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, hash)
		if err == nil {
			result.BlockNumber = receipt.BlockNumber.Uint64()
			result.GasUsed = receipt.GasUsed
			if receipt.Status == types.ReceiptStatusSuccessful {
				result.Status = domain.TxConfirmed
			} else {
				result.Status = domain.TxFailed
				result.Error = "transaction reverted"
			}
			return result
		}
		if !errors.Is(err, ethereum.NotFound) {
			c.logger.Warn(ctx, "receipt poll failed", "hash", hash.Hex(), "error", err)
		}

		if time.Now().After(deadline) {
			result.Status = domain.TxFailed
			result.Error = "receipt wait timed out"
			return result
		}

		select {
		case <-ctx.Done():
			result.Status = domain.TxFailed
			result.Error = ctx.Err().Error()
			return result
		case <-ticker.C:
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
