package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/block"
	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/logger"
)

const (
	nativeTransferGas = uint64(21000)

	// droppedAfterMisses is how many consecutive lookups may miss a broadcast transaction
	// before it is considered dropped
	droppedAfterMisses = 5
)

var errNotFinal = errors.New("transaction not final yet")

// Config holds the configuration of an Ethereum chain client
type Config struct {
	Network          domain.Network
	ChainID          int64
	EscrowAddress    string
	EscrowPrivateKey string // hex, required for builders only
	MarketContract   string
	SafetyMargin     uint64
	FinalityTimeout  time.Duration
	PollInterval     time.Duration
	RPCRateLimit     float64 // requests per second, 0 disables throttling
	RPCBurst         int
}

type ethereumClient struct {
	network        domain.Network
	chainID        *big.Int
	signer         types.Signer
	escrow         common.Address
	escrowKey      *ecdsa.PrivateKey
	marketContract common.Address

	client  adapter.EthClient
	heads   adapter.EthClient
	fetcher block.BlockFetcher
	limiter *rate.Limiter
	nonces  nonceManager

	finalityTimeout time.Duration
	pollInterval    time.Duration
}

// NewClient creates a chain client over an RPC connection.
// heads is the WebSocket connection used for head subscriptions and may be nil.
func NewClient(cfg Config, client adapter.EthClient, heads adapter.EthClient) (chain.Client, error) {
	if !common.IsHexAddress(cfg.EscrowAddress) {
		return nil, fmt.Errorf("invalid escrow address: %s", cfg.EscrowAddress)
	}
	if cfg.MarketContract != "" && !common.IsHexAddress(cfg.MarketContract) {
		return nil, fmt.Errorf("invalid market contract address: %s", cfg.MarketContract)
	}

	c := &ethereumClient{
		network:         cfg.Network,
		chainID:         big.NewInt(cfg.ChainID),
		signer:          types.LatestSignerForChainID(big.NewInt(cfg.ChainID)),
		escrow:          common.HexToAddress(cfg.EscrowAddress),
		client:          client,
		heads:           heads,
		fetcher:         NewBlockFetcher(client, cfg.SafetyMargin),
		limiter:         rate.NewLimiter(rate.Inf, 0),
		finalityTimeout: cfg.FinalityTimeout,
		pollInterval:    cfg.PollInterval,
	}

	if cfg.MarketContract != "" {
		c.marketContract = common.HexToAddress(cfg.MarketContract)
	}
	if cfg.RPCRateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RPCRateLimit), max(cfg.RPCBurst, 1))
	}
	if c.pollInterval <= 0 {
		c.pollInterval = 4 * time.Second
	}
	if c.finalityTimeout <= 0 {
		c.finalityTimeout = 3 * time.Minute
	}

	if cfg.EscrowPrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.EscrowPrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid escrow private key: %w", err)
		}
		if crypto.PubkeyToAddress(key.PublicKey) != c.escrow {
			return nil, fmt.Errorf("escrow private key does not match escrow address %s", c.escrow.Hex())
		}
		c.escrowKey = key
	}

	return c, nil
}

// Network returns the network this client is bound to
func (c *ethereumClient) Network() domain.Network {
	return c.network
}

// EscrowAddress returns the escrow account address in canonical form
func (c *ethereumClient) EscrowAddress() string {
	return c.escrow.Hex()
}

func (c *ethereumClient) throttle(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rpc rate limiter: %w", err)
	}
	return nil
}

// DecodeTransaction decodes and verifies a user-signed transaction
func (c *ethereumClient) DecodeTransaction(raw string) (*chain.DecodedTransaction, error) {
	tx, err := unmarshalTransaction(raw)
	if err != nil {
		return nil, err
	}

	if tx.ChainId().Cmp(c.chainID) != 0 {
		return nil, fmt.Errorf("%w: chain id %s, expected %s", chain.ErrInvalid, tx.ChainId(), c.chainID)
	}
	if tx.To() == nil {
		return nil, fmt.Errorf("%w: contract creation", chain.ErrInvalid)
	}

	from, err := types.Sender(c.signer, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid signature: %v", chain.ErrInvalid, err)
	}

	decoded := &chain.DecodedTransaction{
		Hash: tx.Hash().Hex(),
		From: from.Hex(),
		Signed: &chain.SignedTransaction{
			Hash:  tx.Hash().Hex(),
			From:  from.Hex(),
			Nonce: tx.Nonce(),
			Raw:   raw,
		},
	}

	if len(tx.Data()) == 0 {
		decoded.Kind = chain.TransferKindBalance
		decoded.To = tx.To().Hex()
		decoded.Amount = decimal.NewFromBigInt(tx.Value(), 0)
		return decoded, nil
	}

	_, to, tokenID, err := decodeTokenCall(tx.Data())
	if err != nil {
		return nil, err
	}
	decoded.Kind = chain.TransferKindToken
	decoded.To = to.Hex()
	decoded.Contract = tx.To().Hex()
	decoded.TokenID = tokenID.String()
	decoded.Amount = decimal.Zero
	return decoded, nil
}

func unmarshalTransaction(raw string) (*types.Transaction, error) {
	data, err := hexutil.Decode(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: not a hex encoded transaction: %v", chain.ErrInvalid, err)
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: %v", chain.ErrInvalid, err)
	}
	return tx, nil
}

// BuildBalanceTransfer builds and signs a native transfer from escrow
func (c *ethereumClient) BuildBalanceTransfer(ctx context.Context, to string, amount decimal.Decimal) (*chain.SignedTransaction, error) {
	if !common.IsHexAddress(to) {
		return nil, fmt.Errorf("invalid recipient address: %s", to)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("transfer amount must be positive: %s", amount)
	}

	recipient := common.HexToAddress(to)
	return c.buildAndSign(ctx, recipient, amount.BigInt(), nil, nativeTransferGas)
}

// BuildTokenTransfer builds and signs a token transfer from escrow
func (c *ethereumClient) BuildTokenTransfer(ctx context.Context, collection, tokenID, to string) (*chain.SignedTransaction, error) {
	if !common.IsHexAddress(collection) {
		return nil, fmt.Errorf("invalid collection address: %s", collection)
	}
	if !common.IsHexAddress(to) {
		return nil, fmt.Errorf("invalid recipient address: %s", to)
	}
	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id: %s", tokenID)
	}

	data, err := erc721ABI.Pack("safeTransferFrom", c.escrow, common.HexToAddress(to), id)
	if err != nil {
		return nil, fmt.Errorf("failed to pack safeTransferFrom: %w", err)
	}

	return c.buildContractCall(ctx, common.HexToAddress(collection), data)
}

// BuildDeposit builds and signs a market contract credit for an account
func (c *ethereumClient) BuildDeposit(ctx context.Context, account string, amount decimal.Decimal) (*chain.SignedTransaction, error) {
	if c.marketContract == (common.Address{}) {
		return nil, fmt.Errorf("network %s has no market contract", c.network)
	}
	if !common.IsHexAddress(account) {
		return nil, fmt.Errorf("invalid account address: %s", account)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("deposit amount must be positive: %s", amount)
	}

	data, err := marketABI.Pack("credit", common.HexToAddress(account), amount.BigInt())
	if err != nil {
		return nil, fmt.Errorf("failed to pack credit: %w", err)
	}

	return c.buildContractCall(ctx, c.marketContract, data)
}

func (c *ethereumClient) buildContractCall(ctx context.Context, contract common.Address, data []byte) (*chain.SignedTransaction, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	gas, err := c.client.EstimateGas(ctx, ethereum.CallMsg{From: c.escrow, To: &contract, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	return c.buildAndSign(ctx, contract, new(big.Int), data, gas)
}

func (c *ethereumClient) buildAndSign(ctx context.Context, to common.Address, value *big.Int, data []byte, gas uint64) (*chain.SignedTransaction, error) {
	if c.escrowKey == nil {
		return nil, fmt.Errorf("network %s has no escrow signing key", c.network)
	}

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}

	nonce, err := c.nonces.Next(ctx, func(ctx context.Context) (uint64, error) {
		if err := c.throttle(ctx); err != nil {
			return 0, err
		}
		return c.client.PendingNonceAt(ctx, c.escrow)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow nonce: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, c.signer, c.escrowKey)
	if err != nil {
		c.nonces.Reset()
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		c.nonces.Reset()
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	return &chain.SignedTransaction{
		Hash:  signed.Hash().Hex(),
		From:  c.escrow.Hex(),
		Nonce: nonce,
		Raw:   hexutil.Encode(raw),
	}, nil
}

// Submit broadcasts a signed transaction and waits until it is final
func (c *ethereumClient) Submit(ctx context.Context, signed *chain.SignedTransaction) (*chain.SubmitResult, error) {
	tx, err := unmarshalTransaction(signed.Raw)
	if err != nil {
		return nil, err
	}
	escrowTx := domain.SameAddress(signed.From, c.escrow.Hex())

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	if err := c.client.SendTransaction(ctx, tx); err != nil {
		switch {
		case isAlreadyKnown(err):
			logger.DebugCtx(ctx, "Transaction already known to the node", zap.String("tx_hash", signed.Hash))

		case isNonceTooLow(err):
			// the transaction may have been mined by an earlier attempt
			status, statusErr := c.TransactionStatus(ctx, signed.Hash)
			if statusErr != nil || status.State == chain.TxStateNotFound {
				if escrowTx {
					c.nonces.Reset()
				}
				return nil, fmt.Errorf("%w: nonce %d already used: %v", chain.ErrUsurped, tx.Nonce(), err)
			}

		default:
			if escrowTx {
				c.nonces.Reset()
			}
			return nil, fmt.Errorf("%w: %v", chain.ErrInvalid, err)
		}
	}

	logger.InfoCtx(ctx, "Transaction broadcast, waiting for finality",
		zap.String("network", string(c.network)),
		zap.String("tx_hash", signed.Hash))

	result, err := c.waitForFinality(ctx, tx.Hash())
	if err != nil && escrowTx && errors.Is(err, chain.ErrDropped) {
		c.nonces.Reset()
	}
	return result, err
}

// waitForFinality polls the receipt until its block is final and still canonical
func (c *ethereumClient) waitForFinality(ctx context.Context, hash common.Hash) (*chain.SubmitResult, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.finalityTimeout)
	defer cancel()

	var result *chain.SubmitResult
	misses := 0

	operation := func() error {
		receipt, err := c.receipt(waitCtx, hash)
		if errors.Is(err, ethereum.NotFound) {
			if err := c.throttle(waitCtx); err != nil {
				return err
			}
			_, _, err := c.client.TransactionByHash(waitCtx, hash)
			if errors.Is(err, ethereum.NotFound) {
				misses++
				if misses >= droppedAfterMisses {
					return backoff.Permanent(fmt.Errorf("%w: %s", chain.ErrDropped, hash.Hex()))
				}
			} else if err == nil {
				misses = 0
			}
			return errNotFinal
		}
		if err != nil {
			return err
		}

		finalized, err := c.fetcher.FetchFinalizedBlock(waitCtx)
		if err != nil {
			return err
		}
		if finalized < receipt.BlockNumber.Uint64() {
			return errNotFinal
		}

		if err := c.throttle(waitCtx); err != nil {
			return err
		}
		header, err := c.client.HeaderByNumber(waitCtx, receipt.BlockNumber)
		if err != nil {
			return err
		}
		if header.Hash() != receipt.BlockHash {
			// reorged out, the next receipt lookup returns the new inclusion
			return errNotFinal
		}

		result = &chain.SubmitResult{
			IsSucceed:   receipt.Status == types.ReceiptStatusSuccessful,
			TxHash:      hash.Hex(),
			BlockHash:   receipt.BlockHash.Hex(),
			BlockNumber: receipt.BlockNumber.Uint64(),
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.NewConstantBackOff(c.pollInterval), waitCtx))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, errNotFinal) {
			return nil, fmt.Errorf("%w: %s after %s", chain.ErrFinalityTimeout, hash.Hex(), c.finalityTimeout)
		}
		return nil, err
	}

	return result, nil
}

func (c *ethereumClient) receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	return c.client.TransactionReceipt(ctx, hash)
}

// TransactionStatus looks up a transaction by hash
func (c *ethereumClient) TransactionStatus(ctx context.Context, hash string) (*chain.TransactionStatus, error) {
	txHash := common.HexToHash(hash)

	receipt, err := c.receipt(ctx, txHash)
	if err != nil && !errors.Is(err, ethereum.NotFound) {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	if receipt == nil {
		if err := c.throttle(ctx); err != nil {
			return nil, err
		}
		_, pending, err := c.client.TransactionByHash(ctx, txHash)
		if errors.Is(err, ethereum.NotFound) {
			return &chain.TransactionStatus{State: chain.TxStateNotFound}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get transaction: %w", err)
		}
		if !pending {
			// mined but the receipt is not indexed yet
			logger.DebugCtx(ctx, "Transaction mined without receipt", zap.String("tx_hash", hash))
		}
		return &chain.TransactionStatus{State: chain.TxStatePending}, nil
	}

	status := &chain.TransactionStatus{
		State:       chain.TxStateFailed,
		BlockNumber: receipt.BlockNumber.Uint64(),
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		status.State = chain.TxStateSucceeded
	}

	finalized, err := c.fetcher.FetchFinalizedBlock(ctx)
	if err != nil {
		return nil, err
	}
	if finalized >= status.BlockNumber {
		if err := c.throttle(ctx); err != nil {
			return nil, err
		}
		header, err := c.client.HeaderByNumber(ctx, receipt.BlockNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to get block header: %w", err)
		}
		status.Finalized = header.Hash() == receipt.BlockHash
	}

	return status, nil
}

// NonceConsumed reports whether a finalized transaction of account used nonce or a later one
func (c *ethereumClient) NonceConsumed(ctx context.Context, account string, nonce uint64) (bool, error) {
	if !common.IsHexAddress(account) {
		return false, fmt.Errorf("invalid account address %q", account)
	}

	finalized, err := c.fetcher.FetchFinalizedBlock(ctx)
	if err != nil {
		return false, err
	}

	if err := c.throttle(ctx); err != nil {
		return false, err
	}
	next, err := c.client.NonceAt(ctx, common.HexToAddress(account), new(big.Int).SetUint64(finalized))
	if err != nil {
		return false, fmt.Errorf("failed to get finalized nonce: %w", err)
	}
	return next > nonce, nil
}

// LatestBlock returns the head block number
func (c *ethereumClient) LatestBlock(ctx context.Context) (uint64, error) {
	if err := c.throttle(ctx); err != nil {
		return 0, err
	}
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// FinalizedBlock returns the latest final block number
func (c *ethereumClient) FinalizedBlock(ctx context.Context) (uint64, error) {
	if err := c.throttle(ctx); err != nil {
		return 0, err
	}
	return c.fetcher.FetchFinalizedBlock(ctx)
}

// BlockTimestamp returns the timestamp of a block
func (c *ethereumClient) BlockTimestamp(ctx context.Context, number uint64) (time.Time, error) {
	if err := c.throttle(ctx); err != nil {
		return time.Time{}, err
	}
	return c.fetcher.FetchBlockTimestamp(ctx, number)
}

// Block returns a block with its decoded events ordered by position
func (c *ethereumClient) Block(ctx context.Context, number uint64) (*chain.Block, error) {
	latest, err := c.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}
	if number > latest {
		return nil, fmt.Errorf("%w: block %d is ahead of head %d", chain.ErrBlockUnreachable, number, latest)
	}

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	blk, err := c.client.BlockByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return nil, fmt.Errorf("failed to get block %d: %w", number, err)
	}

	result := &chain.Block{
		Number:    blk.NumberU64(),
		Hash:      blk.Hash().Hex(),
		Timestamp: time.Unix(int64(blk.Time()), 0).UTC(), //nolint:gosec,G115
	}

	logs, err := c.blockLogs(ctx, blk.Hash())
	if err != nil {
		return nil, err
	}
	for _, vLog := range logs {
		if vLog.Removed {
			continue
		}
		event, err := parseLog(vLog, c.marketContract)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping undecodable log",
				zap.String("tx_hash", vLog.TxHash.Hex()),
				zap.Uint("log_index", vLog.Index),
				zap.Error(err))
			continue
		}
		if event != nil {
			result.Events = append(result.Events, event)
		}
	}

	transfers, err := c.escrowTransfers(ctx, blk)
	if err != nil {
		return nil, err
	}
	result.Events = append(result.Events, transfers...)

	sort.SliceStable(result.Events, func(i, j int) bool {
		a, b := result.Events[i].Meta(), result.Events[j].Meta()
		if a.TxIndex != b.TxIndex {
			return a.TxIndex < b.TxIndex
		}
		return a.LogIndex < b.LogIndex
	})

	return result, nil
}

// blockLogs fetches the tracked logs of a block by hash so a reorg cannot mix two blocks
func (c *ethereumClient) blockLogs(ctx context.Context, hash common.Hash) ([]types.Log, error) {
	topics := []common.Hash{transferEventSignature}
	if c.marketContract != (common.Address{}) {
		topics = append(topics,
			askEventSignature,
			askCancelledEventSignature,
			tradeEventSignature,
			depositedEventSignature,
			withdrawRequestedEventSignature)
	}

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	logs, err := c.client.FilterLogs(ctx, ethereum.FilterQuery{
		BlockHash: &hash,
		Topics:    [][]common.Hash{topics},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs: %w", err)
	}
	return logs, nil
}

// escrowTransfers collects the native transfers from or to escrow with their receipt status
func (c *ethereumClient) escrowTransfers(ctx context.Context, blk *types.Block) ([]chain.Event, error) {
	var events []chain.Event

	for i, tx := range blk.Transactions() {
		if tx.To() == nil || len(tx.Data()) != 0 || tx.Value().Sign() <= 0 {
			continue
		}

		from, err := types.Sender(c.signer, tx)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping transaction with unrecoverable sender",
				zap.String("tx_hash", tx.Hash().Hex()),
				zap.Error(err))
			continue
		}
		if from != c.escrow && *tx.To() != c.escrow {
			continue
		}

		receipt, err := c.receipt(ctx, tx.Hash())
		if err != nil {
			return nil, fmt.Errorf("failed to get receipt of %s: %w", tx.Hash().Hex(), err)
		}

		events = append(events, &chain.BalanceTransferred{
			EventMeta: chain.EventMeta{
				TxHash:  tx.Hash().Hex(),
				TxIndex: uint(i), //nolint:gosec,G115
			},
			From:      from.Hex(),
			To:        tx.To().Hex(),
			Amount:    decimal.NewFromBigInt(tx.Value(), 0),
			Succeeded: receipt.Status == types.ReceiptStatusSuccessful,
		})
	}

	return events, nil
}

// SubscribeNewHeads pushes new head numbers to ch until ctx is done or the subscription fails
func (c *ethereumClient) SubscribeNewHeads(ctx context.Context, ch chan<- uint64) error {
	if c.heads == nil {
		return fmt.Errorf("network %s has no websocket connection", c.network)
	}

	headers := make(chan *types.Header)
	sub, err := c.heads.SubscribeNewHead(ctx, headers)
	if err != nil {
		return fmt.Errorf("failed to subscribe to new heads: %w", err)
	}
	defer func() {
		sub.Unsubscribe()
		logger.InfoCtx(ctx, "Unsubscribed from new heads", zap.String("network", string(c.network)))
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("subscription error: %w", err)
		case header := <-headers:
			select {
			case ch <- header.Number.Uint64():
			default:
				// the consumer polls the finalized head anyway
			}
		}
	}
}

// Close closes the connections
func (c *ethereumClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
	if c.heads != nil {
		c.heads.Close()
	}
	logger.Info("Ethereum connection closed", zap.String("network", string(c.network)))
}

func isAlreadyKnown(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") || strings.Contains(msg, "known transaction")
}

func isNonceTooLow(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "nonce too low") || strings.Contains(msg, "replacement transaction underpriced")
}
