package chain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

var (
	// ErrFinalityTimeout is returned when a submitted transaction did not reach finality in time.
	// The outcome is unknown; callers leave their records untouched so the scanner can settle them.
	ErrFinalityTimeout = errors.New("transaction finality timeout")

	// ErrUsurped is returned when another transaction took the nonce of the submitted one
	ErrUsurped = errors.New("transaction usurped")

	// ErrDropped is returned when a broadcast transaction disappeared from the network
	ErrDropped = errors.New("transaction dropped")

	// ErrInvalid is returned when a transaction is malformed or rejected by the node
	ErrInvalid = errors.New("invalid transaction")

	// ErrBlockUnreachable is returned when a requested block is ahead of the chain head.
	// It means the local scan position is wrong and the process must stop.
	ErrBlockUnreachable = errors.New("block unreachable")

	// ErrTxNotFound is returned when a transaction is unknown to the node
	ErrTxNotFound = errors.New("transaction not found")
)

// IsDefinitiveFailure reports whether err proves the transaction will never settle
func IsDefinitiveFailure(err error) bool {
	return errors.Is(err, ErrUsurped) || errors.Is(err, ErrDropped) || errors.Is(err, ErrInvalid)
}

// TransferKind is the kind of a decoded user transaction
type TransferKind string

const (
	// TransferKindBalance is a native balance transfer
	TransferKindBalance TransferKind = "balance"
	// TransferKindToken is an NFT transfer call on a collection contract
	TransferKindToken TransferKind = "token"
)

// SignedTransaction is a signed transaction ready for broadcast
type SignedTransaction struct {
	Hash  string
	From  string
	Nonce uint64
	// Raw is the 0x-prefixed binary encoding
	Raw string
}

// DecodedTransaction is a user-signed transaction converted at the chain boundary
type DecodedTransaction struct {
	Hash string
	Kind TransferKind
	// From is the signer
	From string
	// To is the recipient of the balance or of the token
	To     string
	Amount decimal.Decimal
	// Contract and TokenID are set for token transfers
	Contract string
	TokenID  string
	Signed   *SignedTransaction
}

// SubmitResult is the finalized outcome of a submitted transaction
type SubmitResult struct {
	IsSucceed   bool
	TxHash      string
	BlockHash   string
	BlockNumber uint64
}

// TxState is the state of a transaction as seen by the node
type TxState string

const (
	TxStateNotFound  TxState = "not_found"
	TxStatePending   TxState = "pending"
	TxStateSucceeded TxState = "succeeded"
	TxStateFailed    TxState = "failed"
)

// TransactionStatus is the result of a transaction lookup
type TransactionStatus struct {
	State       TxState
	BlockNumber uint64
	// Finalized is true once the including block is final and canonical
	Finalized bool
}

// Block is a finalized block with its escrow-relevant events
type Block struct {
	Number    uint64
	Hash      string
	Timestamp time.Time
	Events    []Event
}

// EventMeta locates an event within its block
type EventMeta struct {
	TxHash   string
	TxIndex  uint
	LogIndex uint
}

// Event is one of the typed events below
type Event interface {
	Meta() EventMeta
}

func (m EventMeta) Meta() EventMeta { return m }

// TokenTransferred is an ERC-721 transfer
type TokenTransferred struct {
	EventMeta
	Contract string
	From     string
	To       string
	TokenID  string
}

// AskCreated is a fixed-price listing created on the market contract
type AskCreated struct {
	EventMeta
	Collection string
	TokenID    string
	Seller     string
	Price      decimal.Decimal
}

// AskCancelled is a listing cancelled on the market contract
type AskCancelled struct {
	EventMeta
	Collection string
	TokenID    string
	Seller     string
}

// TradeExecuted is a listing bought on the market contract
type TradeExecuted struct {
	EventMeta
	Collection string
	TokenID    string
	Seller     string
	Buyer      string
	Price      decimal.Decimal
	Fee        decimal.Decimal
}

// DepositCompleted is a credit of an account on the market contract
type DepositCompleted struct {
	EventMeta
	Account string
	Amount  decimal.Decimal
}

// WithdrawRequested is an account asking the market to pay out its credit
type WithdrawRequested struct {
	EventMeta
	Account string
	Amount  decimal.Decimal
}

// BalanceTransferred is a native transfer involving the escrow account
type BalanceTransferred struct {
	EventMeta
	From      string
	To        string
	Amount    decimal.Decimal
	Succeeded bool
}

// Client is the per-network chain capability used by the engine
//
//go:generate mockgen -source=chain.go -destination=../mocks/chain.go -package=mocks -mock_names=Client=MockChainClient
type Client interface {
	// Network returns the network this client is bound to
	Network() domain.Network

	// EscrowAddress returns the escrow account address in canonical form
	EscrowAddress() string

	// DecodeTransaction decodes and verifies a user-signed transaction
	DecodeTransaction(raw string) (*DecodedTransaction, error)

	// BuildBalanceTransfer builds and signs a native transfer from escrow
	BuildBalanceTransfer(ctx context.Context, to string, amount decimal.Decimal) (*SignedTransaction, error)

	// BuildTokenTransfer builds and signs a token transfer from escrow
	BuildTokenTransfer(ctx context.Context, collection, tokenID, to string) (*SignedTransaction, error)

	// BuildDeposit builds and signs a market contract credit for an account
	BuildDeposit(ctx context.Context, account string, amount decimal.Decimal) (*SignedTransaction, error)

	// Submit broadcasts a signed transaction and waits until it is final.
	// A reverted transaction returns IsSucceed=false with a nil error.
	Submit(ctx context.Context, tx *SignedTransaction) (*SubmitResult, error)

	// TransactionStatus looks up a transaction by hash
	TransactionStatus(ctx context.Context, hash string) (*TransactionStatus, error)

	// NonceConsumed reports whether a finalized transaction of account used nonce or a later one.
	// A signed transaction whose nonce is consumed and which is not on chain can never be mined.
	NonceConsumed(ctx context.Context, account string, nonce uint64) (bool, error)

	// LatestBlock returns the head block number
	LatestBlock(ctx context.Context) (uint64, error)

	// FinalizedBlock returns the latest final block number
	FinalizedBlock(ctx context.Context) (uint64, error)

	// Block returns a block with its decoded events
	Block(ctx context.Context, number uint64) (*Block, error)

	// BlockTimestamp returns the timestamp of a block
	BlockTimestamp(ctx context.Context, number uint64) (time.Time, error)

	// SubscribeNewHeads pushes new head numbers to ch until ctx is done or the subscription fails
	SubscribeNewHeads(ctx context.Context, ch chan<- uint64) error

	// Close closes the connection
	Close()
}
