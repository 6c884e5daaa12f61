package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-auction-engine/internal/chain"
	"github.com/feral-file/ff-auction-engine/internal/domain"
)

const erc721ABIJSON = `[
  {"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"outputs":[]}
]`

const marketABIJSON = `[
  {"type":"function","name":"credit","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
  {"type":"event","name":"Ask","anonymous":false,"inputs":[{"name":"collection","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"seller","type":"address","indexed":true},{"name":"price","type":"uint256","indexed":false}]},
  {"type":"event","name":"AskCancelled","anonymous":false,"inputs":[{"name":"collection","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"seller","type":"address","indexed":true}]},
  {"type":"event","name":"Trade","anonymous":false,"inputs":[{"name":"collection","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true},{"name":"buyer","type":"address","indexed":true},{"name":"seller","type":"address","indexed":false},{"name":"price","type":"uint256","indexed":false},{"name":"fee","type":"uint256","indexed":false}]},
  {"type":"event","name":"Deposited","anonymous":false,"inputs":[{"name":"account","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"WithdrawRequested","anonymous":false,"inputs":[{"name":"account","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}]}
]`

var (
	erc721ABI = mustParseABI(erc721ABIJSON)
	marketABI = mustParseABI(marketABIJSON)

	// ERC721 Transfer(address indexed from, address indexed to, uint256 indexed tokenId)
	transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	askEventSignature               = marketABI.Events["Ask"].ID
	askCancelledEventSignature      = marketABI.Events["AskCancelled"].ID
	tradeEventSignature             = marketABI.Events["Trade"].ID
	depositedEventSignature         = marketABI.Events["Deposited"].ID
	withdrawRequestedEventSignature = marketABI.Events["WithdrawRequested"].ID
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("invalid contract ABI: %v", err))
	}
	return parsed
}

// parseLog converts a log into a typed chain event.
// It returns nil for logs the engine does not track.
func parseLog(vLog types.Log, marketContract common.Address) (chain.Event, error) {
	if len(vLog.Topics) == 0 {
		return nil, nil
	}

	meta := chain.EventMeta{
		TxHash:   vLog.TxHash.Hex(),
		TxIndex:  vLog.TxIndex,
		LogIndex: vLog.Index,
	}

	if vLog.Topics[0] == transferEventSignature {
		// ERC20 shares the signature with 3 topics; only ERC721 carries the token id as the 4th
		if len(vLog.Topics) != 4 {
			return nil, nil
		}
		return &chain.TokenTransferred{
			EventMeta: meta,
			Contract:  vLog.Address.Hex(),
			From:      common.BytesToAddress(vLog.Topics[1].Bytes()).Hex(),
			To:        common.BytesToAddress(vLog.Topics[2].Bytes()).Hex(),
			TokenID:   new(big.Int).SetBytes(vLog.Topics[3].Bytes()).String(),
		}, nil
	}

	if vLog.Address != marketContract {
		return nil, nil
	}

	event, err := marketABI.EventByID(vLog.Topics[0])
	if err != nil {
		return nil, nil
	}

	values := make(map[string]any)
	if err := marketABI.UnpackIntoMap(values, event.Name, vLog.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack %s data: %w", event.Name, err)
	}

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if err := abi.ParseTopicsIntoMap(values, indexed, vLog.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse %s topics: %w", event.Name, err)
	}

	switch vLog.Topics[0] {
	case askEventSignature:
		return &chain.AskCreated{
			EventMeta:  meta,
			Collection: addressValue(values, "collection"),
			TokenID:    bigValue(values, "tokenId").String(),
			Seller:     addressValue(values, "seller"),
			Price:      decimal.NewFromBigInt(bigValue(values, "price"), 0),
		}, nil

	case askCancelledEventSignature:
		return &chain.AskCancelled{
			EventMeta:  meta,
			Collection: addressValue(values, "collection"),
			TokenID:    bigValue(values, "tokenId").String(),
			Seller:     addressValue(values, "seller"),
		}, nil

	case tradeEventSignature:
		return &chain.TradeExecuted{
			EventMeta:  meta,
			Collection: addressValue(values, "collection"),
			TokenID:    bigValue(values, "tokenId").String(),
			Seller:     addressValue(values, "seller"),
			Buyer:      addressValue(values, "buyer"),
			Price:      decimal.NewFromBigInt(bigValue(values, "price"), 0),
			Fee:        decimal.NewFromBigInt(bigValue(values, "fee"), 0),
		}, nil

	case depositedEventSignature:
		return &chain.DepositCompleted{
			EventMeta: meta,
			Account:   addressValue(values, "account"),
			Amount:    decimal.NewFromBigInt(bigValue(values, "amount"), 0),
		}, nil

	case withdrawRequestedEventSignature:
		return &chain.WithdrawRequested{
			EventMeta: meta,
			Account:   addressValue(values, "account"),
			Amount:    decimal.NewFromBigInt(bigValue(values, "amount"), 0),
		}, nil
	}

	return nil, nil
}

// decodeTokenCall decodes an ERC721 transfer call
func decodeTokenCall(data []byte) (from, to common.Address, tokenID *big.Int, err error) {
	if len(data) < 4 {
		return from, to, nil, fmt.Errorf("%w: call data too short", chain.ErrInvalid)
	}

	method, err := erc721ABI.MethodById(data[:4])
	if err != nil {
		return from, to, nil, fmt.Errorf("%w: unsupported call", chain.ErrInvalid)
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil || len(args) != 3 {
		return from, to, nil, fmt.Errorf("%w: malformed %s arguments", chain.ErrInvalid, method.Name)
	}

	from, okFrom := args[0].(common.Address)
	to, okTo := args[1].(common.Address)
	tokenID, okToken := args[2].(*big.Int)
	if !okFrom || !okTo || !okToken {
		return from, to, nil, fmt.Errorf("%w: malformed %s arguments", chain.ErrInvalid, method.Name)
	}

	return from, to, tokenID, nil
}

func addressValue(values map[string]any, key string) string {
	if address, ok := values[key].(common.Address); ok {
		return address.Hex()
	}
	return domain.ETHEREUM_ZERO_ADDRESS
}

func bigValue(values map[string]any, key string) *big.Int {
	if value, ok := values[key].(*big.Int); ok {
		return value
	}
	return new(big.Int)
}
