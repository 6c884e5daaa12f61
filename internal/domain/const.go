package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Scanner start positions
	START_BLOCK_CURRENT = "current"
	START_BLOCK_LATEST  = "latest"

	// Percent base for market commission
	COMMISSION_PERCENT_BASE = 100
)
