package config

import "time"

// GasLimitFallback is used when the node cannot estimate gas for a
// createFundraiser call. It is a conservative upper bound.
const GasLimitFallback = uint64(3_000_000)

// Timeouts used by cmd.
const (
	RPCSelectTimeout      = 10 * time.Second // endpoint benchmark
	DefaultConfirmTimeout = 120              // seconds, see Config.ConfirmTimeout
	ReceiptPollInterval   = 2 * time.Second
)
