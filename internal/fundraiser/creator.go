// Package fundraiser implements the creation flow and the home listing on
// top of a bootstrapped session.
package fundraiser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/logging"
	"github.com/Mohsinsiddi/fundraiser/internal/session"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// Contract methods and events used by the flow.
const (
	MethodCreate = "createFundraiser"
	MethodCount  = "fundraisersCount"
	MethodList   = "fundraisers"
	EventCreated = "FundraiserCreated"
)

// SuccessMessage is the notification shown after a confirmed creation.
const SuccessMessage = "Successfully created fundraiser!"

const defaultPageLimit = 10

// Errors.
var (
	ErrSessionNotReady = errors.New("provider, accounts, or contract not loaded")
	ErrReverted        = errors.New("fundraiser creation reverted")
	ErrNoOutput        = errors.New("method returned no values")
)

// Receipt describes a confirmed createFundraiser transaction.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	From        common.Address
	// Fundraiser is the created contract, from the FundraiserCreated event.
	// Zero when the factory emitted no such event.
	Fundraiser common.Address
}

// Notifier shows the outcome of a submission to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// Creator runs the creation flow.
type Creator struct {
	confirmTimeout time.Duration
	log            zerolog.Logger
}

// Option configures a Creator.
type Option func(*Creator)

// WithConfirmTimeout bounds the wait for the transaction to be mined.
func WithConfirmTimeout(d time.Duration) Option {
	return func(c *Creator) {
		if d > 0 {
			c.confirmTimeout = d
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Creator) {
		c.log = logging.For(l, logging.ComponentFundraiser)
	}
}

// NewCreator returns a Creator with the default confirmation timeout.
func NewCreator(opts ...Option) *Creator {
	c := &Creator{
		confirmTimeout: config.DefaultConfirmTimeout * time.Second,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create sends createFundraiser from the session's first account and waits
// until it is mined. Nothing is sent unless sess is ready and the
// beneficiary parses.
func (c *Creator) Create(ctx context.Context, sess *session.Session, d Draft) (*Receipt, error) {
	if !sess.Ready() {
		return nil, ErrSessionNotReady
	}
	args, err := d.Args()
	if err != nil {
		return nil, err
	}

	handle := sess.Contract()
	from := sess.Sender()
	hash, err := handle.Transact(ctx, from, MethodCreate, args...)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("tx", hash.Hex()).Str("from", from.Hex()).Str("factory", handle.Address().Hex()).Msg("createFundraiser sent")

	waitCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()
	mined, err := handle.Confirm(waitCtx, hash)
	if err != nil {
		if errors.Is(err, chain.ErrTxReverted) {
			return c.receipt(handle.ABI().Events[EventCreated].ID, from, mined), fmt.Errorf("%w (tx %s)", ErrReverted, hash.Hex())
		}
		return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), err)
	}

	r := c.receipt(handle.ABI().Events[EventCreated].ID, from, mined)
	if r == nil {
		return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), chain.ErrNotMined)
	}
	c.log.Debug().Uint64("block", r.BlockNumber).Str("fundraiser", r.Fundraiser.Hex()).Msg("createFundraiser mined")
	return r, nil
}

// Submit runs Create and emits exactly one notification: success or error.
// The error is also returned so the caller can branch on it.
func (c *Creator) Submit(ctx context.Context, sess *session.Session, d Draft, n Notifier) (*Receipt, error) {
	r, err := c.Create(ctx, sess, d)
	if err != nil {
		c.log.Debug().Err(err).Msg("createFundraiser failed")
		n.Error("Failed to create fundraiser.", err)
		return r, err
	}
	n.Success(SuccessMessage)
	return r, nil
}

func (c *Creator) receipt(createdTopic common.Hash, from common.Address, mined *chain.Receipt) *Receipt {
	if mined == nil {
		return nil
	}
	r := &Receipt{
		TxHash:      mined.Hash,
		BlockNumber: mined.BlockNumber,
		GasUsed:     mined.GasUsed,
		From:        from,
	}
	for _, l := range mined.Logs {
		// FundraiserCreated(address indexed fundraiser, address indexed owner)
		if len(l.Topics) >= 2 && l.Topics[0] == createdTopic {
			r.Fundraiser = common.BytesToAddress(l.Topics[1].Bytes())
			break
		}
	}
	return r
}
