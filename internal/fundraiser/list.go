package fundraiser

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/session"
	"github.com/ethereum/go-ethereum/common"
)

// Summary is the on-chain state of one fundraiser.
type Summary struct {
	Address        common.Address
	Name           string
	URL            string
	ImageURL       string
	Description    string
	Beneficiary    common.Address
	TotalDonations *big.Int
	DonationsCount uint64
}

// Page is one slice of the factory's fundraisers.
type Page struct {
	Total  uint64
	Offset uint64
	Limit  uint64
	Items  []Summary
}

// List reads fundraisersCount and one page of fundraisers, then each
// fundraiser's details. A limit of 0 means the default page size.
func (c *Creator) List(ctx context.Context, sess *session.Session, limit, offset uint64) (*Page, error) {
	if !sess.Ready() {
		return nil, ErrSessionNotReady
	}
	if limit == 0 {
		limit = defaultPageLimit
	}

	factory := sess.Contract()
	out, err := factory.Call(ctx, MethodCount)
	if err != nil {
		return nil, err
	}
	v, err := firstOutput(MethodCount, out)
	if err != nil {
		return nil, err
	}
	total, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", MethodCount, v)
	}

	page := &Page{Total: total.Uint64(), Offset: offset, Limit: limit}
	// The factory rejects an offset past the end.
	if offset >= page.Total {
		return page, nil
	}

	out, err = factory.Call(ctx, MethodList, new(big.Int).SetUint64(limit), new(big.Int).SetUint64(offset))
	if err != nil {
		return nil, err
	}
	v, err = firstOutput(MethodList, out)
	if err != nil {
		return nil, err
	}
	addrs, ok := v.([]common.Address)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", MethodList, v)
	}

	b, _ := contract.GetBuiltin(contract.BuiltinFundraiser)
	for _, addr := range addrs {
		s, err := summarize(ctx, sess.Provider().Bind(b.ABI, addr))
		if err != nil {
			return nil, fmt.Errorf("fundraiser %s: %w", addr.Hex(), err)
		}
		page.Items = append(page.Items, *s)
	}
	c.log.Debug().Uint64("total", page.Total).Int("items", len(page.Items)).Msg("fundraisers listed")
	return page, nil
}

func summarize(ctx context.Context, h *contract.Handle) (*Summary, error) {
	s := &Summary{Address: h.Address()}
	call := func(method string) (interface{}, error) {
		out, err := h.Call(ctx, method)
		if err != nil {
			return nil, err
		}
		return firstOutput(method, out)
	}

	strs := []struct {
		method string
		dst    *string
	}{
		{"name", &s.Name},
		{"url", &s.URL},
		{"imageURL", &s.ImageURL},
		{"description", &s.Description},
	}
	for _, f := range strs {
		v, err := call(f.method)
		if err != nil {
			return nil, err
		}
		*f.dst, _ = v.(string)
	}

	v, err := call("beneficiary")
	if err != nil {
		return nil, err
	}
	s.Beneficiary, _ = v.(common.Address)

	if v, err = call("totalDonations"); err != nil {
		return nil, err
	}
	s.TotalDonations, _ = v.(*big.Int)

	if v, err = call("donationsCount"); err != nil {
		return nil, err
	}
	if n, ok := v.(*big.Int); ok {
		s.DonationsCount = n.Uint64()
	}
	return s, nil
}

// firstOutput returns the first decoded output of method. An ABI entry that
// declares no outputs decodes to an empty slice.
func firstOutput(method string, out []interface{}) (interface{}, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoOutput, method)
	}
	return out[0], nil
}
