package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

var _ apiconnect.SplitServiceHandler = (*SplitService)(nil)

// SplitService implements the Connect SplitService. It is stateless.
type SplitService struct{}

// NewSplitService creates a new SplitService.
func NewSplitService() *SplitService {
	return &SplitService{}
}

// CalculateSplit previews how a receipt divides among participants,
// including proportional tax.
func (s *SplitService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	items := make([]calculator.Item, len(req.Msg.Items))
	for i, item := range req.Msg.Items {
		slog.DebugContext(ctx, "Processing item",
			"index", i+1,
			"description", item.Description,
			"amount", item.Amount,
			"participants", item.ParticipantIDs,
		)
		items[i] = calculator.Item{
			Description: item.Description,
			Amount:      item.Amount,
			AssignedTo:  item.ParticipantIDs,
		}
	}

	if req.Msg.Total < req.Msg.Subtotal {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("total %.2f is below subtotal %.2f", req.Msg.Total, req.Msg.Subtotal))
	}

	splits, err := calculator.CalculateSplit(items, req.Msg.Total, req.Msg.Subtotal, req.Msg.ParticipantIDs)
	if err != nil {
		slog.WarnContext(ctx, "CalculateSplit failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	out := make(map[string]api.PersonSplit, len(splits))
	for person, split := range splits {
		slog.DebugContext(ctx, "Person split",
			"person", person,
			"subtotal", split.Subtotal,
			"tax", split.Tax,
			"total", split.Total,
		)
		out[person] = api.PersonSplit{
			Subtotal: split.Subtotal,
			Tax:      split.Tax,
			Total:    split.Total,
		}
	}

	shares := calculator.ToShares(splits, req.Msg.ParticipantIDs, req.Msg.Total)
	apiShares := make([]api.SplitInput, len(shares))
	for i, sh := range shares {
		apiShares[i] = api.SplitInput{UserID: sh.UserID, Amount: sh.Amount}
	}

	return connect.NewResponse(&api.CalculateSplitResponse{Splits: out, Shares: apiShares}), nil
}
