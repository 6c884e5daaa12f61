package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/api/rest/dto"
	"github.com/feral-file/ff-auction-engine/internal/auction"
	"github.com/feral-file/ff-auction-engine/internal/bid"
	"github.com/feral-file/ff-auction-engine/internal/domain"
	"github.com/feral-file/ff-auction-engine/internal/withdrawal"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// CreateAuction lists a token for auction
	// POST /api/v1/auctions
	CreateAuction(c *gin.Context)

	// Calculate returns the minimum next bid of a bidder
	// GET /api/v1/auctions/:collection_id/:token_id/calculation?bidder=<address>
	Calculate(c *gin.Context)

	// PlaceBid places a bid with a signed balance transfer
	// POST /api/v1/auctions/:collection_id/:token_id/bids
	PlaceBid(c *gin.Context)

	// Withdraw refunds the settled balance of an outbid bidder
	// POST /api/v1/auctions/:collection_id/:token_id/withdrawals
	Withdraw(c *gin.Context)

	// CancelAuction cancels an auction without bids
	// POST /api/v1/auctions/:collection_id/:token_id/cancel
	CancelAuction(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	auctions    auction.Service
	bids        bid.Service
	withdrawals withdrawal.Service
}

// NewHandler creates a new REST API handler
func NewHandler(auctions auction.Service, bids bid.Service, withdrawals withdrawal.Service) Handler {
	return &handler{
		auctions:    auctions,
		bids:        bids,
		withdrawals: withdrawals,
	}
}

// CreateAuction lists a token for auction
func (h *handler) CreateAuction(c *gin.Context) {
	var req dto.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	offer, err := h.auctions.CreateAuction(c.Request.Context(), auction.CreateAuctionRequest{
		CollectionID:      req.CollectionID,
		TokenID:           req.TokenID,
		StartPrice:        req.StartPrice,
		PriceStep:         req.PriceStep,
		StopAt:            req.StopAt,
		SignedTransaction: req.SignedTransaction,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create auction",
			zap.String("collection_id", req.CollectionID),
			zap.String("token_id", req.TokenID))
		return
	}

	status := http.StatusOK
	if offer.CurrentAuctionStatus() == domain.AuctionStatusCreated {
		status = http.StatusAccepted
	}
	c.JSON(status, dto.MapOfferToResponse(offer))
}

// Calculate returns the minimum next bid of a bidder
func (h *handler) Calculate(c *gin.Context) {
	var query dto.CalculationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	info, err := h.bids.Calculate(c.Request.Context(), c.Param("collection_id"), c.Param("token_id"), query.Bidder)
	if err != nil {
		respondServiceError(c, err, "Failed to calculate bid", zap.String("bidder", query.Bidder))
		return
	}

	c.JSON(http.StatusOK, dto.CalculationResponse{CalculationInfo: *info})
}

// PlaceBid places a bid with a signed balance transfer
func (h *handler) PlaceBid(c *gin.Context) {
	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	placed, err := h.bids.PlaceBid(c.Request.Context(), bid.PlaceBidRequest{
		CollectionID:      c.Param("collection_id"),
		TokenID:           c.Param("token_id"),
		SignedTransaction: req.SignedTransaction,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to place bid")
		return
	}

	c.JSON(bidStatusCode(placed.Status), dto.MapBidToResponse(placed))
}

// Withdraw refunds the settled balance of an outbid bidder
func (h *handler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	refund, err := h.withdrawals.Withdraw(c.Request.Context(), withdrawal.WithdrawRequest{
		CollectionID:  c.Param("collection_id"),
		TokenID:       c.Param("token_id"),
		BidderAddress: req.BidderAddress,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to withdraw", zap.String("bidder", req.BidderAddress))
		return
	}

	c.JSON(bidStatusCode(refund.Status), dto.MapBidToResponse(refund))
}

// CancelAuction cancels an auction without bids
func (h *handler) CancelAuction(c *gin.Context) {
	var req dto.CancelAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	offer, err := h.auctions.CancelAuction(c.Request.Context(), auction.CancelAuctionRequest{
		CollectionID:     c.Param("collection_id"),
		TokenID:          c.Param("token_id"),
		RequesterAddress: req.RequesterAddress,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to cancel auction", zap.String("requester", req.RequesterAddress))
		return
	}

	c.JSON(http.StatusOK, dto.MapOfferToResponse(offer))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-auction-engine",
	})
}

// bidStatusCode is 202 while the transfer outcome is unknown
func bidStatusCode(status domain.BidStatus) int {
	if status == domain.BidStatusMinting {
		return http.StatusAccepted
	}
	return http.StatusOK
}
