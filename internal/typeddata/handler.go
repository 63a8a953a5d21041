package typeddata

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ahwlsqja/typed-data-verifier/internal/common/errors"
	"github.com/ahwlsqja/typed-data-verifier/internal/common/middleware"
)

// TypedDataService is what the handler needs from Service.
type TypedDataService interface {
	Validate(ctx context.Context, req *TypedDataRequest) (*ValidateResponse, error)
	Hash(ctx context.Context, req *TypedDataRequest) (*HashResponse, error)
	Recover(ctx context.Context, req *RecoverRequest) (*RecoverResponse, error)
	Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error)
	ListVerifications(ctx context.Context, address string, limit int) (*ListVerificationsResponse, error)
	ContractAddress(ctx context.Context, chainID int64, name string, blockNumber *uint64) (*ContractResponse, error)
}

var _ TypedDataService = (*Service)(nil)

// Handler handles HTTP requests for typed-data operations
type Handler struct {
	service TypedDataService
}

// NewHandler creates a new typed-data handler
func NewHandler(service TypedDataService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers typed-data and chain routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	td := rg.Group("/typed-data")
	{
		td.POST("/validate", h.Validate)
		td.POST("/hash", h.Hash)
		td.POST("/recover", h.Recover)
		td.POST("/verify", h.Verify)
		td.GET("/verifications", h.ListVerifications)
	}
	rg.GET("/chains/:chainId/contracts/:name", h.ContractAddress)
}

// bindError keeps the codes of signature decoding errors. Everything else
// gin reports while binding is an input error.
func bindError(err error) *errors.AppError {
	if appErr := errors.FromTypedData(err); appErr.Code != errors.CodeInternal {
		return appErr
	}
	return errors.InvalidInput(err.Error())
}

// Validate godoc
// @Summary Validate typed data
// @Description Checks integer ranges, addresses and fixed byte lengths against the declared types
// @Tags typed-data
// @Accept json
// @Produce json
// @Param request body TypedDataRequest true "Typed data"
// @Success 200 {object} middleware.SuccessResponse{data=ValidateResponse} "Valid"
// @Failure 400 {object} middleware.ErrorResponse "Invalid typed data"
// @Failure 422 {object} middleware.ErrorResponse "Chain mismatch"
// @Router /api/v1/typed-data/validate [post]
func (h *Handler) Validate(c *gin.Context) {
	var req TypedDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, bindError(err))
		return
	}

	result, err := h.service.Validate(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// Hash godoc
// @Summary Hash typed data
// @Description Computes the EIP-712 digest, domain separator and struct hash
// @Tags typed-data
// @Accept json
// @Produce json
// @Param request body TypedDataRequest true "Typed data"
// @Success 200 {object} middleware.SuccessResponse{data=HashResponse} "Digest"
// @Failure 400 {object} middleware.ErrorResponse "Invalid typed data"
// @Failure 422 {object} middleware.ErrorResponse "Chain mismatch"
// @Router /api/v1/typed-data/hash [post]
func (h *Handler) Hash(c *gin.Context) {
	var req TypedDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, bindError(err))
		return
	}

	result, err := h.service.Hash(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// Recover godoc
// @Summary Recover typed data signer
// @Description Recovers the address that produced the signature over the typed data
// @Tags typed-data
// @Accept json
// @Produce json
// @Param request body RecoverRequest true "Typed data and signature"
// @Success 200 {object} middleware.SuccessResponse{data=RecoverResponse} "Signer"
// @Failure 400 {object} middleware.ErrorResponse "Invalid typed data or signature"
// @Failure 422 {object} middleware.ErrorResponse "Recovery failed"
// @Router /api/v1/typed-data/recover [post]
func (h *Handler) Recover(c *gin.Context) {
	var req RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, bindError(err))
		return
	}

	result, err := h.service.Recover(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// Verify godoc
// @Summary Verify typed data signature
// @Description Checks that the claimed address signed the typed data. A mismatch returns valid=false.
// @Tags typed-data
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Typed data, signature and claimed signer"
// @Success 200 {object} middleware.SuccessResponse{data=VerifyResponse} "Verification result"
// @Failure 400 {object} middleware.ErrorResponse "Invalid typed data or signature"
// @Failure 409 {object} middleware.ErrorResponse "Signature already used"
// @Failure 422 {object} middleware.ErrorResponse "Recovery failed or chain mismatch"
// @Failure 503 {object} middleware.ErrorResponse "Replay store unavailable"
// @Router /api/v1/typed-data/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, bindError(err))
		return
	}

	result, err := h.service.Verify(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// ListVerifications godoc
// @Summary List verifications
// @Description Audit trail of verifications for a claimed signer, newest first
// @Tags typed-data
// @Produce json
// @Param address query string true "Claimed signer address"
// @Param limit query int false "Maximum number of records"
// @Success 200 {object} middleware.SuccessResponse{data=ListVerificationsResponse} "Verifications"
// @Failure 400 {object} middleware.ErrorResponse "Invalid address"
// @Failure 404 {object} middleware.ErrorResponse "Audit trail disabled"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /api/v1/typed-data/verifications [get]
func (h *Handler) ListVerifications(c *gin.Context) {
	var req ListVerificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	result, err := h.service.ListVerifications(c.Request.Context(), req.Address, req.Limit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// ContractAddress godoc
// @Summary Resolve chain contract
// @Description Returns the address of a well-known contract on a registered chain
// @Tags chains
// @Produce json
// @Param chainId path int true "Chain ID"
// @Param name path string true "Contract name"
// @Param blockNumber query int false "Fail if the contract was deployed after this block"
// @Success 200 {object} middleware.SuccessResponse{data=ContractResponse} "Contract"
// @Failure 400 {object} middleware.ErrorResponse "Invalid parameters"
// @Failure 404 {object} middleware.ErrorResponse "Chain or contract not found"
// @Router /api/v1/chains/{chainId}/contracts/{name} [get]
func (h *Handler) ContractAddress(c *gin.Context) {
	var uri ContractAddressURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}
	var query ContractAddressQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	result, err := h.service.ContractAddress(c.Request.Context(), uri.ChainID, uri.Name, query.BlockNumber)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}
