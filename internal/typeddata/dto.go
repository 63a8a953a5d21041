package typeddata

import (
	"time"

	"github.com/ahwlsqja/typed-data-verifier/internal/audit"
	"github.com/ahwlsqja/typed-data-verifier/pkg/eip712"
)

// ============================================================================
// Request DTOs
// ============================================================================

// TypedDataRequest carries an EIP-712 definition. Contract optionally names
// a chain registry contract that fills domain.verifyingContract.
type TypedDataRequest struct {
	Domain      *eip712.Domain `json:"domain,omitempty"`
	Types       eip712.Types   `json:"types" binding:"required"`
	PrimaryType string         `json:"primaryType" binding:"required" example:"Mail"`
	Message     eip712.Message `json:"message"`
	Contract    string         `json:"contract,omitempty" example:"multicall3"`
	BlockNumber *uint64        `json:"blockNumber,omitempty" example:"19000000"`
}

// TypedData returns the library form of the request.
func (r *TypedDataRequest) TypedData() eip712.TypedData {
	return eip712.TypedData{
		Domain:      r.Domain,
		Types:       r.Types,
		PrimaryType: r.PrimaryType,
		Message:     r.Message,
	}
}

// RecoverRequest is typed data plus a signature, either a hex string or an
// {r, s, v | yParity} object.
type RecoverRequest struct {
	TypedDataRequest
	Signature *eip712.Signature `json:"signature" binding:"required" swaggertype:"string" example:"0x4355c47d...1c"`
}

// VerifyRequest checks that Address signed the typed data. With Consume set
// the signature is recorded and later attempts to verify it are rejected.
type VerifyRequest struct {
	RecoverRequest
	Address string `json:"address" binding:"required" example:"0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"`
	Consume bool   `json:"consume,omitempty" example:"false"`
}

// ListVerificationsRequest represents query parameters for the audit trail
type ListVerificationsRequest struct {
	Address string `form:"address" binding:"required"`
	Limit   int    `form:"limit" binding:"omitempty,min=1"`
}

// ContractAddressURI represents the path of a contract lookup
type ContractAddressURI struct {
	ChainID int64  `uri:"chainId" binding:"required,min=1"`
	Name    string `uri:"name" binding:"required"`
}

// ContractAddressQuery represents the optional deployment block filter
type ContractAddressQuery struct {
	BlockNumber *uint64 `form:"blockNumber"`
}

// ============================================================================
// Response DTOs
// ============================================================================

type ValidateResponse struct {
	Valid bool `json:"valid" example:"true"`
}

type HashResponse struct {
	Digest          string `json:"digest" example:"0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd2"`
	DomainSeparator string `json:"domainSeparator" example:"0xf2cee375fa42b42143804025fc449deafd50cc031ca257e0b194a650a912090f"`
	StructHash      string `json:"structHash" example:"0xc52c0ee5d84264471806290a3f2c4cecfc5490626bf912d01f240d7a274b371e"`
	TypeString      string `json:"typeString" example:"Mail(Person from,Person to,string contents)Person(string name,address wallet)"`
}

type RecoverResponse struct {
	Address string `json:"address" example:"0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"`
	Digest  string `json:"digest"`
}

type VerifyResponse struct {
	Valid     bool   `json:"valid" example:"true"`
	Address   string `json:"address" example:"0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"`
	Recovered string `json:"recovered" example:"0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"`
	Digest    string `json:"digest"`
	Consumed  bool   `json:"consumed" example:"false"`
}

type VerificationResponse struct {
	ID                string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Address           string    `json:"address"`
	Recovered         string    `json:"recovered"`
	Digest            string    `json:"digest"`
	PrimaryType       string    `json:"primaryType"`
	ChainID           *int64    `json:"chainId,omitempty"`
	VerifyingContract string    `json:"verifyingContract,omitempty"`
	Valid             bool      `json:"valid"`
	CreatedAt         time.Time `json:"createdAt"`
}

type ListVerificationsResponse struct {
	Verifications []VerificationResponse `json:"verifications"`
	Total         int                    `json:"total"`
}

type ContractResponse struct {
	ChainID      int64  `json:"chainId" example:"1"`
	ChainName    string `json:"chainName" example:"Ethereum"`
	Contract     string `json:"contract" example:"multicall3"`
	Address      string `json:"address" example:"0xcA11bde05977b3631167028862bE2a173976CA11"`
	BlockCreated uint64 `json:"blockCreated,omitempty" example:"14353601"`
}

// ============================================================================
// Converters
// ============================================================================

func toHashResponse(d *eip712.Digest) *HashResponse {
	return &HashResponse{
		Digest:          d.Hash.Hex(),
		DomainSeparator: d.DomainSeparator.Hex(),
		StructHash:      d.StructHash.Hex(),
		TypeString:      d.TypeString,
	}
}

func toVerificationResponse(rec *audit.Record) VerificationResponse {
	resp := VerificationResponse{
		ID:          rec.ID,
		Address:     rec.Claimed.Hex(),
		Recovered:   rec.Recovered.Hex(),
		Digest:      rec.Digest.Hex(),
		PrimaryType: rec.PrimaryType,
		ChainID:     rec.ChainID,
		Valid:       rec.Valid,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.VerifyingContract != nil {
		resp.VerifyingContract = rec.VerifyingContract.Hex()
	}
	return resp
}

func toVerificationResponseList(records []audit.Record) []VerificationResponse {
	responses := make([]VerificationResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toVerificationResponse(&records[i]))
	}
	return responses
}
