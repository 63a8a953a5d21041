package typeddata

import (
	"context"
	stderrors "errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/ahwlsqja/typed-data-verifier/internal/audit"
	"github.com/ahwlsqja/typed-data-verifier/internal/common/errors"
	"github.com/ahwlsqja/typed-data-verifier/internal/metrics"
	"github.com/ahwlsqja/typed-data-verifier/pkg/chain"
	"github.com/ahwlsqja/typed-data-verifier/pkg/eip712"
	"github.com/ahwlsqja/typed-data-verifier/pkg/nonce"
)

// Operation names used in metrics and logs
const (
	opValidate  = "validate"
	opHash      = "hash"
	opRecover   = "recover"
	opVerify    = "verify"
	opListAudit = "list_verifications"
	opContract  = "contract_address"
)

// Options configures chain enforcement and audit listing.
type Options struct {
	// ChainID is the chain the service operates on. 0 disables enforcement.
	ChainID        int64
	EnforceChainID bool
	AuditLimit     int
}

// Service handles typed-data business logic
type Service struct {
	verifier *eip712.Verifier
	chains   *chain.Registry
	replay   nonce.Store
	audit    audit.Repository
	metrics  *metrics.Metrics
	opts     Options
	logger   *zap.Logger
}

// NewService creates a new typed-data service. replay and repo may be nil,
// which disables replay protection and the audit trail respectively.
func NewService(
	verifier *eip712.Verifier,
	chains *chain.Registry,
	replay nonce.Store,
	repo audit.Repository,
	m *metrics.Metrics,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.AuditLimit <= 0 {
		opts.AuditLimit = 50
	}
	return &Service{
		verifier: verifier,
		chains:   chains,
		replay:   replay,
		audit:    repo,
		metrics:  m,
		opts:     opts,
		logger:   logger,
	}
}

// Validate checks the typed data against its declared types.
func (s *Service) Validate(ctx context.Context, req *TypedDataRequest) (*ValidateResponse, error) {
	start := time.Now()

	td, err := s.prepare(req)
	if err == nil {
		err = eip712.ValidateTypedData(td)
	}
	if err != nil {
		s.observe(opValidate, metrics.ResultInvalid, start)
		s.logger.Warn("typed data rejected",
			zap.String("primary_type", req.PrimaryType),
			zap.Error(err),
		)
		return nil, errors.FromTypedData(err)
	}

	s.observe(opValidate, metrics.ResultOK, start)
	return &ValidateResponse{Valid: true}, nil
}

// Hash computes the EIP-712 digest and its components.
func (s *Service) Hash(ctx context.Context, req *TypedDataRequest) (*HashResponse, error) {
	start := time.Now()

	digest, _, err := s.digest(req)
	if err != nil {
		s.observe(opHash, metrics.ResultInvalid, start)
		s.logger.Warn("failed to hash typed data",
			zap.String("primary_type", req.PrimaryType),
			zap.Error(err),
		)
		return nil, errors.FromTypedData(err)
	}

	s.observe(opHash, metrics.ResultOK, start)
	return toHashResponse(digest), nil
}

// Recover returns the address that signed the typed data.
func (s *Service) Recover(ctx context.Context, req *RecoverRequest) (*RecoverResponse, error) {
	start := time.Now()

	digest, _, err := s.digest(&req.TypedDataRequest)
	if err != nil {
		s.observe(opRecover, metrics.ResultInvalid, start)
		return nil, errors.FromTypedData(err)
	}

	recovered, err := s.verifier.RecoverAddress(digest.Hash, *req.Signature)
	if err != nil {
		s.observe(opRecover, metrics.ResultInvalid, start)
		s.logger.Warn("signer recovery failed",
			zap.String("digest", digest.Hash.Hex()),
			zap.Error(err),
		)
		return nil, errors.FromTypedData(err)
	}

	s.observe(opRecover, metrics.ResultOK, start)
	return &RecoverResponse{
		Address: recovered.Hex(),
		Digest:  digest.Hash.Hex(),
	}, nil
}

// Verify checks that req.Address signed the typed data. A signer mismatch is
// a successful call with Valid=false.
func (s *Service) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error) {
	start := time.Now()

	// 1. Claimed address
	claimed, err := eip712.GetAddress(req.Address)
	if err != nil {
		s.observe(opVerify, metrics.ResultInvalid, start)
		return nil, errors.FromTypedData(err)
	}

	// 2. Hash (includes chain enforcement and validation)
	digest, td, err := s.digest(&req.TypedDataRequest)
	if err != nil {
		s.observe(opVerify, metrics.ResultInvalid, start)
		s.logger.Warn("typed data rejected",
			zap.String("address", claimed.Hex()),
			zap.Error(err),
		)
		return nil, errors.FromTypedData(err)
	}

	// 3. Reserve the digest before recovery so concurrent replays lose
	consume := req.Consume && s.replay != nil
	if consume {
		if err := s.replay.Reserve(ctx, claimed, digest.Hash); err != nil {
			if stderrors.Is(err, nonce.ErrAlreadyUsed) {
				s.observe(opVerify, metrics.ResultReplayed, start)
				return nil, errors.ReplayedSignature().WithDetails(map[string]any{
					"digest": digest.Hash.Hex(),
				})
			}
			s.observe(opVerify, metrics.ResultError, start)
			return nil, errors.StoreUnavailable(err)
		}
	}

	// 4. Recover
	recovered, err := s.verifier.RecoverAddress(digest.Hash, *req.Signature)
	if err != nil {
		if consume {
			s.release(ctx, claimed, digest.Hash)
		}
		s.observe(opVerify, metrics.ResultInvalid, start)
		s.logger.Warn("signer recovery failed",
			zap.String("address", claimed.Hex()),
			zap.String("digest", digest.Hash.Hex()),
			zap.Error(err),
		)
		return nil, errors.FromTypedData(err)
	}
	valid := recovered == claimed

	// 5. Consume or release the reservation
	if consume {
		if valid {
			if err := s.replay.MarkUsed(ctx, claimed, digest.Hash); err != nil {
				s.release(ctx, claimed, digest.Hash)
				s.observe(opVerify, metrics.ResultError, start)
				return nil, errors.StoreUnavailable(err)
			}
		} else {
			s.release(ctx, claimed, digest.Hash)
		}
	}

	// 6. Audit trail, best effort
	s.record(ctx, td, claimed, recovered, digest.Hash, valid)

	result := metrics.ResultOK
	if !valid {
		result = metrics.ResultInvalid
		s.logger.Warn("signature does not match claimed signer",
			zap.String("address", claimed.Hex()),
			zap.String("recovered", recovered.Hex()),
			zap.String("digest", digest.Hash.Hex()),
		)
	} else {
		s.logger.Info("typed data signature verified",
			zap.String("address", claimed.Hex()),
			zap.String("primary_type", td.PrimaryType),
			zap.Bool("consumed", consume),
		)
	}
	s.observe(opVerify, result, start)

	return &VerifyResponse{
		Valid:     valid,
		Address:   claimed.Hex(),
		Recovered: recovered.Hex(),
		Digest:    digest.Hash.Hex(),
		Consumed:  consume && valid,
	}, nil
}

// ListVerifications returns the audit trail for a claimed signer.
func (s *Service) ListVerifications(ctx context.Context, address string, limit int) (*ListVerificationsResponse, error) {
	start := time.Now()

	if s.audit == nil {
		return nil, errors.NotFound("Audit trail")
	}
	signer, err := eip712.GetAddress(address)
	if err != nil {
		s.observe(opListAudit, metrics.ResultInvalid, start)
		return nil, errors.FromTypedData(err)
	}
	if limit <= 0 || limit > s.opts.AuditLimit {
		limit = s.opts.AuditLimit
	}

	records, err := s.audit.ListBySigner(ctx, signer, limit)
	if err != nil {
		s.observe(opListAudit, metrics.ResultError, start)
		s.logger.Error("failed to list verifications", zap.String("address", signer.Hex()), zap.Error(err))
		return nil, errors.DBError(err)
	}

	s.observe(opListAudit, metrics.ResultOK, start)
	return &ListVerificationsResponse{
		Verifications: toVerificationResponseList(records),
		Total:         len(records),
	}, nil
}

// ContractAddress resolves a named contract on a registered chain.
func (s *Service) ContractAddress(ctx context.Context, chainID int64, name string, blockNumber *uint64) (*ContractResponse, error) {
	start := time.Now()

	c, err := s.chains.Get(chainID)
	if err != nil {
		s.observe(opContract, metrics.ResultInvalid, start)
		return nil, errors.FromTypedData(err)
	}
	addr, err := chain.GetChainContractAddress(c, name, blockNumber)
	if err != nil {
		s.observe(opContract, metrics.ResultInvalid, start)
		return nil, errors.FromTypedData(err)
	}

	s.observe(opContract, metrics.ResultOK, start)
	return &ContractResponse{
		ChainID:      c.ID,
		ChainName:    c.Name,
		Contract:     name,
		Address:      addr.Hex(),
		BlockCreated: c.Contracts[name].BlockCreated,
	}, nil
}

// ============================================================================
// Helper functions
// ============================================================================

// digest prepares the request and computes its digest.
func (s *Service) digest(req *TypedDataRequest) (*eip712.Digest, eip712.TypedData, error) {
	td, err := s.prepare(req)
	if err != nil {
		return nil, td, err
	}
	d, err := eip712.ComputeDigest(td)
	return d, td, err
}

// prepare resolves a named verifying contract and enforces the configured
// chain. The request domain is never mutated.
func (s *Service) prepare(req *TypedDataRequest) (eip712.TypedData, error) {
	td := req.TypedData()
	if td.Domain != nil {
		domain := *td.Domain
		td.Domain = &domain
	}

	chainID, hasChainID := domainChainID(td.Domain)
	if td.Domain != nil && td.Domain.ChainID != nil && !hasChainID &&
		(req.Contract != "" || s.enforceChain()) {
		return td, errors.InvalidTypedData("domain.chainId is out of range").
			WithDetails(map[string]any{"chainId": (*big.Int)(td.Domain.ChainID).String()})
	}

	if hasChainID && s.enforceChain() {
		target, err := s.chains.Get(chainID)
		if err != nil {
			target = &chain.Chain{ID: chainID, Name: "unknown"}
		}
		if err := chain.AssertCurrentChain(target, s.opts.ChainID); err != nil {
			return td, err
		}
	}

	if req.Contract != "" {
		if !hasChainID {
			chainID = s.opts.ChainID
		}
		c, err := s.chains.Get(chainID)
		if err != nil {
			return td, err
		}
		addr, err := chain.GetChainContractAddress(c, req.Contract, req.BlockNumber)
		if err != nil {
			return td, err
		}
		if td.Domain == nil {
			td.Domain = &eip712.Domain{}
		}
		if td.Domain.VerifyingContract == nil {
			hex := addr.Hex()
			td.Domain.VerifyingContract = &hex
		} else if ok, err := eip712.IsAddressEqual(*td.Domain.VerifyingContract, addr.Hex()); err != nil {
			return td, err
		} else if !ok {
			return td, errors.InvalidTypedData("domain.verifyingContract does not match the named contract").
				WithDetails(map[string]any{
					"contract": req.Contract,
					"expected": addr.Hex(),
					"given":    *td.Domain.VerifyingContract,
				})
		}
	}
	return td, nil
}

// domainChainID returns the domain chain id when it is a positive int64.
func domainChainID(d *eip712.Domain) (int64, bool) {
	if d == nil || d.ChainID == nil {
		return 0, false
	}
	id := (*big.Int)(d.ChainID)
	if !id.IsInt64() || id.Sign() <= 0 {
		return 0, false
	}
	return id.Int64(), true
}

func (s *Service) enforceChain() bool {
	return s.opts.EnforceChainID && s.opts.ChainID != 0
}

func (s *Service) release(ctx context.Context, signer common.Address, digest common.Hash) {
	if err := s.replay.Release(ctx, signer, digest); err != nil {
		s.logger.Warn("failed to release digest reservation",
			zap.String("address", signer.Hex()),
			zap.String("digest", digest.Hex()),
			zap.Error(err),
		)
	}
}

// record writes the audit entry. Failures are logged and never fail the call.
func (s *Service) record(ctx context.Context, td eip712.TypedData, claimed, recovered common.Address, digest common.Hash, valid bool) {
	if s.audit == nil {
		return
	}

	rec := &audit.Record{
		Claimed:     claimed,
		Recovered:   recovered,
		Digest:      digest,
		PrimaryType: td.PrimaryType,
		Valid:       valid,
	}
	if id, ok := domainChainID(td.Domain); ok {
		rec.ChainID = &id
	}
	if td.Domain != nil && td.Domain.VerifyingContract != nil {
		addr := common.HexToAddress(*td.Domain.VerifyingContract)
		rec.VerifyingContract = &addr
	}

	if err := s.audit.Save(ctx, rec); err != nil {
		s.logger.Error("failed to record verification",
			zap.String("address", claimed.Hex()),
			zap.String("digest", digest.Hex()),
			zap.Error(err),
		)
	}
}

func (s *Service) observe(operation, result string, start time.Time) {
	if s.metrics != nil {
		s.metrics.Observe(operation, result, start)
	}
}
