package errors

import (
	stderrors "errors"

	"github.com/ahwlsqja/typed-data-verifier/pkg/chain"
	"github.com/ahwlsqja/typed-data-verifier/pkg/eip712"
)

// FromTypedData maps typed-data, signature and chain errors onto AppErrors.
// Errors it does not recognise become INTERNAL_ERROR.
func FromTypedData(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var (
		intErr      *eip712.IntegerOutOfRangeError
		addrErr     *eip712.InvalidAddressError
		sizeErr     *eip712.BytesSizeMismatchError
		typeErr     *eip712.UnsupportedTypeError
		valueErr    *eip712.InvalidValueError
		sigErr      *eip712.SignatureMalformedError
		recoverErr  *eip712.RecoveryFailedError
		notFoundErr *chain.ChainNotFoundError
		mismatchErr *chain.ChainMismatchError
		contractErr *chain.ChainDoesNotSupportContractError
	)

	switch {
	case stderrors.As(err, &intErr):
		return InvalidTypedData(intErr.Error()).WithError(err).WithDetails(map[string]any{
			"field": intErr.Field,
			"type":  intErr.Type,
			"value": intErr.Value,
		})
	case stderrors.As(err, &addrErr):
		return InvalidTypedData(addrErr.Error()).WithError(err).WithDetails(map[string]any{
			"address": addrErr.Address,
		})
	case stderrors.As(err, &sizeErr):
		return InvalidTypedData(sizeErr.Error()).WithError(err).WithDetails(map[string]any{
			"field":        sizeErr.Field,
			"expectedSize": sizeErr.ExpectedSize,
			"givenSize":    sizeErr.GivenSize,
		})
	case stderrors.As(err, &typeErr):
		return InvalidTypedData(typeErr.Error()).WithError(err).WithDetails(map[string]any{
			"type": typeErr.Type,
		})
	case stderrors.As(err, &valueErr):
		return InvalidTypedData(valueErr.Error()).WithError(err).WithDetails(map[string]any{
			"field": valueErr.Field,
			"type":  valueErr.Type,
		})
	case stderrors.As(err, &sigErr):
		return InvalidSignature(sigErr.Error()).WithError(err)
	case stderrors.As(err, &recoverErr):
		return RecoveryFailed(err)
	case stderrors.As(err, &mismatchErr):
		return ChainMismatch(mismatchErr.Error()).WithError(err).WithDetails(map[string]any{
			"chainId":        mismatchErr.ChainID,
			"currentChainId": mismatchErr.CurrentChainID,
		})
	case stderrors.As(err, &notFoundErr):
		return NotFound("chain").WithError(err).WithDetails(map[string]any{
			"chainId": notFoundErr.ChainID,
		})
	case stderrors.As(err, &contractErr):
		return NotFound("contract").WithError(err).WithDetails(map[string]any{
			"chainId":  contractErr.ChainID,
			"contract": contractErr.Contract,
		})
	}
	return Internal("An unexpected error occurred").WithError(err)
}
