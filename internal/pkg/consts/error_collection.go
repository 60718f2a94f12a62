package consts

import "loanservicing/internal/pkg/models"

var (
	ErrorInvalidPrincipal = &models.CustomError{
		Code:    "LOAN_SERVICING_VALIDATION_PRINCIPAL_NOT_POSITIVE",
		Message: "principal must be greater than zero",
	}
	ErrorInvalidRate = &models.CustomError{
		Code:    "LOAN_SERVICING_VALIDATION_INTEREST_RATE_NEGATIVE",
		Message: "interest rate must not be negative",
	}
	ErrorInvalidInstallmentCount = &models.CustomError{
		Code:    "LOAN_SERVICING_VALIDATION_INSTALLMENT_COUNT_OUT_OF_RANGE",
		Message: "installment count out of allowed range",
	}
	ErrorInvalidRuleOffset = &models.CustomError{
		Code:    "LOAN_SERVICING_VALIDATION_RULE_OFFSET_OUT_OF_RANGE",
		Message: "collection rule day offset out of allowed range",
	}
	ErrorInvalidTransition = &models.CustomError{
		Code:    "LOAN_SERVICING_STATE_INVALID_TRANSITION",
		Message: "loan request state transition not permitted",
	}
	ErrorAlreadyPaid = &models.CustomError{
		Code:    "LOAN_SERVICING_STATE_INSTALLMENT_ALREADY_PAID",
		Message: "installment has already been paid",
	}
	ErrorAlreadyResolved = &models.CustomError{
		Code:    "LOAN_SERVICING_STATE_PROPOSAL_ALREADY_RESOLVED",
		Message: "renegotiation proposal is no longer pending",
	}
	ErrorProposalExpired = &models.CustomError{
		Code:    "LOAN_SERVICING_STATE_PROPOSAL_EXPIRED",
		Message: "renegotiation proposal has expired",
	}
	ErrorRequestNotFound = &models.CustomError{
		Code:    "LOAN_SERVICING_NOT_FOUND_LOAN_REQUEST",
		Message: "loan request not found",
	}
	ErrorLoanNotFound = &models.CustomError{
		Code:    "LOAN_SERVICING_NOT_FOUND_LOAN",
		Message: "loan not found",
	}
	ErrorInstallmentNotFound = &models.CustomError{
		Code:    "LOAN_SERVICING_NOT_FOUND_INSTALLMENT",
		Message: "installment not found",
	}
	ErrorProposalNotFound = &models.CustomError{
		Code:    "LOAN_SERVICING_NOT_FOUND_PROPOSAL",
		Message: "renegotiation proposal not found",
	}
	ErrorCustomerNotFound = &models.CustomError{
		Code:    "LOAN_SERVICING_NOT_FOUND_CUSTOMER",
		Message: "customer not found",
	}
	ErrorRuleNotFound = &models.CustomError{
		Code:    "LOAN_SERVICING_NOT_FOUND_COLLECTION_RULE",
		Message: "collection rule not found",
	}
	ErrorIdentityNotVerified = &models.CustomError{
		Code:    "LOAN_SERVICING_VERIFICATION_IDENTITY_MISMATCH",
		Message: "identity verification did not match",
	}
	ErrorVerificationUnavailable = &models.CustomError{
		Code:    "LOAN_SERVICING_REQUEST_VERIFICATION_SERVICE_FAILED",
		Message: "identity verification service failed",
	}
	ErrorMessageSendFailed = &models.CustomError{
		Code:    "LOAN_SERVICING_REQUEST_MESSAGE_SEND_FAILED",
		Message: "reminder message could not be delivered",
	}
	ErrorNoSupplementalRequest = &models.CustomError{
		Code:    "LOAN_SERVICING_STATE_NO_SUPPLEMENTAL_DOC_REQUESTED",
		Message: "no supplemental document was requested for this application",
	}
	ErrorScoreOutOfRange = &models.CustomError{
		Code:    "LOAN_SERVICING_VALIDATION_SCORE_OUT_OF_RANGE",
		Message: "score outside the permitted range",
	}
	ErrorPackageViolation = &models.CustomError{
		Code:    "LOAN_SERVICING_VALIDATION_LOAN_PACKAGE_BOUNDS",
		Message: "requested amount or term outside the selected package bounds",
	}
)
