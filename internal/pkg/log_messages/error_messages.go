package log_messages

const (
	FailedLoadingConfiguration = "Failed to load configuration"
	ServerStartFailure         = "Failed to start HTTP server"
	ServerExiting              = "Server exiting"

	EmptyDocumentFoundFromDb      = "No document found in collection"
	ErrorFetchingLoanRequestDoc   = "Error fetching LoanRequests document"
	ErrorFetchingLoanDoc          = "Error fetching Loans document"
	ErrorFetchingCustomerDoc      = "Error fetching Customers document"
	ErrorFetchingCollectionRules  = "Error fetching CollectionRules documents"
	ErrorFetchingProposalDoc      = "Error fetching RenegotiationProposals document"
	ErrorRecordingDispatch        = "Error recording reminder dispatch"
	ErrorInMessageSending         = "error while sending reminder message: %v"
	ErrorMarshallingMessage       = "error while marshalling message: %v"
	ErrorInMessagePublishing      = "error while publishing message: %v"
	ErrorPubSubClientCreation     = "error during pubsub client creation"
	TopicDoesNotExists            = "topic %s does not exist"
	BalanceDriftDetected          = "Cached remaining balance diverged from installment sum, repairing"
	CollectionPassStarted         = "Collection pass started"
	CollectionPassFinished        = "Collection pass finished"
	DispatchSkippedAlreadyFired   = "Reminder already dispatched for pair, skipping"
	DispatchSkippedLockHeld       = "Dispatch lock held by a concurrent pass, skipping"
	DispatchSenderFailure         = "Reminder sender reported failure, pair left unfired for retry"
	VerificationServiceFailure    = "Identity verification call failed"
	IntentClassificationFailure   = "Intent classification call failed, defaulting to support"
	SupplementalDocRequested      = "Supplemental documentation requested"
	SupplementalDocUploaded       = "Supplemental documentation uploaded, request back in review"
	ScoreOverridden               = "Customer score overridden by admin"
	PreApprovalGenerated          = "Pre-approved offer stored for customer"
)
