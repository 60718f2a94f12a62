package consts

// RequestStatus is the lifecycle state of a loan application.
type RequestStatus string

const (
	RequestStatusPending     RequestStatus = "PENDING"
	RequestStatusWaitingDocs RequestStatus = "WAITING_DOCS"
	RequestStatusApproved    RequestStatus = "APPROVED"
	RequestStatusRejected    RequestStatus = "REJECTED"
)

// InstallmentStatus is the persisted payment state of an installment.
// LATE is derived on read from the due date and is never written as-is.
type InstallmentStatus string

const (
	InstallmentStatusOpen InstallmentStatus = "OPEN"
	InstallmentStatusPaid InstallmentStatus = "PAID"
	InstallmentStatusLate InstallmentStatus = "LATE"
)

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "PENDING"
	ProposalStatusAccepted ProposalStatus = "ACCEPTED"
	ProposalStatusRejected ProposalStatus = "REJECTED"
	ProposalStatusExpired  ProposalStatus = "EXPIRED"
)

// ReminderChannel is the delivery channel of a collection rule.
type ReminderChannel string

const (
	ChannelWhatsApp ReminderChannel = "WHATSAPP"
	ChannelEmail    ReminderChannel = "EMAIL"
	ChannelSMS      ReminderChannel = "SMS"
)

// ScoreLevel buckets a numeric customer score.
type ScoreLevel string

const (
	ScoreLevelExcellent ScoreLevel = "EXCELLENT"
	ScoreLevelGood      ScoreLevel = "GOOD"
	ScoreLevelRegular   ScoreLevel = "REGULAR"
	ScoreLevelBad       ScoreLevel = "BAD"
	ScoreLevelCritical  ScoreLevel = "CRITICAL"
)

// MessageIntent is what the external classifier makes of an inbound message.
type MessageIntent string

const (
	IntentPaymentPromise MessageIntent = "PAYMENT_PROMISE"
	IntentRequestInvoice MessageIntent = "REQUEST_INVOICE"
	IntentSupport        MessageIntent = "SUPPORT"
	IntentUnknown        MessageIntent = "UNKNOWN"
)
