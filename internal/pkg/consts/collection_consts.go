package consts

import "time"

// Mongo collection names.
const (
	LoanRequestsCollection       = "LoanRequests"
	LoansCollection              = "Loans"
	CustomersCollection          = "Customers"
	CollectionRulesCollection    = "CollectionRules"
	ProposalsCollection          = "RenegotiationProposals"
	ReminderDispatchesCollection = "ReminderDispatches"
	InteractionLogsCollection    = "InteractionLogs"
)

// Template placeholders substituted at fire time.
const (
	PlaceholderName    = "{name}"
	PlaceholderAmount  = "{amount}"
	PlaceholderDueDate = "{dueDate}"
)

// Collection rule offsets are bounded to a practical window around the due date.
const (
	MinRuleOffsetDays = -30
	MaxRuleOffsetDays = 60
)

// Renegotiation term bounds.
const (
	MinRenegotiationInstallments = 2
	MaxRenegotiationInstallments = 24
)

// Installment due dates advance in fixed 30-day periods from the start date,
// matching the originating product, rather than calendar months.
const InstallmentPeriodDays = 30

// Customer score bounds and level thresholds.
const (
	ScoreFloor   = 0
	ScoreCeiling = 1000
	ScoreInitial = 500

	ScoreLevelExcellentMin = 800
	ScoreLevelGoodMin      = 650
	ScoreLevelRegularMin   = 500
	ScoreLevelBadMin       = 300
)

// Scoring weights. On-time history and tenure push the score up, delinquency
// pulls it down, always clamped to the floor/ceiling.
const (
	ScoreOnTimeBonus      = 15
	ScoreTenureMonthBonus = 5
	ScoreLatePenalty      = 40
	ScoreDelayDayPenalty  = 2

	SuggestedLimitMultiplier = 3
	PreApprovalValidityDays  = 30
	DefaultOfferInstallments = 12
)

const (
	ReminderDateFormat  = "02/01/2006"
	DispatchLockTTL     = 5 * time.Minute
	FiredPairKeyPattern = "loanservicing:dispatch:%s:%s" // installmentID, ruleID
)
