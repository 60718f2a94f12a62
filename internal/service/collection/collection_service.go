package collection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/log_messages"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/pkg/utils"
	"loanservicing/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionService runs the reminder rules over every loan with open
// installments once a day and keeps the rule catalog.
type CollectionService struct {
	loans      interfaces.LoanRepositoryInterface
	rules      interfaces.CollectionRuleRepositoryInterface
	customers  interfaces.CustomerRepositoryInterface
	dispatches interfaces.DispatchRepositoryInterface
	store      interfaces.RedisStoreOperations
	sender     interfaces.MessageSender
	now        func() time.Time
}

func NewCollectionService(
	loans interfaces.LoanRepositoryInterface,
	rules interfaces.CollectionRuleRepositoryInterface,
	customers interfaces.CustomerRepositoryInterface,
	dispatches interfaces.DispatchRepositoryInterface,
	store interfaces.RedisStoreOperations,
	sender interfaces.MessageSender,
) *CollectionService {
	return &CollectionService{
		loans:      loans,
		rules:      rules,
		customers:  customers,
		dispatches: dispatches,
		store:      store,
		sender:     sender,
		now:        time.Now,
	}
}

// CreateRule validates and stores a reminder rule. Negative offsets remind
// before the due date, zero on the day, positive after.
func (s *CollectionService) CreateRule(ctx context.Context, rule *models.CollectionRules) (*models.CollectionRules, error) {
	if rule.OffsetDays < consts.MinRuleOffsetDays || rule.OffsetDays > consts.MaxRuleOffsetDays {
		return nil, consts.ErrorInvalidRuleOffset
	}
	if rule.Channel == "" {
		rule.Channel = consts.ChannelWhatsApp
	}

	now := s.now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	id, err := s.rules.CreateRule(ctx, rule)
	if err != nil {
		return nil, err
	}
	rule.ID = id
	return rule, nil
}

func (s *CollectionService) UpdateRule(ctx context.Context, ruleID primitive.ObjectID, rule *models.CollectionRules) error {
	if rule.OffsetDays < consts.MinRuleOffsetDays || rule.OffsetDays > consts.MaxRuleOffsetDays {
		return consts.ErrorInvalidRuleOffset
	}
	if _, err := s.rules.GetRuleByID(ctx, ruleID); err != nil {
		return err
	}
	return s.rules.UpdateRule(ctx, ruleID, rule)
}

func (s *CollectionService) SetRuleActive(ctx context.Context, ruleID primitive.ObjectID, active bool) error {
	if _, err := s.rules.GetRuleByID(ctx, ruleID); err != nil {
		return err
	}
	return s.rules.SetRuleActive(ctx, ruleID, active)
}

func (s *CollectionService) ListRules(ctx context.Context) ([]models.CollectionRules, error) {
	return s.rules.ListAllRules(ctx)
}

func (s *CollectionService) ListDispatches(ctx context.Context, loanID primitive.ObjectID) ([]models.ReminderDispatches, error) {
	return s.dispatches.ListDispatchesByLoan(ctx, loanID)
}

// PassSummary reports what a collection pass did.
type PassSummary struct {
	LoansScanned   int `json:"loansScanned"`
	RemindersSent  int `json:"remindersSent"`
	SkippedFired   int `json:"skippedFired"`
	SkippedLocked  int `json:"skippedLocked"`
	SenderFailures int `json:"senderFailures"`
}

// RunPass evaluates every active rule against every open installment. A rule
// matches when dueDate + offsetDays lands on today's calendar day. A pair
// fires at most once ever: the dispatch record is the durable fired set and
// is written only after the sender succeeds, so failures retry on the next
// pass. A short Redis lock is taken per pair before the fired set is read,
// so the check-send-record window is closed to overlapping passes.
func (s *CollectionService) RunPass(ctx context.Context) (*PassSummary, error) {
	today := utils.TruncateToDay(s.now())
	summary := &PassSummary{}

	logger.CtxInfo(ctx, log_messages.CollectionPassStarted,
		slog.String("day", today.Format(consts.ReminderDateFormat)))

	rules, err := s.rules.ListActiveRules(ctx)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		logger.CtxInfo(ctx, log_messages.CollectionPassFinished, slog.Int("reminders_sent", 0))
		return summary, nil
	}

	loans, err := s.loans.ListLoansWithOpenInstallments(ctx)
	if err != nil {
		return nil, err
	}

	for i := range loans {
		loan := &loans[i]
		summary.LoansScanned++

		customer, err := s.customers.GetCustomerByID(ctx, loan.CustomerID)
		if err != nil {
			logger.CtxError(ctx, log_messages.ErrorFetchingCustomerDoc, err,
				slog.String("loan_id", loan.ID.Hex()))
			continue
		}

		for _, inst := range loan.Installments {
			if inst.Status == consts.InstallmentStatusPaid {
				continue
			}
			for _, rule := range rules {
				target := inst.DueDate.AddDate(0, 0, int(rule.OffsetDays))
				if !utils.SameCalendarDay(target, today) {
					continue
				}
				s.fire(ctx, loan, customer, inst, rule, summary)
			}
		}
	}

	logger.CtxInfo(ctx, log_messages.CollectionPassFinished,
		slog.Int("loans_scanned", summary.LoansScanned),
		slog.Int("reminders_sent", summary.RemindersSent),
		slog.Int("skipped_fired", summary.SkippedFired),
		slog.Int("sender_failures", summary.SenderFailures),
	)
	return summary, nil
}

func (s *CollectionService) fire(
	ctx context.Context,
	loan *models.Loans,
	customer *models.Customers,
	inst models.Installment,
	rule models.CollectionRules,
	summary *PassSummary,
) {
	pairKey := fmt.Sprintf("%s:%d", loan.ID.Hex(), inst.Index)
	locked, err := s.store.AcquireDispatchLock(ctx, pairKey, rule.ID.Hex())
	if err != nil {
		return
	}
	if !locked {
		logger.CtxDebug(ctx, log_messages.DispatchSkippedLockHeld,
			slog.String("loan_id", loan.ID.Hex()),
			slog.String("rule_id", rule.ID.Hex()),
		)
		summary.SkippedLocked++
		return
	}
	defer func() {
		_ = s.store.ReleaseDispatchLock(ctx, pairKey, rule.ID.Hex())
	}()

	// The fired set is only consulted while holding the lock. A check made
	// before another pass recorded its dispatch would be stale once that
	// pass releases the lock, and the pair would send twice.
	fired, err := s.dispatches.HasDispatch(ctx, loan.ID, inst.Index, rule.ID)
	if err != nil {
		return
	}
	if fired {
		logger.CtxDebug(ctx, log_messages.DispatchSkippedAlreadyFired,
			slog.String("loan_id", loan.ID.Hex()),
			slog.Int("installment_index", int(inst.Index)),
			slog.String("rule_id", rule.ID.Hex()),
		)
		summary.SkippedFired++
		return
	}

	message := RenderTemplate(rule.MessageTemplate, customer.FullName, inst.Amount, inst.DueDate)
	if err := s.sender.Send(ctx, rule.Channel, customer.Phone, message); err != nil {
		logger.CtxWarn(ctx, log_messages.DispatchSenderFailure,
			slog.String("loan_id", loan.ID.Hex()),
			slog.Int("installment_index", int(inst.Index)),
			slog.String("rule_id", rule.ID.Hex()),
			slog.String("error", err.Error()),
		)
		summary.SenderFailures++
		return
	}

	dispatch := &models.ReminderDispatches{
		LoanID:           loan.ID,
		InstallmentIndex: inst.Index,
		RuleID:           rule.ID,
		Channel:          rule.Channel,
		Recipient:        customer.Phone,
		RenderedMessage:  message,
		SentAt:           s.now().UTC(),
	}
	if err := s.dispatches.RecordDispatch(ctx, dispatch); err != nil {
		// The reminder went out but the fired set write failed. The pair may
		// fire again next pass; reminders are at-least-once on this path.
		return
	}
	summary.RemindersSent++
}

// RenderTemplate substitutes the rule placeholders into the message body.
func RenderTemplate(template, name string, amount float64, dueDate time.Time) string {
	out := strings.ReplaceAll(template, consts.PlaceholderName, name)
	out = strings.ReplaceAll(out, consts.PlaceholderAmount, fmt.Sprintf("%.2f", amount))
	out = strings.ReplaceAll(out, consts.PlaceholderDueDate, dueDate.Format(consts.ReminderDateFormat))
	return out
}
