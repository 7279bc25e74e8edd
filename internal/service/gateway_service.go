package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/repository"
	"resi-be-svc/pkg/logger"

	"gorm.io/gorm"
)

// PaymentIntentResponse carries the gateway references the client needs to
// complete a checkout
type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// GatewayService defines the interface for gateway-backed payment operations
type GatewayService interface {
	CreatePaymentIntent(paymentID, residentID uint, paymentMethodID string) (*PaymentIntentResponse, error)
	ConfirmPayment(intentID string, paymentID, residentID uint) (*models.Payment, error)
	HandleWebhook(payload []byte, signatureHeader string) error
}

// gatewayService implements GatewayService
type gatewayService struct {
	paymentRepo      repository.PaymentRepository
	notificationRepo repository.NotificationRepository
	stripe           StripeService
	logger           *logger.Logger
}

// NewGatewayService creates a new instance of GatewayService
func NewGatewayService(
	paymentRepo repository.PaymentRepository,
	notificationRepo repository.NotificationRepository,
	stripe StripeService,
	logger *logger.Logger,
) GatewayService {
	return &gatewayService{
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
		stripe:           stripe,
		logger:           logger,
	}
}

// CreatePaymentIntent opens a gateway intent for a payment owned by the
// caller. The amount is converted to minor units and the charge reference
// travels in the intent metadata.
func (s *gatewayService) CreatePaymentIntent(paymentID, residentID uint, paymentMethodID string) (*PaymentIntentResponse, error) {
	payment, err := s.paymentRepo.GetByIDForResident(paymentID, residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if !payment.IsPayable() {
		return nil, ErrInvalidPaymentState
	}

	minorUnits := int64(math.Round(payment.Amount * 100))
	metadata := map[string]string{
		"paymentId":  strconv.FormatUint(uint64(payment.ID), 10),
		"residentId": strconv.FormatUint(uint64(payment.ResidentID), 10),
	}

	intent, err := s.stripe.CreateIntent(minorUnits, paymentMethodID, metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.paymentRepo.SetIntentID(payment.ID, intent.ID); err != nil {
		s.logger.WithError(err).WithField("payment_id", payment.ID).Error("Failed to record payment intent reference")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"payment_id": payment.ID,
		"intent_id":  intent.ID,
	}).Info("Payment intent created")

	return &PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// ConfirmPayment retrieves the intent from the gateway and settles the
// payment once the gateway reports success. A non-succeeded intent leaves
// the payment untouched.
func (s *gatewayService) ConfirmPayment(intentID string, paymentID, residentID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByIDForResident(paymentID, residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	intent, err := s.stripe.RetrieveIntent(intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if intent.Status != StripeIntentSucceeded {
		s.logger.WithFields(map[string]interface{}{
			"payment_id": payment.ID,
			"intent_id":  intentID,
			"status":     intent.Status,
		}).Warn("Payment intent not succeeded")
		return nil, ErrPaymentNotSucceeded
	}

	return settlePayment(s.paymentRepo, s.notificationRepo, s.logger, payment, &intentID)
}

// HandleWebhook verifies the gateway signature and reconciles succeeded
// intents against the ledger. Settlement is keyed by the paymentId metadata
// and is idempotent: an already settled payment acknowledges without a write.
func (s *gatewayService) HandleWebhook(payload []byte, signatureHeader string) error {
	if err := s.stripe.VerifyWebhookSignature(payload, signatureHeader); err != nil {
		return err
	}

	event, err := s.stripe.ParseEvent(payload)
	if err != nil {
		return err
	}

	if event.Type != "payment_intent.succeeded" {
		s.logger.WithField("event_type", event.Type).Debug("Ignoring webhook event")
		return nil
	}

	intent := event.Data.Object
	paymentID, err := strconv.ParseUint(intent.Metadata["paymentId"], 10, 64)
	if err != nil {
		s.logger.WithField("intent_id", intent.ID).Warn("Webhook intent has no payment reference")
		return nil
	}

	payment, err := s.paymentRepo.GetByID(uint(paymentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WithFields(map[string]interface{}{
				"payment_id": paymentID,
				"intent_id":  intent.ID,
			}).Warn("Webhook references unknown payment")
			return nil
		}
		return err
	}

	if payment.Status == models.PaymentStatusPaid {
		return nil
	}

	if _, err := settlePayment(s.paymentRepo, s.notificationRepo, s.logger, payment, &intent.ID); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"payment_id": payment.ID,
		"intent_id":  intent.ID,
	}).Info("Payment settled from webhook")

	return nil
}
