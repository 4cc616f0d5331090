package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/zapshift/zapshift-backend/internal/models"
	"github.com/zapshift/zapshift-backend/pkg/utils"
	"gorm.io/gorm"
)

// SettledStatus is the processor-reported status of a paid session.
const SettledStatus = "paid"

// ParcelNotifier receives parcel state changes for push delivery.
type ParcelNotifier interface {
	SendParcelStatusUpdate(email string, update ParcelStatusUpdate)
}

// PaymentService creates checkout sessions and resolves confirmations.
type PaymentService struct {
	db       *gorm.DB
	provider CheckoutProvider
	notifier ParcelNotifier
	siteURL  string
	currency string
}

func NewPaymentService(db *gorm.DB, provider CheckoutProvider, notifier ParcelNotifier, siteURL, currency string) *PaymentService {
	return &PaymentService{
		db:       db,
		provider: provider,
		notifier: notifier,
		siteURL:  siteURL,
		currency: currency,
	}
}

// CreateCheckout builds a processor checkout session for a parcel and
// returns the redirect URL. The parcel id and name ride along as session
// metadata so confirmation can recover them without any local session
// state. Processor errors propagate; nothing is retried.
func (s *PaymentService) CreateCheckout(ctx context.Context, parcel *models.Parcel) (string, error) {
	// minor units; sub-cent remainders are truncated
	amount := int64(parcel.Cost * 100)

	session, err := s.provider.CreateCheckoutSession(ctx, CheckoutParams{
		Amount:        amount,
		Currency:      s.currency,
		CustomerEmail: parcel.SenderEmail,
		ProductName:   parcel.Name,
		ParcelID:      parcel.ID,
		SuccessURL:    s.siteURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.siteURL + "/payment-cancelled",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return session.URL, nil
}

// ConfirmationResult is the terminal outcome of a confirmation call.
type ConfirmationResult struct {
	Success          bool   `json:"success"`
	AlreadyProcessed bool   `json:"alreadyProcessed,omitempty"`
	TrackingID       string `json:"trackingId,omitempty"`
	TransactionID    string `json:"transactionId,omitempty"`
	ParcelsModified  int64  `json:"parcelsModified,omitempty"`
	PaymentID        uint   `json:"paymentId,omitempty"`
	Message          string `json:"message,omitempty"`
}

// ConfirmPayment resolves a checkout-session reference into a recorded
// payment. The call is idempotent on the processor's transaction id:
// repeat confirmations return the tracking id issued the first time and
// write nothing. An unsettled session is a non-terminal outcome, not an
// error; the caller may confirm again once the processor settles.
//
// The existence check and the insert are not one atomic step, so two
// confirmations racing through the not-found path can both reach the
// insert; the unique index on transaction_id makes the loser fail loudly
// instead of duplicating the payment.
func (s *PaymentService) ConfirmPayment(ctx context.Context, sessionID string) (*ConfirmationResult, error) {
	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checkout session: %w", err)
	}

	transactionID := session.PaymentIntent
	if transactionID == "" {
		transactionID = session.ID
	}

	var existing models.Payment
	err = s.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&existing).Error
	if err == nil {
		return &ConfirmationResult{
			Success:          true,
			AlreadyProcessed: true,
			TrackingID:       existing.TrackingID,
			TransactionID:    transactionID,
			Message:          "payment already recorded",
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if session.PaymentStatus != SettledStatus {
		return &ConfirmationResult{
			Success: false,
			Message: "payment not settled",
		}, nil
	}

	parcelID, err := strconv.ParseUint(session.Metadata["parcelId"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("checkout session carries no parcel id: %v", err)
	}

	trackingID, err := utils.GenerateTrackingID()
	if err != nil {
		return nil, err
	}

	// Two sequential writes, no cross-table transaction. If the insert
	// below fails the parcel stays marked paid with no payment row; the
	// error is surfaced for reconciliation, not masked.
	update := s.db.WithContext(ctx).Model(&models.Parcel{}).
		Where("id = ?", parcelID).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"tracking_id":    trackingID,
		})
	if update.Error != nil {
		return nil, fmt.Errorf("failed to mark parcel paid: %w", update.Error)
	}

	payment := models.Payment{
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		Email:         session.Email(),
		ParcelID:      uint(parcelID),
		ParcelName:    session.Metadata["parcelName"],
		TransactionID: transactionID,
		Status:        session.PaymentStatus,
		PaidAt:        time.Now(),
		TrackingID:    trackingID,
	}
	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment for parcel %d: %w", parcelID, err)
	}

	if s.notifier != nil {
		s.notifier.SendParcelStatusUpdate(payment.Email, ParcelStatusUpdate{
			ParcelID:      uint(parcelID),
			PaymentStatus: models.PaymentStatusPaid,
			TrackingID:    trackingID,
		})
	}

	log.Printf("Recorded payment %s for parcel %d, tracking %s", transactionID, parcelID, trackingID)

	return &ConfirmationResult{
		Success:         true,
		TrackingID:      trackingID,
		TransactionID:   transactionID,
		ParcelsModified: update.RowsAffected,
		PaymentID:       payment.ID,
	}, nil
}
