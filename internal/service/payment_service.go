package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"os"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/repository/specification"
	"event-reg-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// IPaymentService is the online payment channel. Bank transfer with a
// receipt upload stays the primary path; this one settles through the
// gateway and skips the manual admin review.
type IPaymentService interface {
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IPaymentService {
	return &paymentService{uowFactory: uowFactory, log: log}
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := uow.RegistrationRepository().FindOne(ctx, specification.ByID{ID: req.RegistrationId})
	if err != nil {
		return nil, err
	}
	if registration == nil || registration.UserID != userId {
		return nil, fmt.Errorf("%w: registration", ErrNotFound)
	}
	if !lifecycle.CanReportPayment(registration.Status) {
		return nil, fmt.Errorf("%w: registration is not awaiting payment", ErrConflict)
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	frontendURL := os.Getenv("FRONTEND_URL")

	// The invoice code doubles as the gateway order id so the webhook
	// can find the registration without a separate mapping table.
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  registration.InvoiceCode,
			GrossAmt: registration.TotalAmount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/registrations/%s?payment=success", frontendURL, registration.ID),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    registration.ID.String(),
				Price: registration.TotalAmount / int64(registration.ParticipantCount),
				Qty:   int32(registration.ParticipantCount),
				Name:  "Event registration",
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		OrderId:     registration.InvoiceCode,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

// HandleNotification processes the gateway callback. Signature is
// SHA512(order_id + status_code + gross_amount + server_key); requests
// failing the check are rejected before any lookup.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn("Payment", "Webhook signature mismatch", map[string]interface{}{"order_id": req.OrderId})
		return fmt.Errorf("invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := uow.RegistrationRepository().FindOne(ctx, specification.ByInvoiceCode{Code: req.OrderId})
	if err != nil {
		return err
	}
	if registration == nil {
		return fmt.Errorf("registration not found for order %s", req.OrderId)
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if registration.Status != lifecycle.StatusPending && registration.Status != lifecycle.StatusPaymentRejected {
			// Replayed or late notification; the registration already
			// moved on.
			return nil
		}
		s.log.Info("Payment", "Gateway settlement received", map[string]interface{}{
			"order_id":     req.OrderId,
			"payment_type": req.PaymentType,
		})
		return uow.RegistrationRepository().UpdateStatus(ctx, registration.ID, lifecycle.StatusConfirmPaid)
	case "deny", "cancel", "expire":
		if registration.Status != lifecycle.StatusPending {
			return nil
		}
		s.log.Info("Payment", "Gateway payment failed", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	default:
		return nil
	}
}
