package service

import (
	"context"
	"time"

	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
	"github.com/tpanh/rentd/internal/util"
)

const invoiceDueDays = 5

// GenerateInvoices creates the invoices of one building for one billing
// period. Rooms that already have an invoice for the period or that have no
// contract holder are skipped silently; a room with metering history but a
// gap right before the period aborts the run, a partial billing cycle is
// worse than a late one.
func (s *Service) GenerateInvoices(ctx context.Context, buildingID uint64, period string) ([]domain.Invoice, error) {
	if !util.ValidPeriod(period) {
		return nil, errors.ErrInvalidPeriod
	}

	building, err := s.repository.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, errors.ErrBuildingNotFound
	}

	rooms, err := s.repository.ListRoomsByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	var created []domain.Invoice

	err = s.repository.Transaction(func(tx domain.Repository) error {
		for _, room := range rooms {
			exists, err := tx.InvoiceExistsForRoomAndPeriod(ctx, room.ID, period)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			holder, err := tx.GetContractHolder(ctx, room.ID)
			if err != nil {
				return err
			}
			if holder == nil {
				continue
			}

			elecAmount, err := s.electricityAmount(ctx, tx, building, room.ID, period)
			if err != nil {
				return err
			}

			waterAmount, err := s.waterAmount(ctx, tx, building, room.ID, period)
			if err != nil {
				return err
			}

			invoice := domain.Invoice{
				ID:          util.NextID(),
				RoomID:      room.ID,
				TenantID:    holder.ID,
				Period:      period,
				RoomPrice:   room.Price,
				ElecAmount:  elecAmount,
				WaterAmount: waterAmount,
				TotalAmount: room.Price + elecAmount + waterAmount,
				Status:      domain.InvoiceDraft,
				DueDate:     time.Now().UTC().AddDate(0, 0, invoiceDueDays),
			}

			if err := tx.SaveInvoice(ctx, &invoice); err != nil {
				return err
			}

			created = append(created, invoice)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) electricityAmount(ctx context.Context, tx domain.Repository, building *domain.Building, roomID uint64, period string) (int, error) {
	if building.ElecUnitPrice == 0 {
		return 0, nil
	}

	current, err := tx.GetUtilityReadingByRoomAndMonth(ctx, roomID, period)
	if err != nil {
		return 0, err
	}
	if current == nil || current.ElectricIndex == nil {
		return 0, nil
	}

	previous, err := s.previousIndex(ctx, tx, roomID, period, func(r *domain.UtilityReading) *int { return r.ElectricIndex })
	if err != nil {
		return 0, err
	}

	usage := *current.ElectricIndex - previous
	if usage < 0 {
		usage = 0
	}

	return usage * building.ElecUnitPrice, nil
}

func (s *Service) waterAmount(ctx context.Context, tx domain.Repository, building *domain.Building, roomID uint64, period string) (int, error) {
	if building.WaterUnitPrice == 0 {
		return 0, nil
	}

	switch building.WaterCalcMethod {
	case domain.WaterPerCapita:
		count, err := tx.CountActiveTenantsByRoom(ctx, roomID)
		if err != nil {
			return 0, err
		}
		return building.WaterUnitPrice * int(count), nil

	case domain.WaterByMeter:
		current, err := tx.GetUtilityReadingByRoomAndMonth(ctx, roomID, period)
		if err != nil {
			return 0, err
		}
		if current == nil || current.WaterIndex == nil {
			return 0, nil
		}

		previous, err := s.previousIndex(ctx, tx, roomID, period, func(r *domain.UtilityReading) *int { return r.WaterIndex })
		if err != nil {
			return 0, err
		}

		usage := *current.WaterIndex - previous
		if usage < 0 {
			usage = 0
		}

		return building.WaterUnitPrice * usage, nil
	}

	return 0, nil
}

// previousIndex resolves the meter index of the month before the billing
// period. A room billed for the very first time starts from zero; a room
// with older history but no reading for the previous month is an error,
// billing would silently charge for the whole gap otherwise.
func (s *Service) previousIndex(ctx context.Context, tx domain.Repository, roomID uint64, period string, index func(*domain.UtilityReading) *int) (int, error) {
	previous, err := tx.GetUtilityReadingByRoomAndMonth(ctx, roomID, util.PreviousPeriod(period))
	if err != nil {
		return 0, err
	}
	if previous != nil && index(previous) != nil {
		return *index(previous), nil
	}

	history, err := tx.ListUtilityReadingsByRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	for _, r := range history {
		if r.Month < period {
			return 0, errors.ErrMissingPreviousReading
		}
	}

	return 0, nil
}

func (s *Service) GetInvoice(ctx context.Context, id uint64) (*domain.Invoice, error) {
	invoice, err := s.repository.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, errors.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *Service) ListInvoices(ctx context.Context, buildingID uint64, period string, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	return s.repository.ListInvoicesByBuilding(ctx, buildingID, period, status)
}

// PayInvoice settles an invoice and records the payment. Overdue invoices
// stay overdue; settling them is a bookkeeping decision left to the
// administrator.
func (s *Service) PayInvoice(ctx context.Context, id uint64, method string) (*domain.Invoice, error) {
	invoice, err := s.repository.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, errors.ErrInvoiceNotFound
	}

	if invoice.Status == domain.InvoicePaid {
		return nil, errors.ErrInvoiceAlreadyPaid
	}
	if invoice.Status != domain.InvoiceDraft && invoice.Status != domain.InvoiceSent {
		return nil, errors.ErrInvoiceNotPayable
	}

	paidBy, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	err = s.repository.Transaction(func(tx domain.Repository) error {
		invoice.Status = domain.InvoicePaid
		if err := tx.SaveInvoice(ctx, invoice); err != nil {
			return err
		}

		return tx.SavePaymentLog(ctx, &domain.PaymentLog{
			ID:        util.NextID(),
			InvoiceID: invoice.ID,
			Amount:    invoice.TotalAmount,
			Method:    method,
			PaidBy:    paidBy,
		})
	})

	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// SendInvoice mails an invoice to its tenant and moves a draft to sent.
func (s *Service) SendInvoice(ctx context.Context, id uint64) (*domain.Invoice, error) {
	invoice, err := s.repository.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, errors.ErrInvoiceNotFound
	}

	tenant, err := s.repository.GetTenant(ctx, invoice.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, errors.ErrTenantNotFound
	}
	if tenant.Email == "" {
		return nil, errors.ErrEmailRequired
	}

	room, err := s.repository.GetRoom(ctx, invoice.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, errors.ErrRoomNotFound
	}

	if err := s.mailer.SendInvoice(tenant.Email, tenant.Name, room.RoomNo, invoice); err != nil {
		return nil, err
	}

	if invoice.Status == domain.InvoiceDraft {
		invoice.Status = domain.InvoiceSent
		if err := s.repository.SaveInvoice(ctx, invoice); err != nil {
			return nil, err
		}
	}

	return invoice, nil
}
