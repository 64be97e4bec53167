package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/repository/specification"
	"event-reg-be/internal/repository/unitofwork"
)

type IAdminService interface {
	Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	ListRegistrations(ctx context.Context, status string) ([]*dto.RegistrationResponse, error)
	ExportRegistrantsCSV(ctx context.Context, w io.Writer) error
	FixPrimaryRegistrants(ctx context.Context, dryRun bool) (*dto.FixPrimaryReport, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAdminService {
	return &adminService{uowFactory: uowFactory, log: log}
}

func (s *adminService) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	byStatus, err := uow.RegistrationRepository().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	total, checkedIn, err := uow.RegistrantRepository().CountCheckedIn(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.AdminDashboardResponse{
		RegistrationsByStatus: make(map[string]int64, len(byStatus)),
		TotalRegistrants:      total,
		CheckedIn:             checkedIn,
	}
	for status, count := range byStatus {
		res.RegistrationsByStatus[string(status)] = count
	}
	return res, nil
}

func (s *adminService) ListRegistrations(ctx context.Context, status string) ([]*dto.RegistrationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		st := lifecycle.Status(status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, status)
		}
		specs = append(specs, specification.ByRegistrationStatus{Status: st})
	}

	registrations, err := uow.RegistrationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	var res []*dto.RegistrationResponse
	for _, reg := range registrations {
		res = append(res, mapRegistrationToResponse(reg))
	}
	return res, nil
}

// ExportRegistrantsCSV streams the full registrant roster. Rows are
// written as they are mapped, not buffered.
func (s *adminService) ExportRegistrantsCSV(ctx context.Context, w io.Writer) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registrations, err := uow.RegistrationRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return err
	}
	invoiceByRegistration := make(map[string]string, len(registrations))
	statusByRegistration := make(map[string]string, len(registrations))
	for _, reg := range registrations {
		invoiceByRegistration[reg.ID.String()] = reg.InvoiceCode
		statusByRegistration[reg.ID.String()] = string(reg.Status)
	}

	registrants, err := uow.RegistrantRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"invoice_code", "registration_status", "full_name", "saint_name",
		"gender", "age_group", "province", "diocese", "shirt_size",
		"is_primary", "is_checked_in", "checked_in_at",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range registrants {
		checkedInAt := ""
		if r.CheckedInAt != nil {
			checkedInAt = r.CheckedInAt.Format("2006-01-02 15:04:05")
		}
		row := []string{
			invoiceByRegistration[r.RegistrationID.String()],
			statusByRegistration[r.RegistrationID.String()],
			r.FullName,
			r.SaintName,
			r.Gender,
			r.AgeGroup,
			r.Province,
			r.Diocese,
			r.ShirtSize,
			strconv.FormatBool(r.IsPrimary),
			strconv.FormatBool(r.IsCheckedIn),
			checkedInAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// FixPrimaryRegistrants repairs registrations violating the
// exactly-one-primary invariant: none marked -> promote the oldest,
// several marked -> keep the oldest. Registrations with no registrants
// at all are only reported.
func (s *adminService) FixPrimaryRegistrants(ctx context.Context, dryRun bool) (*dto.FixPrimaryReport, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registrations, err := uow.RegistrationRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.FixPrimaryReport{}
	for _, reg := range registrations {
		report.Scanned++

		members, err := uow.RegistrantRepository().FindAll(ctx,
			specification.ByRegistrationID{RegistrationID: reg.ID},
			specification.OrderBy{Field: "created_at", Desc: false},
		)
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			report.Orphaned = append(report.Orphaned, reg.ID)
			continue
		}

		primaries := 0
		for _, m := range members {
			if m.IsPrimary {
				primaries++
			}
		}
		if primaries == 1 {
			continue
		}

		report.Repaired = append(report.Repaired, reg.ID)
		if dryRun {
			continue
		}

		for i, m := range members {
			wantPrimary := i == 0
			if m.IsPrimary == wantPrimary {
				continue
			}
			m.IsPrimary = wantPrimary
			if err := uow.RegistrantRepository().Update(ctx, m); err != nil {
				return nil, err
			}
		}

		s.log.Info("Admin", "Repaired primary registrant", map[string]interface{}{
			"registration_id": reg.ID.String(),
			"previous_count":  primaries,
		})
	}

	return report, nil
}
