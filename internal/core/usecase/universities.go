package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
)

type CreateUniversityUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewCreateUniversityUseCase(universityRepo port.UniversityRepositoryPort) *CreateUniversityUseCase {
	return &CreateUniversityUseCase{universityRepo: universityRepo}
}

func (uc *CreateUniversityUseCase) Execute(ctx context.Context, principal domain.Principal, in domain.UniversityInput) (*domain.University, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateUniversity",
		"user_id":  principal.UserID.String(),
	})

	if err := principal.Require(domain.CapManageUniversities); err != nil {
		return nil, err
	}
	university, err := domain.NewUniversity(in, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.universityRepo.Create(ctx, university); err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Info("University created", port.Fields{"university_id": university.ID.String()})
	return university, nil
}

type UpdateUniversityUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewUpdateUniversityUseCase(universityRepo port.UniversityRepositoryPort) *UpdateUniversityUseCase {
	return &UpdateUniversityUseCase{universityRepo: universityRepo}
}

func (uc *UpdateUniversityUseCase) Execute(ctx context.Context, principal domain.Principal, universityID uuid.UUID, in domain.UniversityInput) (*domain.University, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":      "UpdateUniversity",
		"university_id": universityID.String(),
	})

	if err := principal.Require(domain.CapManageUniversities); err != nil {
		return nil, err
	}
	university, err := uc.universityRepo.FindByID(ctx, universityID)
	if err != nil {
		return nil, err
	}
	if err := university.Update(in, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.universityRepo.Update(ctx, university); err != nil {
		ucLogger.Warn("Repository returned an error", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Info("University updated", nil)
	return university, nil
}

type DeleteUniversityUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewDeleteUniversityUseCase(universityRepo port.UniversityRepositoryPort) *DeleteUniversityUseCase {
	return &DeleteUniversityUseCase{universityRepo: universityRepo}
}

func (uc *DeleteUniversityUseCase) Execute(ctx context.Context, principal domain.Principal, universityID uuid.UUID) error {
	if err := principal.Require(domain.CapManageUniversities); err != nil {
		return err
	}
	if err := uc.universityRepo.Delete(ctx, universityID); err != nil {
		return err
	}
	contextkeys.LoggerFromContext(ctx).Info("University deleted", port.Fields{
		"use_case":      "DeleteUniversity",
		"university_id": universityID.String(),
	})
	return nil
}

type GetUniversityUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewGetUniversityUseCase(universityRepo port.UniversityRepositoryPort) *GetUniversityUseCase {
	return &GetUniversityUseCase{universityRepo: universityRepo}
}

func (uc *GetUniversityUseCase) Execute(ctx context.Context, universityID uuid.UUID) (*domain.University, error) {
	return uc.universityRepo.FindByID(ctx, universityID)
}

type ListUniversitiesUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewListUniversitiesUseCase(universityRepo port.UniversityRepositoryPort) *ListUniversitiesUseCase {
	return &ListUniversitiesUseCase{universityRepo: universityRepo}
}

func (uc *ListUniversitiesUseCase) Execute(ctx context.Context, search string, page domain.Pagination) (*domain.UniversityPage, error) {
	universities, total, err := uc.universityRepo.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository returned an error", err, port.Fields{"use_case": "ListUniversities"})
		return nil, err
	}
	return &domain.UniversityPage{
		Universities: universities,
		TotalCount:   total,
		CurrentPage:  page.Page,
		ItemsPerPage: page.PageSize,
	}, nil
}

type CreateCampusUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewCreateCampusUseCase(universityRepo port.UniversityRepositoryPort) *CreateCampusUseCase {
	return &CreateCampusUseCase{universityRepo: universityRepo}
}

func (uc *CreateCampusUseCase) Execute(ctx context.Context, principal domain.Principal, universityID uuid.UUID, in domain.CampusInput) (*domain.Campus, error) {
	if err := principal.Require(domain.CapManageUniversities); err != nil {
		return nil, err
	}
	if _, err := uc.universityRepo.FindByID(ctx, universityID); err != nil {
		return nil, err
	}
	campus, err := domain.NewCampus(universityID, in, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.universityRepo.CreateCampus(ctx, campus); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository returned an error", err, port.Fields{"use_case": "CreateCampus"})
		return nil, err
	}
	return campus, nil
}

type UpdateCampusUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewUpdateCampusUseCase(universityRepo port.UniversityRepositoryPort) *UpdateCampusUseCase {
	return &UpdateCampusUseCase{universityRepo: universityRepo}
}

func (uc *UpdateCampusUseCase) Execute(ctx context.Context, principal domain.Principal, universityID, campusID uuid.UUID, in domain.CampusInput) (*domain.Campus, error) {
	if err := principal.Require(domain.CapManageUniversities); err != nil {
		return nil, err
	}
	campus, err := uc.universityRepo.FindCampus(ctx, campusID)
	if err != nil {
		return nil, err
	}
	if campus.UniversityID != universityID {
		return nil, domain.ErrCampusNotFound
	}
	if err := campus.Update(in, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.universityRepo.UpdateCampus(ctx, campus); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository returned an error", err, port.Fields{"use_case": "UpdateCampus"})
		return nil, err
	}
	return campus, nil
}

type DeleteCampusUseCase struct {
	universityRepo port.UniversityRepositoryPort
}

func NewDeleteCampusUseCase(universityRepo port.UniversityRepositoryPort) *DeleteCampusUseCase {
	return &DeleteCampusUseCase{universityRepo: universityRepo}
}

func (uc *DeleteCampusUseCase) Execute(ctx context.Context, principal domain.Principal, universityID, campusID uuid.UUID) error {
	if err := principal.Require(domain.CapManageUniversities); err != nil {
		return err
	}
	return uc.universityRepo.DeleteCampus(ctx, universityID, campusID)
}
