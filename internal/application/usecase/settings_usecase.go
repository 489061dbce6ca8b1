package usecase

import (
	"time"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// SettingsUseCase configuración clave/valor del negocio.
type SettingsUseCase struct {
	repo repository.SettingRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get obtiene un valor por clave.
func (uc *SettingsUseCase) Get(key string) (*dto.SettingResponse, error) {
	setting, err := uc.repo.Get(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewSettingResponse(setting), nil
}

// Set crea o sobrescribe un valor.
func (uc *SettingsUseCase) Set(key string, in dto.SettingRequest) (*dto.SettingResponse, error) {
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	setting := &entity.Setting{Key: key, Value: in.Value, UpdatedAt: time.Now().UTC()}
	if err := uc.repo.Set(setting); err != nil {
		return nil, err
	}
	return dto.NewSettingResponse(setting), nil
}

// List lista toda la configuración.
func (uc *SettingsUseCase) List() ([]dto.SettingResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SettingResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.NewSettingResponse(s))
	}
	return items, nil
}
