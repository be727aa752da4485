package service

import (
	"github.com/hashicorp/go-hclog"
	"github.com/tpanh/rentd/internal/config"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/token"
	"github.com/tpanh/rentd/internal/version"
)

func NewService(repository domain.Repository, tokens *token.Service, mailer *Mailer, config *config.Config) *Service {
	return &Service{
		repository: repository,
		tokens:     tokens,
		mailer:     mailer,
		config:     config,
		logger:     hclog.Default().Named("service"),
	}
}

type Service struct {
	repository domain.Repository
	tokens     *token.Service
	mailer     *Mailer
	config     *config.Config
	logger     hclog.Logger
}

func (s *Service) GetVersion() (string, string) {
	return version.GetReleaseInfo()
}
