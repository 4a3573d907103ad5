package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile holds upstream credentials read from an ini profiles file:
//
//	[production]
//	billing_api = https://billing.example.com
//	cf_api      = https://api.example.com
//	token       = ...
type Profile struct {
	Name       string
	BillingAPI string
	CFAPI      string
	Token      string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		Name:       name,
		BillingAPI: section.Key("billing_api").String(),
		CFAPI:      section.Key("cf_api").String(),
		Token:      section.Key("token").String(),
	}, nil
}

// Apply fills the upstream endpoints and tokens that cfg leaves empty.
func (p *Profile) Apply(cfg *Config) {
	if cfg.Billing.APIEndpoint == "" {
		cfg.Billing.APIEndpoint = p.BillingAPI
	}
	if cfg.Billing.Token == "" {
		cfg.Billing.Token = p.Token
	}
	if cfg.Directory.APIEndpoint == "" {
		cfg.Directory.APIEndpoint = p.CFAPI
	}
	if cfg.Directory.Token == "" {
		cfg.Directory.Token = p.Token
	}
}
