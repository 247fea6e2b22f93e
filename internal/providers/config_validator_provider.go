package providers

import (
	"errors"

	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks every section carrying validate tags. Sections are
// validated separately so an error names the section it came from.
func (c *CnfValidator) Validate() error {
	sections := []struct {
		name string
		data interface{}
	}{
		{"webServer", &c.conf.WebServer},
		{"persistence", &c.conf.Persistence},
		{"logger", &c.conf.Logger},
		{"worldBank", &c.conf.WorldBank},
		{"worldBank.indicators", &c.conf.WorldBank.Indicators},
		{"dashboard", &c.conf.Dashboard},
		{"store", &c.conf.Store},
	}

	for _, s := range sections {
		v := validate.Struct(s.data)
		if !v.Validate() {
			return errors.New(s.name + ": " + v.Errors.One())
		}
	}

	if c.conf.Store.Backend != "none" && c.conf.Store.Backend != "sqlite" && c.conf.Store.DSN == "" {
		return errors.New("store: dsn is required for backend " + c.conf.Store.Backend)
	}
	if c.conf.WorldBank.DateFrom > 0 && c.conf.WorldBank.DateTo > 0 && c.conf.WorldBank.DateFrom > c.conf.WorldBank.DateTo {
		return errors.New("worldBank: dateFrom must not be after dateTo")
	}
	return nil
}
