package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
)

func Migrations() []*gormigrate.Migration {
	var migrations = []*gormigrate.Migration{
		m202503140900_initial_schema(),
		m202504020830_payment_logs(),
		m202505120915_invoice_indeces(),
	}
	return migrations
}
