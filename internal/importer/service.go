package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/gastos/internal/importer/bbva"
	"github.com/MrJamesThe3rd/gastos/internal/importer/laboralkutxa"
	"github.com/MrJamesThe3rd/gastos/internal/importer/revolut"
	"github.com/MrJamesThe3rd/gastos/internal/statement"
)

type Service struct {
	laboralKutxaImporter Importer
	bbvaImporter         Importer
	revolutImporter      Importer
}

func NewService() *Service {
	return &Service{
		laboralKutxaImporter: laboralkutxa.NewParser(),
		bbvaImporter:         bbva.NewParser(),
		revolutImporter:      revolut.NewParser(),
	}
}

func (s *Service) Import(bank Bank, r io.Reader) (statement.Outcome, error) {
	var importer Importer

	switch bank {
	case BankLaboralKutxa:
		importer = s.laboralKutxaImporter
	case BankBBVA:
		importer = s.bbvaImporter
	case BankRevolut:
		importer = s.revolutImporter
	default:
		return statement.Outcome{}, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	return importer.Parse(r), nil
}
