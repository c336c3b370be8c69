package rules

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/gastos/internal/statement"
)

// Column names of the spreadsheet rule format.
const (
	colPriority    = "Prioridad"
	colExact       = "Concepto_Exacto"
	colContains    = "Concepto_Contiene"
	colSubcategory = "Subcategoria_UUID"
	colCategory    = "Categoria"
	colName        = "Nombre"
)

// ParseYAML decodes a YAML rule set.
func ParseYAML(data []byte) ([]Rule, error) {
	var set RuleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse yaml rules: %w", err)
	}

	return set.Rules, nil
}

// ParseXLSX reads rules from the first sheet of a workbook whose first row
// names the columns. Rows setting neither concept column are ignored; a
// missing priority column means every rule has priority 0.
func ParseXLSX(r io.Reader) ([]Rule, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open rules workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("rules workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	cols := statement.IndexHeader(rows[0])

	idxExact, hasExact := cols.Find(colExact)
	idxContains, hasContains := cols.Find(colContains)

	if !hasExact && !hasContains {
		return nil, fmt.Errorf("rules workbook: missing %s and %s columns", colExact, colContains)
	}

	idxPriority, hasPriority := cols.Find(colPriority)
	idxSub, _ := cols.Find(colSubcategory)
	idxCat, _ := cols.Find(colCategory)
	idxName, _ := cols.Find(colName)

	var rules []Rule

	for i, row := range rows[1:] {
		rule := Rule{
			Name:        statement.Cell(row, idxName),
			Exact:       statement.Cell(row, idxExact),
			Contains:    statement.Cell(row, idxContains),
			Category:    statement.Cell(row, idxCat),
			Subcategory: statement.Cell(row, idxSub),
		}

		if rule.Exact == "" && rule.Contains == "" {
			continue
		}

		if hasPriority {
			if p := statement.Cell(row, idxPriority); p != "" {
				n, err := strconv.ParseFloat(p, 64)
				if err != nil {
					return nil, fmt.Errorf("rules row %d: %w: priority %q", i+2, ErrInvalidRule, p)
				}

				rule.Priority = int(n)
			}
		}

		if rule.Name == "" {
			rule.Name = fmt.Sprintf("row %d", i+2)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

// LoadFromFile builds an engine from a .yaml, .yml or .xlsx rules file.
func LoadFromFile(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rules []Rule

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		rules, err = ParseYAML(data)
	case ".xlsx":
		rules, err = ParseXLSX(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported rules file extension %q", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("load rules from %q: %w", path, err)
	}

	return NewEngine(rules)
}
