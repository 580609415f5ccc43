// Package importer parses flashcards out of uploaded spreadsheet files.
// Excel workbooks go through excelize; plain CSV is handled directly.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kberg/flashdeck/internal/card"
)

// Config controls how rows are read. Columns are fixed: A holds the term,
// statement or question, B the definition or correct answer, C the card type
// and D pipe-separated options for multiple choice.
type Config struct {
	SheetName  string
	SkipHeader bool
}

// DefaultConfig reads the first sheet and skips a header row.
func DefaultConfig() Config {
	return Config{
		SheetName:  "Sheet1",
		SkipHeader: true,
	}
}

// Row is one successfully parsed flashcard.
type Row struct {
	Line    int
	Type    card.Type
	Content card.Content
}

// Result summarizes one import run.
type Result struct {
	TotalProcessed int      `json:"total_processed"`
	Parsed         int      `json:"parsed"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`

	Rows []Row `json:"-"`
}

// Parse reads flashcards from r. The filename extension picks the format:
// .csv is parsed as CSV, anything else as an Excel workbook. Bad rows are
// recorded in the result and skipped, they never abort the run.
func Parse(r io.Reader, filename string, cfg Config) (*Result, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		return parseCSV(r, cfg)
	}
	return parseExcel(r, cfg)
}

func parseExcel(r io.Reader, cfg Config) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	result := &Result{Errors: make([]string, 0)}
	for i, row := range rows {
		line := i + 1
		if i == 0 && cfg.SkipHeader {
			continue
		}
		processRow(result, row, line)
	}
	return result, nil
}

func parseCSV(r io.Reader, cfg Config) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &Result{Errors: make([]string, 0)}
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		line++
		if line == 1 && cfg.SkipHeader {
			continue
		}
		processRow(result, row, line)
	}
	return result, nil
}

func processRow(result *Result, row []string, line int) {
	// Blank rows are common padding in exported sheets; ignore them quietly.
	if isBlank(row) {
		return
	}
	result.TotalProcessed++

	parsed, err := parseRow(row, line)
	if err != nil {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
		return
	}
	result.Parsed++
	result.Rows = append(result.Rows, parsed)
}

func parseRow(row []string, line int) (Row, error) {
	front := strings.TrimSpace(cell(row, 0))
	back := strings.TrimSpace(cell(row, 1))
	typeCell := strings.TrimSpace(cell(row, 2))
	optionsCell := strings.TrimSpace(cell(row, 3))

	cardType := card.TypeClassic
	if typeCell != "" {
		parsed, err := card.ParseType(normalizeType(typeCell))
		if err != nil {
			return Row{}, err
		}
		cardType = parsed
	}

	var content card.Content
	switch cardType {
	case card.TypeClassic:
		content = card.Classic{Term: front, Definition: back}
	case card.TypeTrueFalse:
		content = card.TrueFalse{Statement: front, CorrectAnswer: strings.ToLower(back)}
	case card.TypeMultipleChoice:
		content = card.MultipleChoice{
			Question:      front,
			Options:       splitOptions(optionsCell),
			CorrectAnswer: back,
		}
	}

	if err := content.Validate(); err != nil {
		return Row{}, err
	}
	return Row{Line: line, Type: cardType, Content: content}, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// normalizeType accepts a few spellings seen in real sheets.
func normalizeType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	switch s {
	case "tf", "truefalse":
		return "true_false"
	case "mc", "multi", "multiplechoice", "choice":
		return "multiple_choice"
	case "":
		return "classic"
	}
	return s
}

func splitOptions(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}
