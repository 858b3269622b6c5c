package content

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"study-game/internal/normalize"
)

// headerAliases maps the column spellings seen in authored CSVs onto
// the canonical row fields. Content authors write headers in English or
// Chinese depending on the pack.
var headerAliases = map[string]string{
	"id":        "id",
	"type":      "type",
	"kind":      "type",
	"question":  "question",
	"題目":        "question",
	"stem":      "question",
	"choicea":   "choiceA",
	"a":         "choiceA",
	"choiceb":   "choiceB",
	"b":         "choiceB",
	"choicec":   "choiceC",
	"c":         "choiceC",
	"choiced":   "choiceD",
	"d":         "choiceD",
	"answer":    "answer",
	"答案":        "answer",
	"answers":   "answers",
	"explain":   "explain",
	"解析":        "explain",
	"image":     "image",
	"pairs":     "pairs",
	"left":      "left",
	"right":     "right",
	"answermap": "answerMap",
	"map":       "answerMap",
	"index":     "answerMap",
	"title":     "title",
	"標題":        "title",
}

// Pack is a decoded question pack: the raw rows plus the title the CSV
// carried, if any.
type Pack struct {
	Slug  string
	Title string
	Rows  []normalize.Record
}

// DecodeCSV parses pack CSV bytes into raw question rows. A UTF-8 BOM
// is tolerated; unknown columns are dropped; the per-file title column
// is lifted out of the rows.
func DecodeCSV(slug string, data []byte) (*Pack, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return &Pack{Slug: slug}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = headerAliases[strings.ToLower(strings.TrimSpace(h))]
	}

	pack := &Pack{Slug: slug}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		row := normalize.Record{}
		for i, cell := range rec {
			if i >= len(cols) || cols[i] == "" {
				continue
			}
			if cols[i] == "title" {
				if pack.Title == "" && strings.TrimSpace(cell) != "" {
					pack.Title = strings.TrimSpace(cell)
				}
				continue
			}
			if cell == "" {
				continue
			}
			row[cols[i]] = cell
		}
		if len(row) == 0 {
			continue
		}
		pack.Rows = append(pack.Rows, row)
	}
	return pack, nil
}
