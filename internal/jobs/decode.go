package jobs

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const utf8BOM = "\ufeff"

// decodeCSV reads a header row followed by one row per job
func decodeCSV(data []byte) ([]map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err == io.EOF {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	rows := []map[string]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			row[name] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeJSON accepts an array of objects or an object holding one under "jobs".
// Null values are treated as absent.
func decodeJSON(data []byte) ([]map[string]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}

	doc := gjson.ParseBytes(data)
	if doc.IsObject() {
		doc = doc.Get("jobs")
	}
	if !doc.IsArray() {
		return nil, errors.New("json must be an array of job objects")
	}

	rows := []map[string]string{}
	var decodeErr error
	doc.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			decodeErr = fmt.Errorf("json element %d is not an object", len(rows))
			return false
		}
		row := make(map[string]string)
		item.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.Null {
				row[key.String()] = value.String()
			}
			return true
		})
		rows = append(rows, row)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return rows, nil
}

// decodeYAML accepts a sequence of mappings or a mapping holding one under "jobs"
func decodeYAML(data []byte) ([]map[string]string, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	if m, ok := doc.(map[string]any); ok {
		jobs, found := m["jobs"]
		if !found {
			return nil, errors.New("yaml mapping has no jobs key")
		}
		doc = jobs
	}
	if doc == nil {
		return []map[string]string{}, nil
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, errors.New("yaml must be a sequence of job mappings")
	}

	rows := make([]map[string]string, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("yaml element %d is not a mapping", i)
		}
		row := make(map[string]string, len(fields))
		for k, v := range fields {
			if v != nil {
				row[k] = stringify(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeHTML reads the first <table> of the page. The first row holding <th>
// cells names the columns; rows before it are ignored.
func decodeHTML(data []byte) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("html has no table")
	}

	var header []string
	rows := []map[string]string{}
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if header == nil {
			tr.Find("th").Each(func(_ int, th *goquery.Selection) {
				header = append(header, strings.TrimSpace(th.Text()))
			})
			return
		}

		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make(map[string]string, len(header))
		cells.Each(func(i int, td *goquery.Selection) {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(td.Text())
			}
		})
		rows = append(rows, row)
	})

	if header == nil {
		return nil, errors.New("html table has no header row")
	}
	return rows, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
