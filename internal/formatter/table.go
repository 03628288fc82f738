package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
)

// preferredColumns are surfaced first when present, in this order.
// Flattened log attributes are included so search results lead with the
// fields people actually scan.
var preferredColumns = []string{
	"id", "title", "name", "type", "status", "state", "severity",
	"created_at", "updated_at", "created", "modified",
	"attributes.timestamp", "attributes.service", "attributes.host",
	"attributes.status", "attributes.message",
}

const maxColumns = 12

type TableFormatter struct {
	w io.Writer
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

func (f *TableFormatter) Format(body []byte) error {
	var data any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	rows := extractRows(data)
	if len(rows) == 0 {
		fmt.Fprintln(f.w, "No results found")
		return nil
	}

	for i, row := range rows {
		rows[i] = flattenRow(row)
	}

	headers := selectHeaders(rows)
	widths := f.calculateColumnWidths(headers, rows)

	f.printBorder(widths, "top")
	f.printRow(headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		values := make([]string, len(headers))
		for i, h := range headers {
			if m, ok := row.(map[string]any); ok {
				values[i] = formatCell(m[h])
			}
		}
		f.printRow(values, widths)
	}
	f.printBorder(widths, "bottom")

	return nil
}

// extractRows pulls displayable rows out of a decoded response.
// Arrays become rows directly; envelope objects are unwrapped through
// their "data" field; anything else is shown as a single row.
func extractRows(data any) []any {
	switch v := data.(type) {
	case []any:
		return v
	case map[string]any:
		if inner, ok := v["data"]; ok {
			return extractRows(inner)
		}
		return []any{v}
	default:
		return nil
	}
}

// flattenRow lifts one level of nested objects into dot-notation keys,
// so {"attributes": {"host": "web-1"}} yields an "attributes.host" column.
func flattenRow(row any) any {
	m, ok := row.(map[string]any)
	if !ok {
		return row
	}

	flat := make(map[string]any, len(m))
	for k, v := range m {
		if inner, ok := v.(map[string]any); ok {
			for ik, iv := range inner {
				flat[k+"."+ik] = iv
			}
			continue
		}
		flat[k] = v
	}
	return flat
}

// selectHeaders builds the column list: preferred fields first, then the
// remaining keys alphabetically, capped at maxColumns.
func selectHeaders(rows []any) []string {
	seen := make(map[string]bool)
	var rest []string
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		for k := range m {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)

	var headers []string
	picked := make(map[string]bool)
	for _, p := range preferredColumns {
		if seen[p] {
			headers = append(headers, p)
			picked[p] = true
		}
	}
	for _, k := range rest {
		if len(headers) >= maxColumns {
			break
		}
		if !picked[k] {
			headers = append(headers, k)
		}
	}
	return headers
}

func (f *TableFormatter) calculateColumnWidths(headers []string, rows []any) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		for i, h := range headers {
			if w := runewidth.StringWidth(formatCell(m[h])); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right, separator string

	switch borderType {
	case "top":
		left, middle, right, separator = "┌", "┬", "┐", "─"
	case "middle":
		left, middle, right, separator = "├", "┼", "┤", "─"
	case "bottom":
		left, middle, right, separator = "└", "┴", "┘", "─"
	}

	fmt.Fprint(f.w, left)
	for i, width := range widths {
		fmt.Fprint(f.w, strings.Repeat(separator, width+2)) // +2 for padding spaces
		if i < len(widths)-1 {
			fmt.Fprint(f.w, middle)
		}
	}
	fmt.Fprintln(f.w, right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Fprint(f.w, "│")
	for i, value := range values {
		// Pad by display width, not byte length, so wide runes line up.
		pad := widths[i] - runewidth.StringWidth(value)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(f.w, " %s%s │", value, strings.Repeat(" ", pad))
	}
	fmt.Fprintln(f.w)
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return runewidth.Truncate(v, 50, "...")
	case bool:
		return fmt.Sprintf("%t", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case []any:
		if len(v) == 0 {
			return "[]"
		}
		if len(v) <= 3 {
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = formatCell(item)
			}
			return "[" + strings.Join(parts, ", ") + "]"
		}
		return fmt.Sprintf("[%d items]", len(v))
	case map[string]any:
		return fmt.Sprintf("{%d fields}", len(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}
