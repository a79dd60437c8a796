package timeseries

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/tslearn/pkg/errors"
)

// CSVOptions はCSV読み込みのオプションを保持する
type CSVOptions struct {
	// ValueColumn は数値列のインデックス（デフォルト: 1、2列目）
	ValueColumn int
	// LabelColumn はラベル列のインデックス（-1で無効、デフォルト: 0）
	LabelColumn int
	// HasHeader はヘッダ行の有無（デフォルト: true、1行想定）
	HasHeader bool
	// Delimiter はフィールド区切り文字（デフォルト: ','）
	Delimiter rune
}

// DefaultCSVOptions はデフォルトのCSVOptionsを返す。
// 「1列目がラベル、2列目が数値、ヘッダ1行」という本ライブラリの
// 標準入力形式に対応する。
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: 1,
		LabelColumn: 0,
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV はCSVファイルから時系列を読み込む
func LoadCSV(path string, opts *CSVOptions) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataError(path, 0, err)
	}
	defer f.Close()

	s, err := LoadCSVFromReader(f, opts)
	if err != nil {
		// 行番号付きのDataErrorはそのまま伝播させ、入力元だけ差し替える
		var dataErr *errors.DataError
		if errors.As(err, &dataErr) {
			return nil, errors.NewDataError(path, dataErr.Line, dataErr.Err)
		}
		return nil, errors.NewDataError(path, 0, err)
	}
	s.Name = path
	return s, nil
}

// LoadCSVFromReader はio.Readerから時系列を読み込む。
// 数値に解析できない行はエラーになる（黙って読み飛ばさない）。
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	line := 0
	if opts.HasHeader {
		line++
		if _, err := reader.Read(); err != nil {
			return nil, errors.NewDataError("csv", line, err)
		}
	}

	var values []float64
	var labels []string

	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDataError("csv", line, err)
		}

		// 末尾の空行は許容する
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		if opts.ValueColumn >= len(record) {
			return nil, errors.NewDataError("csv", line,
				errors.Newf("value column %d out of range (%d fields)", opts.ValueColumn, len(record)))
		}

		raw := strings.TrimSpace(strings.Trim(record[opts.ValueColumn], "\""))
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.NewDataError("csv", line,
				errors.Newf("cannot parse %q as float", raw))
		}
		values = append(values, v)

		if opts.LabelColumn >= 0 && opts.LabelColumn < len(record) {
			labels = append(labels, strings.TrimSpace(record[opts.LabelColumn]))
		}
	}

	if len(values) == 0 {
		return nil, errors.NewValueError("LoadCSV", "no data rows found")
	}

	s := New(values)
	if len(labels) == len(values) {
		s.Labels = labels
	}
	return s, nil
}
