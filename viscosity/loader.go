package viscosity

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

//go:embed data/model.yaml
var defaultModelYAML []byte

const modelSheet = "model"

type modelFile struct {
	Scales map[string]map[string]float64 `yaml:"scales"`
}

var (
	defaultOnce  sync.Once
	defaultModel *Model
	defaultErr   error
)

// DefaultModel 内置系数表，只解析一次
func DefaultModel() (*Model, error) {
	defaultOnce.Do(func() {
		defaultModel, defaultErr = LoadModelYAML(bytes.NewReader(defaultModelYAML))
	})
	return defaultModel, defaultErr
}

func LoadModelYAML(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f modelFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode model yaml: %w", err)
	}
	if len(f.Scales) == 0 {
		return nil, fmt.Errorf("model yaml has no scales")
	}
	table := make(map[Scale]map[string]float64, len(f.Scales))
	for s, row := range f.Scales {
		table[Scale(strings.TrimSpace(s))] = row
	}
	return NewModel(table)
}

// LoadModelXLSX 读取名为 model 的工作表（没有则取第一张）。
// 第一行为表头：Term | <scale> | <scale> ...，之后每行一个回归项，空单元格跳过
func LoadModelXLSX(r io.Reader) (*Model, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open model workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("model workbook has no sheets")
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if s == modelSheet {
			sheet = s
			break
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 || len(rows[0]) < 2 {
		return nil, fmt.Errorf("sheet %s: expected a header row and at least one term", sheet)
	}

	header := rows[0]
	table := make(map[Scale]map[string]float64, len(header)-1)
	for j := 1; j < len(header); j++ {
		s := strings.TrimSpace(header[j])
		if s == "" {
			continue
		}
		table[Scale(s)] = make(map[string]float64)
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		term := strings.TrimSpace(row[0])
		for j := 1; j < len(row) && j < len(header); j++ {
			s := strings.TrimSpace(header[j])
			cell := strings.TrimSpace(row[j])
			if s == "" || cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				name, _ := excelize.CoordinatesToCellName(j+1, i+1)
				return nil, fmt.Errorf("sheet %s cell %s: %w", sheet, name, err)
			}
			table[Scale(s)][term] = v
		}
	}
	return NewModel(table)
}

// LoadModelFile 按扩展名选择格式
func LoadModelFile(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var m *Model
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		m, err = LoadModelYAML(file)
	case ".xlsx":
		m, err = LoadModelXLSX(file)
	default:
		return nil, fmt.Errorf("unsupported model file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"path":   path,
		"scales": len(m.scales),
	}).Info("加载回归模型")
	for _, s := range IsoScales() {
		if !m.HasScale(s) {
			log.WithField("scale", s).Warn("回归模型缺少等粘度点，VFT 无法拟合")
		}
	}
	return m, nil
}

// WriteModelXLSX 导出为 LoadModelXLSX 可读的工作簿
func WriteModelXLSX(m *Model, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", modelSheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(modelSheet)
	if err != nil {
		return err
	}

	scales := m.Scales()
	table := m.Table()
	header := []interface{}{"Term"}
	seen := make(map[string]bool)
	var terms []string
	for _, s := range scales {
		header = append(header, string(s))
		for name := range table[s] {
			if !seen[name] {
				seen[name] = true
				terms = append(terms, name)
			}
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i] == ConstantTerm || terms[j] == ConstantTerm {
			return terms[i] == ConstantTerm && terms[j] != ConstantTerm
		}
		return terms[i] < terms[j]
	})

	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, name := range terms {
		row := []interface{}{name}
		for _, s := range scales {
			if v, ok := table[s][name]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}
