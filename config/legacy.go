package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LegacyFileName 早期版本把设置存在工作目录的 data.csv 里
const LegacyFileName = "data.csv"

// ImportLegacyCSV 读取旧版 CSV 设置：
//
//	position,120,340
//	hotkey,End
//
// 旧文件里没有透明度，透明度取默认值。
func ImportLegacyCSV(path string) (Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return Settings{}, err
	}
	defer file.Close()

	st := NewDefault()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // 每行列数不一样

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Settings{}, fmt.Errorf("read legacy settings: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		switch strings.TrimSpace(row[0]) {
		case "position":
			if len(row) < 3 {
				return Settings{}, fmt.Errorf("legacy position row has %d fields", len(row))
			}
			x, errX := strconv.Atoi(strings.TrimSpace(row[1]))
			y, errY := strconv.Atoi(strings.TrimSpace(row[2]))
			if err := errors.Join(errX, errY); err != nil {
				return Settings{}, fmt.Errorf("legacy position: %w", err)
			}
			st.Position = Point{X: x, Y: y}
		case "hotkey":
			if len(row) >= 2 && strings.TrimSpace(row[1]) != "" {
				st.Hotkey = strings.TrimSpace(row[1])
			}
		}
	}
	return st, nil
}
