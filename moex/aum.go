package moex

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// СЧА фондов управляющая компания публикует на своём сайте, автоматического
// API нет. Снимок ведётся в yaml-файле и обновляется руками или внешним
// скриптом; устаревший или неполный файл — не ошибка, по тикерам без СЧА
// балансировщик откатится к равным весам
type AUMSnapshot struct {
	Funds map[string]float64 `yaml:"funds"` // тикер -> СЧА в рублях
}

func LoadAUMSnapshot(path string) (*AUMSnapshot, error) {
	if path == "" {
		return &AUMSnapshot{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "aum snapshot read")
	}
	var snapshot AUMSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(err, "aum snapshot parse")
	}
	return &snapshot, nil
}
