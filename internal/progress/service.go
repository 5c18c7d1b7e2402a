package progress

import (
	"errors"
	"fmt"
	"strings"
)

// Service combines the ledger with a chart rasterizer.
type Service struct {
	Ledger     *Ledger
	Rasterizer Rasterizer
}

func NewService(ledger *Ledger, rasterizer Rasterizer) *Service {
	return &Service{Ledger: ledger, Rasterizer: rasterizer}
}

func (s *Service) Update(user, topic string, pct float64) error {
	return s.Ledger.Update(user, topic, pct)
}

func (s *Service) Snapshot(user string) (map[string]float64, error) {
	if strings.TrimSpace(user) == "" {
		return nil, ErrUnauthenticated
	}
	return s.Ledger.Snapshot(user), nil
}

// RenderChart draws user's progress. An empty ledger entry yields ErrNoData.
func (s *Service) RenderChart(user string) ([]byte, error) {
	if strings.TrimSpace(user) == "" {
		return nil, ErrUnauthenticated
	}
	bars := s.Ledger.Bars(user)
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if s.Rasterizer == nil {
		return nil, errors.New("chart rasterizer not configured")
	}
	img, err := s.Rasterizer.Render(ChartTitle(user), bars)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return img, nil
}

func ChartTitle(user string) string {
	return user + "'s Learning Progress"
}
